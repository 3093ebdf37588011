package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupBalance is one node of the recursive balance-sheet tree. Totals
// include the group's direct accounts plus everything under its children.
// Balance carries the replayed value; OutstandingBalance carries the live
// incrementally-maintained one so the two remain comparable.
type GroupBalance struct {
	ID                 string
	Name               string
	Type               GroupType
	Balance            decimal.Decimal
	DebitTotal         decimal.Decimal
	CreditTotal        decimal.Decimal
	OpeningBalance     decimal.Decimal
	OutstandingBalance decimal.Decimal
	Children           []*GroupBalance
}

// BalanceSheetSection is one side of the sheet: a forest of group balances
// plus its absolute total.
type BalanceSheetSection struct {
	Groups []*GroupBalance
	Total  decimal.Decimal
}

// CapitalSection carries the derived capital figure (income minus expenses)
// both signed and as the absolute total used in the accounting equation.
type CapitalSection struct {
	Amount decimal.Decimal
	Total  decimal.Decimal
}

// BalanceSheetTotals is the reconciliation footer. Balance should be zero
// when the books satisfy the accounting equation; a non-zero value is
// reported, never discarded.
type BalanceSheetTotals struct {
	TotalAssets                decimal.Decimal
	TotalLiabilities           decimal.Decimal
	TotalCapital               decimal.Decimal
	TotalLiabilitiesAndCapital decimal.Decimal
	Balance                    decimal.Decimal
}

// BalanceSheet is the full as-of-date report produced by the replay path.
type BalanceSheet struct {
	AsOf        time.Time
	Assets      BalanceSheetSection
	Liabilities BalanceSheetSection
	Capital     CapitalSection
	Totals      BalanceSheetTotals
}

// Sequence is one named monotonic counter.
type Sequence struct {
	Name  string
	Value int64
}
