package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType classifies a posted financial transaction.
type VoucherType string

const (
	VoucherPayment VoucherType = "payment"
	VoucherReceipt VoucherType = "receipt"
	VoucherJournal VoucherType = "journal"
	VoucherContra  VoucherType = "contra"
)

// Valid reports whether t is a known voucher type.
func (t VoucherType) Valid() bool {
	switch t {
	case VoucherPayment, VoucherReceipt, VoucherJournal, VoucherContra:
		return true
	}
	return false
}

// PartyBased reports whether the type carries a parties array plus a
// cash/bank ledger leg (payment/receipt), as opposed to free-form journal
// lines (journal/contra).
func (t VoucherType) PartyBased() bool {
	return t == VoucherPayment || t == VoucherReceipt
}

// Side returns the accounting side applied to counterparty accounts for a
// party-based voucher: payments debit the counterparty, receipts credit it.
// The cash/bank leg takes the opposite side.
func (t VoucherType) Side() Side {
	if t == VoucherReceipt {
		return Credit
	}
	return Debit
}

// Party is one counterparty of a payment/receipt voucher.
type Party struct {
	PartyID string
	Kind    AccountKind
	Amount  decimal.Decimal
}

// JournalLine is one free-text line of a journal/contra voucher. Account is
// matched against ledgers, customers, and vendors by name at posting and
// replay time. Debit and Credit may both be non-zero on the same line.
type JournalLine struct {
	Account string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// Voucher is one posted financial transaction. Exactly one shape is
// populated: Parties+LedgerID for payment/receipt, Entries for
// journal/contra. Inactive vouchers are excluded from every aggregation.
type Voucher struct {
	ID          string
	Number      int64
	Type        VoucherType
	Date        time.Time
	Parties     []Party
	LedgerID    string
	Entries     []JournalLine
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Narration   string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PartyTotal sums the party amounts of a payment/receipt voucher.
func (v *Voucher) PartyTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range v.Parties {
		total = total.Add(p.Amount)
	}
	return total
}
