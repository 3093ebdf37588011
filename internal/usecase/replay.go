package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradebooks/tradebooks/internal/domain"
)

// The replay aggregator recomputes balances from raw transaction records as
// of a date, fully independent of the stored outstanding balances. Every
// function here is pure given its inputs; the two paths share the signed
// balance algebra so their sign semantics can never drift apart.

// EndOfDay pushes the cutoff to the last instant of its calendar day so
// same-day transactions are included.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// BuildVoucherBalanceMap explodes the journal/contra lines of all active
// vouchers dated on or before asOf and sums debit/credit per account name.
// Names are normalized (trim + lowercase) to tolerate free-text entry.
func BuildVoucherBalanceMap(vouchers []*domain.Voucher, asOf time.Time) map[string]domain.DebitCredit {
	result := make(map[string]domain.DebitCredit)

	for _, v := range vouchers {
		if !v.Active || v.Date.After(asOf) {
			continue
		}
		if v.Type.PartyBased() {
			continue
		}
		for _, line := range v.Entries {
			key := domain.NormalizeAccountName(line.Account)
			dc := result[key]
			dc.DebitTotal = dc.DebitTotal.Add(line.Debit)
			dc.CreditTotal = dc.CreditTotal.Add(line.Credit)
			result[key] = dc
		}
	}

	return result
}

// LedgerReplayBalance returns debit minus credit for a ledger name from the
// voucher balance map. Unknown names net to zero.
func LedgerReplayBalance(name string, balances map[string]domain.DebitCredit) decimal.Decimal {
	return balances[domain.NormalizeAccountName(name)].Net()
}

// CustomerReplayBalance recomputes a customer's net position: opening
// balance, plus payments made to them, minus receipts from them, plus the
// unsettled portion of every trip sale to them. Positive means the customer
// owes the business.
func CustomerReplayBalance(customer *domain.Customer, vouchers []*domain.Voucher, trips []*domain.Trip, asOf time.Time) decimal.Decimal {
	balance := customer.OpeningBalance.Signed()

	for _, v := range vouchers {
		if !v.Active || v.Date.After(asOf) || !v.Type.PartyBased() {
			continue
		}
		for _, p := range v.Parties {
			if p.Kind != domain.KindCustomer || p.PartyID != customer.ID {
				continue
			}
			if v.Type == domain.VoucherPayment {
				balance = balance.Add(p.Amount)
			} else {
				balance = balance.Sub(p.Amount)
			}
		}
	}

	name := domain.NormalizeAccountName(customer.Name)
	for _, trip := range trips {
		if trip.Date.After(asOf) {
			continue
		}
		for _, sale := range trip.Sales {
			if sale.IsReceipt || domain.NormalizeAccountName(sale.Client) != name {
				continue
			}
			balance = balance.Add(sale.Amount).Sub(sale.Settled())
		}
	}

	return balance
}

// VendorReplayBalance recomputes a vendor's net position: opening balance
// (credit by convention), plus payments, minus receipts, minus trip
// purchases from them, minus purchase/opening stock movements naming them.
// Negative means the business owes the vendor.
func VendorReplayBalance(vendor *domain.Vendor, vouchers []*domain.Voucher, trips []*domain.Trip, stocks []*domain.InventoryStock, asOf time.Time) decimal.Decimal {
	balance := vendor.OpeningBalance.Signed()

	for _, v := range vouchers {
		if !v.Active || v.Date.After(asOf) || !v.Type.PartyBased() {
			continue
		}
		for _, p := range v.Parties {
			if p.Kind != domain.KindVendor || p.PartyID != vendor.ID {
				continue
			}
			if v.Type == domain.VoucherPayment {
				balance = balance.Add(p.Amount)
			} else {
				balance = balance.Sub(p.Amount)
			}
		}
	}

	name := domain.NormalizeAccountName(vendor.Name)
	for _, trip := range trips {
		if trip.Date.After(asOf) {
			continue
		}
		for _, purchase := range trip.Purchases {
			if domain.NormalizeAccountName(purchase.Supplier) != name {
				continue
			}
			balance = balance.Sub(purchase.Amount)
		}
	}

	for _, stock := range stocks {
		if stock.Date.After(asOf) || !stock.Type.CreditsVendor() || stock.VendorID != vendor.ID {
			continue
		}
		balance = balance.Sub(stock.Amount)
	}

	return balance
}

// CapitalBalance derives capital (retained earnings) from the voucher
// balance map: income-group ledgers net on the credit side, expense-group
// ledgers on the debit side, capital = income - expenses. Ledgers whose
// group is unknown contribute nothing.
func CapitalBalance(balances map[string]domain.DebitCredit, ledgers []*domain.Ledger, groups []*domain.Group) decimal.Decimal {
	typeByGroup := make(map[string]domain.GroupType, len(groups))
	for _, g := range groups {
		typeByGroup[g.ID] = g.Type
	}

	income, expenses := decimal.Zero, decimal.Zero
	for _, ledger := range ledgers {
		dc := balances[domain.NormalizeAccountName(ledger.Name)]
		switch typeByGroup[ledger.GroupID] {
		case domain.GroupIncome:
			income = income.Add(dc.CreditTotal.Sub(dc.DebitTotal))
		case domain.GroupExpenses:
			expenses = expenses.Add(dc.DebitTotal.Sub(dc.CreditTotal))
		}
	}

	return income.Sub(expenses)
}
