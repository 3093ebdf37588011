package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TripSale is one sale made during a trip. Sales contribute directly to
// customer balances without going through a voucher: the sale amount debits
// the client, cash/online/discount credit it. A sale flagged IsReceipt is a
// settlement of an earlier balance and is excluded from replay.
type TripSale struct {
	Client     string
	Amount     decimal.Decimal
	CashPaid   decimal.Decimal
	OnlinePaid decimal.Decimal
	Discount   decimal.Decimal
	IsReceipt  bool
}

// Settled returns the portion of the sale already covered by cash, online
// payment, and discount.
func (s TripSale) Settled() decimal.Decimal {
	return s.CashPaid.Add(s.OnlinePaid).Add(s.Discount)
}

// TripPurchase is one purchase made during a trip; it credits the supplier.
type TripPurchase struct {
	Supplier string
	Amount   decimal.Decimal
}

// Trip is one buying/selling round recorded outside the voucher flow.
type Trip struct {
	ID        string
	Date      time.Time
	Sales     []TripSale
	Purchases []TripPurchase
	CreatedAt time.Time
}
