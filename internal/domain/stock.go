package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockType classifies an inventory stock movement.
type StockType string

const (
	StockPurchase   StockType = "purchase"
	StockOpening    StockType = "opening"
	StockSale       StockType = "sale"
	StockAdjustment StockType = "adjustment"
)

// CreditsVendor reports whether the movement feeds the vendor's payable
// balance during replay. Only purchases and opening stock do.
func (t StockType) CreditsVendor() bool {
	return t == StockPurchase || t == StockOpening
}

// InventoryStock is one stock movement. Purchase and opening movements
// credit the named vendor.
type InventoryStock struct {
	ID        string
	Date      time.Time
	Type      StockType
	Amount    decimal.Decimal
	VendorID  string
	CreatedAt time.Time
}
