package domain

import (
	"time"
)

// AccountKind distinguishes the three account variants a voucher can touch.
type AccountKind string

const (
	KindLedger   AccountKind = "ledger"
	KindCustomer AccountKind = "customer"
	KindVendor   AccountKind = "vendor"
)

// Valid reports whether k is a known account kind.
func (k AccountKind) Valid() bool {
	switch k {
	case KindLedger, KindCustomer, KindVendor:
		return true
	}
	return false
}

// Ledger is a named general-ledger account belonging to one group.
// OpeningBalance is fixed at registration; OutstandingBalance is the live
// position mutated by the posting path.
type Ledger struct {
	ID                 string
	Name               string
	Slug               string
	GroupID            string
	OpeningBalance     SignedBalance
	OutstandingBalance SignedBalance
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Customer is a receivable party. Positive net balance means the customer
// owes the business.
type Customer struct {
	ID                 string
	Name               string
	ShopName           string
	GroupID            string
	OpeningBalance     SignedBalance
	OutstandingBalance SignedBalance
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Vendor is a payable party. Opening balances default to the credit side.
// Payment/Receipt vouchers naming a vendor post against its linked ledger;
// a vendor without one is skipped by the posting path.
type Vendor struct {
	ID                 string
	Name               string
	GroupID            string
	LinkedLedgerID     *string
	OpeningBalance     SignedBalance
	OutstandingBalance SignedBalance
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AccountRef identifies one concrete account touched by a posting.
type AccountRef struct {
	Kind AccountKind
	ID   string
}

// ResolvedAccount is the result of resolving a free-text journal account
// name: exactly one concrete kind, or unresolved with the original name
// kept for the posting report.
type ResolvedAccount struct {
	Kind AccountKind
	ID   string
	Name string
}

// Resolved reports whether the lookup matched a concrete account.
func (r ResolvedAccount) Resolved() bool {
	return r.ID != ""
}
