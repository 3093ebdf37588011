package usecase

import (
	"context"
	"time"

	"github.com/tradebooks/tradebooks/internal/domain"
)

// LedgerRepository defines data access for ledger accounts. Entity CRUD
// lives outside the engine; only reads and balance writes are needed here.
type LedgerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Ledger, error)
	FindByNameOrSlug(ctx context.Context, name string) (*domain.Ledger, error)
	ListActive(ctx context.Context) ([]*domain.Ledger, error)
	UpdateOutstanding(ctx context.Context, id string, balance domain.SignedBalance, updatedAt time.Time) error
}

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByName(ctx context.Context, name string) (*domain.Customer, error)
	ListActive(ctx context.Context) ([]*domain.Customer, error)
	UpdateOutstanding(ctx context.Context, id string, balance domain.SignedBalance, updatedAt time.Time) error
}

// VendorRepository defines data access for vendors.
type VendorRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
	FindByName(ctx context.Context, name string) (*domain.Vendor, error)
	ListActive(ctx context.Context) ([]*domain.Vendor, error)
	UpdateOutstanding(ctx context.Context, id string, balance domain.SignedBalance, updatedAt time.Time) error
}

// GroupRepository defines data access for chart-of-accounts groups.
type GroupRepository interface {
	ListAll(ctx context.Context) ([]*domain.Group, error)
}

// VoucherRepository defines data access for vouchers.
type VoucherRepository interface {
	Create(ctx context.Context, tx Transaction, voucher *domain.Voucher) error
	GetByNumber(ctx context.Context, number int64) (*domain.Voucher, error)
	ListActiveBefore(ctx context.Context, asOf time.Time) ([]*domain.Voucher, error)
	Deactivate(ctx context.Context, number int64, updatedAt time.Time) error
}

// TripRepository defines data access for trips.
type TripRepository interface {
	ListBefore(ctx context.Context, asOf time.Time) ([]*domain.Trip, error)
}

// StockRepository defines data access for inventory stock movements.
type StockRepository interface {
	ListBefore(ctx context.Context, asOf time.Time) ([]*domain.InventoryStock, error)
}

// SequenceRepository persists named monotonic counters. Increment must be a
// single atomic upsert-and-increment: concurrent callers never observe the
// same returned value. Current returns 0 for an unknown sequence.
type SequenceRepository interface {
	Increment(ctx context.Context, name string) (int64, error)
	Current(ctx context.Context, name string) (int64, error)
}

// AccountResolver resolves a free-text journal account name to a concrete
// account, trying ledgers, then customers, then vendors; first match wins.
// An unmatched name resolves to an unresolved ResolvedAccount, not an error.
type AccountResolver interface {
	Resolve(ctx context.Context, name string) (domain.ResolvedAccount, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for computed reports.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore remembers responses to mutating requests keyed by a
// client-supplied idempotency key.
type IdempotencyStore interface {
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
