package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/tradebooks/tradebooks/internal/domain"
	"github.com/tradebooks/tradebooks/internal/usecase"
)

// MockLedgerRepository is an in-memory implementation of LedgerRepository.
// Func fields override individual methods when set.
type MockLedgerRepository struct {
	mu      sync.RWMutex
	ledgers map[string]*domain.Ledger

	GetByIDFunc           func(ctx context.Context, id string) (*domain.Ledger, error)
	FindByNameOrSlugFunc  func(ctx context.Context, name string) (*domain.Ledger, error)
	ListActiveFunc        func(ctx context.Context) ([]*domain.Ledger, error)
	UpdateOutstandingFunc func(ctx context.Context, id string, balance domain.SignedBalance, updatedAt time.Time) error
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{ledgers: make(map[string]*domain.Ledger)}
}

func (m *MockLedgerRepository) Add(ledger *domain.Ledger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledgers[ledger.ID] = ledger
}

func (m *MockLedgerRepository) GetByID(ctx context.Context, id string) (*domain.Ledger, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.ledgers[id]; ok {
		return l, nil
	}
	return nil, domain.ErrLedgerNotFound
}

func (m *MockLedgerRepository) FindByNameOrSlug(ctx context.Context, name string) (*domain.Ledger, error) {
	if m.FindByNameOrSlugFunc != nil {
		return m.FindByNameOrSlugFunc(ctx, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.ledgers {
		if domain.NormalizeAccountName(l.Name) == name || domain.NormalizeAccountName(l.Slug) == name {
			return l, nil
		}
	}
	return nil, domain.ErrLedgerNotFound
}

func (m *MockLedgerRepository) ListActive(ctx context.Context) ([]*domain.Ledger, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Ledger
	for _, l := range m.ledgers {
		if l.Active {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *MockLedgerRepository) UpdateOutstanding(ctx context.Context, id string, balance domain.SignedBalance, updatedAt time.Time) error {
	if m.UpdateOutstandingFunc != nil {
		return m.UpdateOutstandingFunc(ctx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.ledgers[id]
	if !ok {
		return domain.ErrLedgerNotFound
	}
	l.OutstandingBalance = balance
	l.UpdatedAt = updatedAt
	return nil
}

// MockCustomerRepository is an in-memory implementation of CustomerRepository.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer

	GetByIDFunc           func(ctx context.Context, id string) (*domain.Customer, error)
	FindByNameFunc        func(ctx context.Context, name string) (*domain.Customer, error)
	ListActiveFunc        func(ctx context.Context) ([]*domain.Customer, error)
	UpdateOutstandingFunc func(ctx context.Context, id string, balance domain.SignedBalance, updatedAt time.Time) error
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{customers: make(map[string]*domain.Customer)}
}

func (m *MockCustomerRepository) Add(customer *domain.Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[customer.ID] = customer
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.customers[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *MockCustomerRepository) FindByName(ctx context.Context, name string) (*domain.Customer, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.customers {
		if domain.NormalizeAccountName(c.Name) == name || domain.NormalizeAccountName(c.ShopName) == name {
			return c, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *MockCustomerRepository) ListActive(ctx context.Context) ([]*domain.Customer, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Customer
	for _, c := range m.customers {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCustomerRepository) UpdateOutstanding(ctx context.Context, id string, balance domain.SignedBalance, updatedAt time.Time) error {
	if m.UpdateOutstandingFunc != nil {
		return m.UpdateOutstandingFunc(ctx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	c.OutstandingBalance = balance
	c.UpdatedAt = updatedAt
	return nil
}

// MockVendorRepository is an in-memory implementation of VendorRepository.
type MockVendorRepository struct {
	mu      sync.RWMutex
	vendors map[string]*domain.Vendor

	GetByIDFunc           func(ctx context.Context, id string) (*domain.Vendor, error)
	FindByNameFunc        func(ctx context.Context, name string) (*domain.Vendor, error)
	ListActiveFunc        func(ctx context.Context) ([]*domain.Vendor, error)
	UpdateOutstandingFunc func(ctx context.Context, id string, balance domain.SignedBalance, updatedAt time.Time) error
}

func NewMockVendorRepository() *MockVendorRepository {
	return &MockVendorRepository{vendors: make(map[string]*domain.Vendor)}
}

func (m *MockVendorRepository) Add(vendor *domain.Vendor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vendors[vendor.ID] = vendor
}

func (m *MockVendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.vendors[id]; ok {
		return v, nil
	}
	return nil, domain.ErrVendorNotFound
}

func (m *MockVendorRepository) FindByName(ctx context.Context, name string) (*domain.Vendor, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.vendors {
		if domain.NormalizeAccountName(v.Name) == name {
			return v, nil
		}
	}
	return nil, domain.ErrVendorNotFound
}

func (m *MockVendorRepository) ListActive(ctx context.Context) ([]*domain.Vendor, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Vendor
	for _, v := range m.vendors {
		if v.Active {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *MockVendorRepository) UpdateOutstanding(ctx context.Context, id string, balance domain.SignedBalance, updatedAt time.Time) error {
	if m.UpdateOutstandingFunc != nil {
		return m.UpdateOutstandingFunc(ctx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vendors[id]
	if !ok {
		return domain.ErrVendorNotFound
	}
	v.OutstandingBalance = balance
	v.UpdatedAt = updatedAt
	return nil
}

// MockGroupRepository is an in-memory implementation of GroupRepository.
type MockGroupRepository struct {
	Groups []*domain.Group

	ListAllFunc func(ctx context.Context) ([]*domain.Group, error)
}

func NewMockGroupRepository(groups ...*domain.Group) *MockGroupRepository {
	return &MockGroupRepository{Groups: groups}
}

func (m *MockGroupRepository) ListAll(ctx context.Context) ([]*domain.Group, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return m.Groups, nil
}

// MockVoucherRepository is an in-memory implementation of VoucherRepository.
type MockVoucherRepository struct {
	mu       sync.RWMutex
	vouchers map[int64]*domain.Voucher

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error
	GetByNumberFunc      func(ctx context.Context, number int64) (*domain.Voucher, error)
	ListActiveBeforeFunc func(ctx context.Context, asOf time.Time) ([]*domain.Voucher, error)
	DeactivateFunc       func(ctx context.Context, number int64, updatedAt time.Time) error
}

func NewMockVoucherRepository() *MockVoucherRepository {
	return &MockVoucherRepository{vouchers: make(map[int64]*domain.Voucher)}
}

func (m *MockVoucherRepository) Add(voucher *domain.Voucher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vouchers[voucher.Number] = voucher
}

func (m *MockVoucherRepository) Create(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, voucher)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.vouchers[voucher.Number]; exists {
		return domain.ErrDuplicateVoucher
	}
	m.vouchers[voucher.Number] = voucher
	return nil
}

func (m *MockVoucherRepository) GetByNumber(ctx context.Context, number int64) (*domain.Voucher, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.vouchers[number]; ok {
		return v, nil
	}
	return nil, domain.ErrVoucherNotFound
}

func (m *MockVoucherRepository) ListActiveBefore(ctx context.Context, asOf time.Time) ([]*domain.Voucher, error) {
	if m.ListActiveBeforeFunc != nil {
		return m.ListActiveBeforeFunc(ctx, asOf)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Voucher
	for _, v := range m.vouchers {
		if v.Active && !v.Date.After(asOf) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *MockVoucherRepository) Deactivate(ctx context.Context, number int64, updatedAt time.Time) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, number, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vouchers[number]
	if !ok {
		return domain.ErrVoucherNotFound
	}
	v.Active = false
	v.UpdatedAt = updatedAt
	return nil
}

// MockTripRepository is an in-memory implementation of TripRepository.
type MockTripRepository struct {
	Trips []*domain.Trip

	ListBeforeFunc func(ctx context.Context, asOf time.Time) ([]*domain.Trip, error)
}

func NewMockTripRepository(trips ...*domain.Trip) *MockTripRepository {
	return &MockTripRepository{Trips: trips}
}

func (m *MockTripRepository) ListBefore(ctx context.Context, asOf time.Time) ([]*domain.Trip, error) {
	if m.ListBeforeFunc != nil {
		return m.ListBeforeFunc(ctx, asOf)
	}
	var out []*domain.Trip
	for _, t := range m.Trips {
		if !t.Date.After(asOf) {
			out = append(out, t)
		}
	}
	return out, nil
}

// MockStockRepository is an in-memory implementation of StockRepository.
type MockStockRepository struct {
	Stocks []*domain.InventoryStock

	ListBeforeFunc func(ctx context.Context, asOf time.Time) ([]*domain.InventoryStock, error)
}

func NewMockStockRepository(stocks ...*domain.InventoryStock) *MockStockRepository {
	return &MockStockRepository{Stocks: stocks}
}

func (m *MockStockRepository) ListBefore(ctx context.Context, asOf time.Time) ([]*domain.InventoryStock, error) {
	if m.ListBeforeFunc != nil {
		return m.ListBeforeFunc(ctx, asOf)
	}
	var out []*domain.InventoryStock
	for _, s := range m.Stocks {
		if !s.Date.After(asOf) {
			out = append(out, s)
		}
	}
	return out, nil
}

// MockSequenceRepository is an in-memory implementation of SequenceRepository.
type MockSequenceRepository struct {
	mu     sync.Mutex
	values map[string]int64

	IncrementFunc func(ctx context.Context, name string) (int64, error)
	CurrentFunc   func(ctx context.Context, name string) (int64, error)
}

func NewMockSequenceRepository() *MockSequenceRepository {
	return &MockSequenceRepository{values: make(map[string]int64)}
}

func (m *MockSequenceRepository) Increment(ctx context.Context, name string) (int64, error) {
	if m.IncrementFunc != nil {
		return m.IncrementFunc(ctx, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name]++
	return m.values[name], nil
}

func (m *MockSequenceRepository) Current(ctx context.Context, name string) (int64, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[name], nil
}

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out no-op transactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	Transactions []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockIDGenerator returns a fixed or sequential id.
type MockIDGenerator struct {
	mu           sync.Mutex
	counter      int
	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + string(rune('0'+m.counter%10))
}

// MockRetrier runs the operation once, without retries.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockCache is an in-memory byte cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string][]byte

	GetFunc func(ctx context.Context, key string) ([]byte, error)
	SetFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
