package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/tradebooks/tradebooks/internal/domain"
	"github.com/tradebooks/tradebooks/internal/infrastructure/metrics"
)

// BalanceSheetUseCase recomputes the hierarchical balance sheet from raw
// transaction records. It never reads or writes outstanding balances: the
// report is derived entirely by replay, so it stays correct even when the
// incremental path has drifted.
type BalanceSheetUseCase struct {
	ledgerRepo   LedgerRepository
	customerRepo CustomerRepository
	vendorRepo   VendorRepository
	groupRepo    GroupRepository
	voucherRepo  VoucherRepository
	tripRepo     TripRepository
	stockRepo    StockRepository
	cache        Cache
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

// NewBalanceSheetUseCase creates a new BalanceSheetUseCase. cache may be
// nil to disable report caching.
func NewBalanceSheetUseCase(
	ledgerRepo LedgerRepository,
	customerRepo CustomerRepository,
	vendorRepo VendorRepository,
	groupRepo GroupRepository,
	voucherRepo VoucherRepository,
	tripRepo TripRepository,
	stockRepo StockRepository,
	cache Cache,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *BalanceSheetUseCase {
	return &BalanceSheetUseCase{
		ledgerRepo:   ledgerRepo,
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
		groupRepo:    groupRepo,
		voucherRepo:  voucherRepo,
		tripRepo:     tripRepo,
		stockRepo:    stockRepo,
		cache:        cache,
		metrics:      m,
		logger:       logger,
	}
}

// snapshot is the immutable joined view the rollup runs over.
type snapshot struct {
	ledgers   []*domain.Ledger
	customers []*domain.Customer
	vendors   []*domain.Vendor
	groups    []*domain.Group
	vouchers  []*domain.Voucher
	trips     []*domain.Trip
	stocks    []*domain.InventoryStock

	balances map[string]domain.DebitCredit
	asOf     time.Time

	ledgersByGroup   map[string][]*domain.Ledger
	customersByGroup map[string][]*domain.Customer
	vendorsByGroup   map[string][]*domain.Vendor
}

// GetBalanceSheet produces the as-of report. A nil asOf means now. The
// seven source reads have no ordering dependency and are issued
// concurrently, then joined before the pure rollup begins.
func (uc *BalanceSheetUseCase) GetBalanceSheet(ctx context.Context, asOf *time.Time) (*domain.BalanceSheet, error) {
	cutoff := time.Now().UTC()
	if asOf != nil {
		cutoff = asOf.UTC()
	}
	cutoff = EndOfDay(cutoff)

	cacheKey := balanceSheetCachePrefix + cutoff.Format("2006-01-02")
	if cached := uc.fromCache(ctx, cacheKey); cached != nil {
		if uc.metrics != nil {
			uc.metrics.BalanceSheetCacheHits.Inc()
		}
		return cached, nil
	}

	start := time.Now()
	snap := &snapshot{asOf: cutoff}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { snap.ledgers, err = uc.ledgerRepo.ListActive(gctx); return err })
	g.Go(func() (err error) { snap.customers, err = uc.customerRepo.ListActive(gctx); return err })
	g.Go(func() (err error) { snap.vendors, err = uc.vendorRepo.ListActive(gctx); return err })
	g.Go(func() (err error) { snap.groups, err = uc.groupRepo.ListAll(gctx); return err })
	g.Go(func() (err error) { snap.vouchers, err = uc.voucherRepo.ListActiveBefore(gctx, cutoff); return err })
	g.Go(func() (err error) { snap.trips, err = uc.tripRepo.ListBefore(gctx, cutoff); return err })
	g.Go(func() (err error) { snap.stocks, err = uc.stockRepo.ListBefore(gctx, cutoff); return err })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.index()

	sheet := uc.rollup(snap)
	uc.toCache(ctx, cacheKey, sheet)

	if uc.metrics != nil {
		uc.metrics.BalanceSheetBuilds.Inc()
		uc.metrics.BalanceSheetDuration.Observe(time.Since(start).Seconds())
	}

	return sheet, nil
}

func (s *snapshot) index() {
	s.balances = BuildVoucherBalanceMap(s.vouchers, s.asOf)

	s.ledgersByGroup = make(map[string][]*domain.Ledger)
	for _, l := range s.ledgers {
		s.ledgersByGroup[l.GroupID] = append(s.ledgersByGroup[l.GroupID], l)
	}
	s.customersByGroup = make(map[string][]*domain.Customer)
	for _, c := range s.customers {
		s.customersByGroup[c.GroupID] = append(s.customersByGroup[c.GroupID], c)
	}
	s.vendorsByGroup = make(map[string][]*domain.Vendor)
	for _, v := range s.vendors {
		s.vendorsByGroup[v.GroupID] = append(s.vendorsByGroup[v.GroupID], v)
	}
}

func (uc *BalanceSheetUseCase) rollup(snap *snapshot) *domain.BalanceSheet {
	assetRoots := domain.BuildGroupForest(domain.FilterGroupsByType(snap.groups, domain.GroupAssets))
	liabilityRoots := domain.BuildGroupForest(domain.FilterGroupsByType(snap.groups, domain.GroupLiability))

	assets := uc.rollupSection(snap, assetRoots, decimal.NewFromInt(1))
	liabilities := uc.rollupSection(snap, liabilityRoots, decimal.NewFromInt(-1))

	capital := CapitalBalance(snap.balances, snap.ledgers, snap.groups)
	capitalSection := domain.CapitalSection{Amount: capital, Total: capital.Abs()}

	totals := domain.BalanceSheetTotals{
		TotalAssets:      assets.Total,
		TotalLiabilities: liabilities.Total,
		TotalCapital:     capitalSection.Total,
	}
	totals.TotalLiabilitiesAndCapital = totals.TotalLiabilities.Add(totals.TotalCapital)
	// The residual is the accounting-equation check; callers decide what a
	// non-zero value means, the engine only reports it.
	totals.Balance = totals.TotalAssets.Sub(totals.TotalLiabilitiesAndCapital)

	return &domain.BalanceSheet{
		AsOf:        snap.asOf,
		Assets:      assets,
		Liabilities: liabilities,
		Capital:     capitalSection,
		Totals:      totals,
	}
}

func (uc *BalanceSheetUseCase) rollupSection(snap *snapshot, roots []*domain.GroupNode, sign decimal.Decimal) domain.BalanceSheetSection {
	section := domain.BalanceSheetSection{Total: decimal.Zero}
	for _, root := range roots {
		node := uc.rollupGroup(snap, root, sign)
		section.Groups = append(section.Groups, node)
		section.Total = section.Total.Add(node.Balance.Abs())
	}
	return section
}

// rollupGroup aggregates one group node: its direct ledgers, customers, and
// vendors, plus everything under its children. The sign convention makes
// assets net positive on debit and liabilities net positive on credit.
func (uc *BalanceSheetUseCase) rollupGroup(snap *snapshot, node *domain.GroupNode, sign decimal.Decimal) *domain.GroupBalance {
	gb := &domain.GroupBalance{
		ID:                 node.ID,
		Name:               node.Name,
		Type:               node.Type,
		Balance:            decimal.Zero,
		DebitTotal:         decimal.Zero,
		CreditTotal:        decimal.Zero,
		OpeningBalance:     decimal.Zero,
		OutstandingBalance: decimal.Zero,
	}

	for _, ledger := range snap.ledgersByGroup[node.ID] {
		dc := snap.balances[domain.NormalizeAccountName(ledger.Name)]
		replayed := ledger.OpeningBalance.Signed().Add(dc.Net())

		gb.DebitTotal = gb.DebitTotal.Add(dc.DebitTotal)
		gb.CreditTotal = gb.CreditTotal.Add(dc.CreditTotal)
		gb.Balance = gb.Balance.Add(replayed.Mul(sign))
		gb.OpeningBalance = gb.OpeningBalance.Add(ledger.OpeningBalance.Signed())
		gb.OutstandingBalance = gb.OutstandingBalance.Add(ledger.OutstandingBalance.Signed())
	}

	for _, customer := range snap.customersByGroup[node.ID] {
		replayed := CustomerReplayBalance(customer, snap.vouchers, snap.trips, snap.asOf)
		gb.Balance = gb.Balance.Add(replayed.Mul(sign))
		gb.OpeningBalance = gb.OpeningBalance.Add(customer.OpeningBalance.Signed())
		gb.OutstandingBalance = gb.OutstandingBalance.Add(customer.OutstandingBalance.Signed())
	}

	for _, vendor := range snap.vendorsByGroup[node.ID] {
		replayed := VendorReplayBalance(vendor, snap.vouchers, snap.trips, snap.stocks, snap.asOf)
		gb.Balance = gb.Balance.Add(replayed.Mul(sign))
		gb.OpeningBalance = gb.OpeningBalance.Add(vendor.OpeningBalance.Signed())
		gb.OutstandingBalance = gb.OutstandingBalance.Add(vendor.OutstandingBalance.Signed())
	}

	for _, child := range node.Children {
		cb := uc.rollupGroup(snap, child, sign)
		gb.Children = append(gb.Children, cb)
		gb.Balance = gb.Balance.Add(cb.Balance)
		gb.DebitTotal = gb.DebitTotal.Add(cb.DebitTotal)
		gb.CreditTotal = gb.CreditTotal.Add(cb.CreditTotal)
		gb.OpeningBalance = gb.OpeningBalance.Add(cb.OpeningBalance)
		gb.OutstandingBalance = gb.OutstandingBalance.Add(cb.OutstandingBalance)
	}

	return gb
}

// Cache faults never fail a report; they are logged and the sheet is
// recomputed.
func (uc *BalanceSheetUseCase) fromCache(ctx context.Context, key string) *domain.BalanceSheet {
	if uc.cache == nil {
		return nil
	}
	data, err := uc.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}
	var sheet domain.BalanceSheet
	if err := json.Unmarshal(data, &sheet); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("discarding unreadable cached balance sheet")
		return nil
	}
	return &sheet
}

func (uc *BalanceSheetUseCase) toCache(ctx context.Context, key string, sheet *domain.BalanceSheet) {
	if uc.cache == nil {
		return
	}
	data, err := json.Marshal(sheet)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, key, data, BalanceSheetCacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("balance sheet cache write failed")
	}
}
