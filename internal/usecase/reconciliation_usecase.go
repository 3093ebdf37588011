package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/tradebooks/tradebooks/internal/domain"
	"github.com/tradebooks/tradebooks/internal/infrastructure/metrics"
)

// ReconciliationUseCase compares the two independently derived balances the
// system keeps for every account: the live outstanding balance maintained
// incrementally at posting time, and the balance reproduced by replaying
// raw transactions. Divergence is an expected, auditable condition, not an
// error; this report makes it visible.
type ReconciliationUseCase struct {
	ledgerRepo   LedgerRepository
	customerRepo CustomerRepository
	vendorRepo   VendorRepository
	voucherRepo  VoucherRepository
	tripRepo     TripRepository
	stockRepo    StockRepository
	metrics      *metrics.Metrics
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	ledgerRepo LedgerRepository,
	customerRepo CustomerRepository,
	vendorRepo VendorRepository,
	voucherRepo VoucherRepository,
	tripRepo TripRepository,
	stockRepo StockRepository,
	m *metrics.Metrics,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		ledgerRepo:   ledgerRepo,
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
		voucherRepo:  voucherRepo,
		tripRepo:     tripRepo,
		stockRepo:    stockRepo,
		metrics:      m,
	}
}

// ReconciliationResult is the comparison for one account.
type ReconciliationResult struct {
	Ref             domain.AccountRef
	Name            string
	LiveBalance     decimal.Decimal
	ReplayedBalance decimal.Decimal
	Difference      decimal.Decimal
	IsReconciled    bool
}

// ReconciliationReport is the full live-vs-replay comparison.
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReconciliationResult
	CheckedAt          time.Time
}

// Reconcile compares every active account's live balance against a fresh
// replay as of now.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context) (*ReconciliationReport, error) {
	asOf := EndOfDay(time.Now().UTC())

	var (
		ledgers   []*domain.Ledger
		customers []*domain.Customer
		vendors   []*domain.Vendor
		vouchers  []*domain.Voucher
		trips     []*domain.Trip
		stocks    []*domain.InventoryStock
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { ledgers, err = uc.ledgerRepo.ListActive(gctx); return err })
	g.Go(func() (err error) { customers, err = uc.customerRepo.ListActive(gctx); return err })
	g.Go(func() (err error) { vendors, err = uc.vendorRepo.ListActive(gctx); return err })
	g.Go(func() (err error) { vouchers, err = uc.voucherRepo.ListActiveBefore(gctx, asOf); return err })
	g.Go(func() (err error) { trips, err = uc.tripRepo.ListBefore(gctx, asOf); return err })
	g.Go(func() (err error) { stocks, err = uc.stockRepo.ListBefore(gctx, asOf); return err })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	balances := BuildVoucherBalanceMap(vouchers, asOf)

	report := &ReconciliationReport{CheckedAt: time.Now().UTC()}

	for _, ledger := range ledgers {
		replayed := ledger.OpeningBalance.Signed().Add(LedgerReplayBalance(ledger.Name, balances))
		report.add(&ReconciliationResult{
			Ref:             domain.AccountRef{Kind: domain.KindLedger, ID: ledger.ID},
			Name:            ledger.Name,
			LiveBalance:     ledger.OutstandingBalance.Signed(),
			ReplayedBalance: replayed,
		})
	}

	for _, customer := range customers {
		report.add(&ReconciliationResult{
			Ref:             domain.AccountRef{Kind: domain.KindCustomer, ID: customer.ID},
			Name:            customer.Name,
			LiveBalance:     customer.OutstandingBalance.Signed(),
			ReplayedBalance: CustomerReplayBalance(customer, vouchers, trips, asOf),
		})
	}

	for _, vendor := range vendors {
		report.add(&ReconciliationResult{
			Ref:             domain.AccountRef{Kind: domain.KindVendor, ID: vendor.ID},
			Name:            vendor.Name,
			LiveBalance:     vendor.OutstandingBalance.Signed(),
			ReplayedBalance: VendorReplayBalance(vendor, vouchers, trips, stocks, asOf),
		})
	}

	if uc.metrics != nil {
		uc.metrics.ReconciliationRuns.Inc()
		uc.metrics.ReconciliationDiscrepancies.Set(float64(len(report.Discrepancies)))
	}

	return report, nil
}

func (r *ReconciliationReport) add(result *ReconciliationResult) {
	result.Difference = result.LiveBalance.Sub(result.ReplayedBalance)
	result.IsReconciled = result.Difference.IsZero()

	r.TotalAccounts++
	if result.IsReconciled {
		r.ReconciledAccounts++
	} else {
		r.Discrepancies = append(r.Discrepancies, result)
	}
}
