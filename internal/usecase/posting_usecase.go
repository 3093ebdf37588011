package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tradebooks/tradebooks/internal/domain"
	"github.com/tradebooks/tradebooks/internal/infrastructure/metrics"
)

// PostingUseCase is the balance mutation service: it records a voucher and
// folds its effect into the live outstanding balance of every account the
// voucher touches. The voucher record itself is written inside a
// transaction; balance mutation runs after commit and is per-account
// best-effort, because the replay path can always rebuild balances from the
// records.
type PostingUseCase struct {
	txManager    TransactionManager
	ledgerRepo   LedgerRepository
	customerRepo CustomerRepository
	vendorRepo   VendorRepository
	voucherRepo  VoucherRepository
	sequenceRepo SequenceRepository
	resolver     AccountResolver
	idGen        IDGenerator
	retrier      Retrier
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

// NewPostingUseCase creates a new PostingUseCase.
func NewPostingUseCase(
	txManager TransactionManager,
	ledgerRepo LedgerRepository,
	customerRepo CustomerRepository,
	vendorRepo VendorRepository,
	voucherRepo VoucherRepository,
	sequenceRepo SequenceRepository,
	resolver AccountResolver,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *PostingUseCase {
	return &PostingUseCase{
		txManager:    txManager,
		ledgerRepo:   ledgerRepo,
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
		voucherRepo:  voucherRepo,
		sequenceRepo: sequenceRepo,
		resolver:     resolver,
		idGen:        idGen,
		retrier:      retrier,
		metrics:      m,
		logger:       logger,
	}
}

// UpdatedAccount records one successful balance write.
type UpdatedAccount struct {
	Ref     domain.AccountRef
	Balance domain.SignedBalance
}

// SkippedEntry records one party or journal line that could not be applied
// and was deliberately skipped. Skips are expected (unresolved names,
// vendors without a linked ledger) and never fail the posting.
type SkippedEntry struct {
	Name   string
	Reason string
}

// FailedUpdate records one balance write that failed. The voucher record
// stays the source of truth; the drift is visible through reconciliation.
type FailedUpdate struct {
	Ref    domain.AccountRef
	Reason string
}

// PostingReport is the per-item outcome of one posting or reversal.
type PostingReport struct {
	VoucherID     string
	VoucherNumber int64
	Updated       []UpdatedAccount
	Skipped       []SkippedEntry
	Failed        []FailedUpdate
}

// PostVoucher validates, records, and applies one voucher.
//
// Validation failures and a missing primary cash/bank ledger reject the
// operation before anything is written. Once the record is committed, each
// account update is independent: one failure is reported and logged but
// never rolls back the voucher or blocks sibling updates.
func (uc *PostingUseCase) PostVoucher(ctx context.Context, voucher *domain.Voucher) (*PostingReport, error) {
	if err := voucher.Validate(); err != nil {
		return nil, err
	}

	// The primary ledger classifies a payment/receipt voucher; it must
	// exist before anything is recorded.
	if voucher.Type.PartyBased() {
		if _, err := uc.ledgerRepo.GetByID(ctx, voucher.LedgerID); err != nil {
			return nil, fmt.Errorf("primary ledger %s: %w", voucher.LedgerID, err)
		}
	}

	now := time.Now().UTC()

	if voucher.ID == "" {
		voucher.ID = uc.idGen.Generate()
	}
	if voucher.Number == 0 {
		number, err := uc.sequenceRepo.Increment(ctx, VoucherSequence)
		if err != nil {
			return nil, fmt.Errorf("allocate voucher number: %w", err)
		}
		voucher.Number = number
	}
	if voucher.Date.IsZero() {
		voucher.Date = now
	}
	voucher.Active = true
	voucher.CreatedAt = now
	voucher.UpdatedAt = now
	uc.fillTotals(voucher)

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.voucherRepo.Create(ctx, tx, voucher); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	report := &PostingReport{VoucherID: voucher.ID, VoucherNumber: voucher.Number}
	deltas := uc.collectDeltas(ctx, voucher, false, report)
	uc.applyDeltas(ctx, voucher, deltas, now, report)

	if uc.metrics != nil {
		uc.metrics.VouchersPosted.WithLabelValues(string(voucher.Type)).Inc()
		uc.metrics.VoucherPostDuration.Observe(time.Since(now).Seconds())
		uc.metrics.BalanceUpdateFailures.Add(float64(len(report.Failed)))
		uc.metrics.BalanceUpdatesSkipped.Add(float64(len(report.Skipped)))
	}

	return report, nil
}

// ReverseVoucher soft-deletes a voucher and backs its effect out of the
// live balances by applying the mirror-side deltas. The same best-effort
// contract as PostVoucher applies.
func (uc *PostingUseCase) ReverseVoucher(ctx context.Context, number int64) (*PostingReport, error) {
	voucher, err := uc.voucherRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if !voucher.Active {
		return nil, domain.ErrVoucherInactive
	}

	now := time.Now().UTC()

	if err := uc.retrier.Retry(ctx, func() error {
		return uc.voucherRepo.Deactivate(ctx, number, now)
	}); err != nil {
		return nil, err
	}

	report := &PostingReport{VoucherID: voucher.ID, VoucherNumber: voucher.Number}
	deltas := uc.collectDeltas(ctx, voucher, true, report)
	uc.applyDeltas(ctx, voucher, deltas, now, report)

	if uc.metrics != nil {
		uc.metrics.VouchersReversed.Inc()
		uc.metrics.BalanceUpdateFailures.Add(float64(len(report.Failed)))
		uc.metrics.BalanceUpdatesSkipped.Add(float64(len(report.Skipped)))
	}

	return report, nil
}

// fillTotals derives the voucher's debit/credit totals from its shape.
func (uc *PostingUseCase) fillTotals(voucher *domain.Voucher) {
	if voucher.Type.PartyBased() {
		total := voucher.PartyTotal()
		voucher.TotalDebit = total
		voucher.TotalCredit = total
		return
	}

	debit, credit := decimal.Zero, decimal.Zero
	for _, e := range voucher.Entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	voucher.TotalDebit = debit
	voucher.TotalCredit = credit
}

// accountDelta is the accumulated net delta for one account, built up with
// Combine so the sign discipline never leaves the algebra.
type accountDelta struct {
	ref   domain.AccountRef
	delta domain.SignedBalance
}

type deltaSet struct {
	order []domain.AccountRef
	byRef map[domain.AccountRef]domain.SignedBalance
}

func newDeltaSet() *deltaSet {
	return &deltaSet{byRef: make(map[domain.AccountRef]domain.SignedBalance)}
}

func (s *deltaSet) add(ref domain.AccountRef, amount decimal.Decimal, side domain.Side) {
	if amount.IsZero() {
		return
	}
	current, ok := s.byRef[ref]
	if !ok {
		s.order = append(s.order, ref)
		current = domain.ZeroBalance()
	}
	s.byRef[ref] = current.Combine(domain.SignedBalance{Amount: amount, Side: side})
}

func (s *deltaSet) all() []accountDelta {
	out := make([]accountDelta, 0, len(s.order))
	for _, ref := range s.order {
		out = append(out, accountDelta{ref: ref, delta: s.byRef[ref]})
	}
	return out
}

// collectDeltas translates the voucher into one net delta per account.
// Multiple parties or lines naming the same account collapse into a single
// delta so each account is written exactly once per operation. Reversal
// flips every side.
func (uc *PostingUseCase) collectDeltas(ctx context.Context, voucher *domain.Voucher, reverse bool, report *PostingReport) []accountDelta {
	set := newDeltaSet()

	if voucher.Type.PartyBased() {
		uc.collectPartyDeltas(ctx, voucher, reverse, set, report)
	} else {
		uc.collectJournalDeltas(ctx, voucher, reverse, set, report)
	}

	return set.all()
}

func (uc *PostingUseCase) collectPartyDeltas(ctx context.Context, voucher *domain.Voucher, reverse bool, set *deltaSet, report *PostingReport) {
	side := voucher.Type.Side()
	if reverse {
		side = side.Opposite()
	}

	applied := decimal.Zero
	for _, party := range voucher.Parties {
		switch party.Kind {
		case domain.KindCustomer:
			set.add(domain.AccountRef{Kind: domain.KindCustomer, ID: party.PartyID}, party.Amount, side)
			applied = applied.Add(party.Amount)

		case domain.KindLedger:
			set.add(domain.AccountRef{Kind: domain.KindLedger, ID: party.PartyID}, party.Amount, side)
			applied = applied.Add(party.Amount)

		case domain.KindVendor:
			vendor, err := uc.vendorRepo.GetByID(ctx, party.PartyID)
			if err != nil {
				if errors.Is(err, domain.ErrVendorNotFound) {
					uc.skip(voucher, report, party.PartyID, "vendor not found")
				} else {
					report.Failed = append(report.Failed, FailedUpdate{
						Ref:    domain.AccountRef{Kind: domain.KindVendor, ID: party.PartyID},
						Reason: err.Error(),
					})
				}
				continue
			}
			if vendor.LinkedLedgerID == nil {
				uc.skip(voucher, report, vendor.Name, "vendor has no linked ledger")
				continue
			}
			set.add(domain.AccountRef{Kind: domain.KindLedger, ID: *vendor.LinkedLedgerID}, party.Amount, side)
			applied = applied.Add(party.Amount)
		}
	}

	// The cash/bank leg mirrors the applied total: money leaves or enters
	// the opposite side of the counterparties.
	set.add(domain.AccountRef{Kind: domain.KindLedger, ID: voucher.LedgerID}, applied, side.Opposite())
}

func (uc *PostingUseCase) collectJournalDeltas(ctx context.Context, voucher *domain.Voucher, reverse bool, set *deltaSet, report *PostingReport) {
	debitSide, creditSide := domain.Debit, domain.Credit
	if reverse {
		debitSide, creditSide = domain.Credit, domain.Debit
	}

	for _, line := range voucher.Entries {
		resolved, err := uc.resolver.Resolve(ctx, line.Account)
		if err != nil {
			report.Failed = append(report.Failed, FailedUpdate{
				Ref:    domain.AccountRef{ID: line.Account},
				Reason: fmt.Sprintf("resolve %q: %v", line.Account, err),
			})
			continue
		}
		if !resolved.Resolved() {
			uc.skip(voucher, report, line.Account, "no matching ledger, customer, or vendor")
			continue
		}

		ref := domain.AccountRef{Kind: resolved.Kind, ID: resolved.ID}
		if line.Debit.IsPositive() {
			set.add(ref, line.Debit, debitSide)
		}
		if line.Credit.IsPositive() {
			set.add(ref, line.Credit, creditSide)
		}
	}
}

// applyDeltas writes each accumulated delta. Every write is independent:
// missing accounts are skips, storage failures are recorded and logged,
// and neither stops the rest of the batch.
func (uc *PostingUseCase) applyDeltas(ctx context.Context, voucher *domain.Voucher, deltas []accountDelta, now time.Time, report *PostingReport) {
	for _, ad := range deltas {
		balance, err := uc.applyDelta(ctx, ad.ref, ad.delta, now)
		if err != nil {
			if isNotFound(err) {
				uc.skip(voucher, report, ad.ref.ID, fmt.Sprintf("%s not found", ad.ref.Kind))
				continue
			}
			report.Failed = append(report.Failed, FailedUpdate{Ref: ad.ref, Reason: err.Error()})
			uc.logger.Warn().
				Err(err).
				Int64("voucher", voucher.Number).
				Str("kind", string(ad.ref.Kind)).
				Str("account", ad.ref.ID).
				Msg("balance update failed; voucher record remains authoritative")
			continue
		}
		report.Updated = append(report.Updated, UpdatedAccount{Ref: ad.ref, Balance: balance})
	}
}

func (uc *PostingUseCase) applyDelta(ctx context.Context, ref domain.AccountRef, delta domain.SignedBalance, now time.Time) (domain.SignedBalance, error) {
	switch ref.Kind {
	case domain.KindLedger:
		ledger, err := uc.ledgerRepo.GetByID(ctx, ref.ID)
		if err != nil {
			return domain.SignedBalance{}, err
		}
		balance := ledger.OutstandingBalance.Combine(delta)
		return balance, uc.ledgerRepo.UpdateOutstanding(ctx, ref.ID, balance, now)

	case domain.KindCustomer:
		customer, err := uc.customerRepo.GetByID(ctx, ref.ID)
		if err != nil {
			return domain.SignedBalance{}, err
		}
		balance := customer.OutstandingBalance.Combine(delta)
		return balance, uc.customerRepo.UpdateOutstanding(ctx, ref.ID, balance, now)

	case domain.KindVendor:
		vendor, err := uc.vendorRepo.GetByID(ctx, ref.ID)
		if err != nil {
			return domain.SignedBalance{}, err
		}
		balance := vendor.OutstandingBalance.Combine(delta)
		return balance, uc.vendorRepo.UpdateOutstanding(ctx, ref.ID, balance, now)

	default:
		return domain.SignedBalance{}, fmt.Errorf("unknown account kind %q", ref.Kind)
	}
}

func (uc *PostingUseCase) skip(voucher *domain.Voucher, report *PostingReport, name, reason string) {
	report.Skipped = append(report.Skipped, SkippedEntry{Name: name, Reason: reason})
	uc.logger.Warn().
		Int64("voucher", voucher.Number).
		Str("account", name).
		Str("reason", reason).
		Msg("skipped balance update")
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrLedgerNotFound) ||
		errors.Is(err, domain.ErrCustomerNotFound) ||
		errors.Is(err, domain.ErrVendorNotFound) ||
		errors.Is(err, domain.ErrAccountNotFound)
}
