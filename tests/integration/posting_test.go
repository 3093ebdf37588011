package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	adaptershttp "github.com/tradebooks/tradebooks/internal/adapter/http"
	"github.com/tradebooks/tradebooks/internal/adapter/http/dto"
	"github.com/tradebooks/tradebooks/internal/adapter/http/handler"
	"github.com/tradebooks/tradebooks/internal/adapter/repository/postgres"
	redisrepo "github.com/tradebooks/tradebooks/internal/adapter/repository/redis"
	"github.com/tradebooks/tradebooks/internal/domain"
	infraredis "github.com/tradebooks/tradebooks/internal/infrastructure/redis"
	"github.com/tradebooks/tradebooks/internal/usecase"
	"github.com/tradebooks/tradebooks/tests/testutil"
)

func newTestServer(t *testing.T, testDB *testutil.TestDB) *httptest.Server {
	t.Helper()

	ctx := context.Background()

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	groupRepo := postgres.NewGroupRepository(pool)
	voucherRepo := postgres.NewVoucherRepository(pool)
	tripRepo := postgres.NewTripRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	sequenceRepo := postgres.NewSequenceRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier(zerolog.Nop())

	mr := miniredis.RunT(t)
	redisClient, err := infraredis.NewClient(ctx, "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	resolver := usecase.NewRepoAccountResolver(ledgerRepo, customerRepo, vendorRepo)
	postingUC := usecase.NewPostingUseCase(
		txManager, ledgerRepo, customerRepo, vendorRepo,
		voucherRepo, sequenceRepo, resolver, idGen, retrier, nil, zerolog.Nop(),
	)
	sheetUC := usecase.NewBalanceSheetUseCase(
		ledgerRepo, customerRepo, vendorRepo, groupRepo,
		voucherRepo, tripRepo, stockRepo, redisrepo.NewCache(redisClient), nil, zerolog.Nop(),
	)
	reconcileUC := usecase.NewReconciliationUseCase(
		ledgerRepo, customerRepo, vendorRepo, voucherRepo, tripRepo, stockRepo, nil,
	)
	sequenceUC := usecase.NewSequenceUseCase(sequenceRepo, nil)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		VoucherHandler:        handler.NewVoucherHandler(postingUC),
		BalanceSheetHandler:   handler.NewBalanceSheetHandler(sheetUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconcileUC),
		SequenceHandler:       handler.NewSequenceHandler(sequenceUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:      redisrepo.NewIdempotencyStore(redisClient),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func TestPostAndReverseVoucher(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	customer := testDB.CreateTestCustomer(ctx, "Acme Traders", "Acme", domain.ZeroBalance())
	srv := newTestServer(t, testDB)

	payload, _ := json.Marshal(dto.PostVoucherRequest{
		Type:     "payment",
		LedgerID: "ldg_cash",
		Parties: []dto.PartyRequest{
			{PartyID: customer.ID, Kind: "customer", Amount: decimal.NewFromInt(250)},
		},
		Narration: "cash paid out",
	})

	resp, err := http.Post(srv.URL+"/api/v1/vouchers", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("post voucher: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var report dto.PostingReportResponse
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}

	if report.VoucherNumber != 1 {
		t.Fatalf("expected first voucher number 1, got %d", report.VoucherNumber)
	}
	if len(report.Updated) != 2 {
		t.Fatalf("expected customer and cash leg updated, got %d updates", len(report.Updated))
	}

	ledgerRepo := postgres.NewLedgerRepository(testDB.Pool)
	cash, err := ledgerRepo.GetByID(ctx, "ldg_cash")
	if err != nil {
		t.Fatalf("load cash ledger: %v", err)
	}
	if !cash.OutstandingBalance.Amount.Equal(decimal.NewFromInt(250)) || cash.OutstandingBalance.Side != domain.Credit {
		t.Fatalf("expected cash {250 credit}, got {%s %s}",
			cash.OutstandingBalance.Amount, cash.OutstandingBalance.Side)
	}

	customerRepo := postgres.NewCustomerRepository(testDB.Pool)
	updatedCustomer, err := customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("load customer: %v", err)
	}
	if !updatedCustomer.OutstandingBalance.Amount.Equal(decimal.NewFromInt(250)) || updatedCustomer.OutstandingBalance.Side != domain.Debit {
		t.Fatalf("expected customer {250 debit}, got {%s %s}",
			updatedCustomer.OutstandingBalance.Amount, updatedCustomer.OutstandingBalance.Side)
	}

	// Reverse the voucher and expect both balances restored.
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/vouchers/1", nil)
	reverseResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("reverse voucher: %v", err)
	}
	defer reverseResp.Body.Close()

	if reverseResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on reversal, got %d", reverseResp.StatusCode)
	}

	cash, err = ledgerRepo.GetByID(ctx, "ldg_cash")
	if err != nil {
		t.Fatalf("reload cash ledger: %v", err)
	}
	if !cash.OutstandingBalance.Amount.IsZero() {
		t.Fatalf("expected cash restored to zero, got %s", cash.OutstandingBalance.Amount)
	}
}

func TestBalanceSheetBalancesAfterPosting(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	customer := testDB.CreateTestCustomer(ctx, "Acme Traders", "Acme", domain.ZeroBalance())
	srv := newTestServer(t, testDB)

	payload, _ := json.Marshal(dto.PostVoucherRequest{
		Type:     "receipt",
		LedgerID: "ldg_bank",
		Parties: []dto.PartyRequest{
			{PartyID: customer.ID, Kind: "customer", Amount: decimal.NewFromInt(400)},
		},
	})

	resp, err := http.Post(srv.URL+"/api/v1/vouchers", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("post voucher: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	sheetResp, err := http.Get(srv.URL + "/api/v1/balance-sheet")
	if err != nil {
		t.Fatalf("get balance sheet: %v", err)
	}
	defer sheetResp.Body.Close()

	if sheetResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", sheetResp.StatusCode)
	}

	var sheet dto.BalanceSheetResponse
	if err := json.NewDecoder(sheetResp.Body).Decode(&sheet); err != nil {
		t.Fatalf("decode balance sheet: %v", err)
	}

	// A receipt moves value between two asset accounts, so the sheet must
	// stay balanced.
	if !sheet.Totals.Balance.IsZero() {
		t.Fatalf("expected balanced sheet, got imbalance %s", sheet.Totals.Balance)
	}
}

func TestReconciliationCleanAfterPosting(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	customer := testDB.CreateTestCustomer(ctx, "Acme Traders", "Acme", domain.ZeroBalance())
	srv := newTestServer(t, testDB)

	payload, _ := json.Marshal(dto.PostVoucherRequest{
		Type:     "payment",
		LedgerID: "ldg_cash",
		Parties: []dto.PartyRequest{
			{PartyID: customer.ID, Kind: "customer", Amount: decimal.NewFromInt(75)},
		},
	})

	resp, err := http.Post(srv.URL+"/api/v1/vouchers", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("post voucher: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	reconResp, err := http.Get(srv.URL + "/api/v1/reconciliation")
	if err != nil {
		t.Fatalf("get reconciliation: %v", err)
	}
	defer reconResp.Body.Close()

	var report dto.ReconciliationReportResponse
	if err := json.NewDecoder(reconResp.Body).Decode(&report); err != nil {
		t.Fatalf("decode reconciliation: %v", err)
	}

	if len(report.Discrepancies) != 0 {
		t.Fatalf("expected no discrepancies after clean posting, got %d", len(report.Discrepancies))
	}
	if report.ReconciledAccounts != report.TotalAccounts {
		t.Fatalf("expected all %d accounts reconciled, got %d",
			report.TotalAccounts, report.ReconciledAccounts)
	}
}
