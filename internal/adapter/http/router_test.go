package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tradebooks/tradebooks/internal/adapter/http/handler"
	apimiddleware "github.com/tradebooks/tradebooks/internal/adapter/http/middleware"
	"github.com/tradebooks/tradebooks/internal/domain"
	"github.com/tradebooks/tradebooks/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/api/v1/reconciliation", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/reconciliation", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"type":"journal","entries":[{"account":"Cash","debit":"10","credit":"0"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vouchers/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/vouchers/",
		"DELETE /api/v1/vouchers/{number}",
		"GET /api/v1/balance-sheet",
		"GET /api/v1/reconciliation",
		"POST /api/v1/sequences/{name}/next",
		"GET /api/v1/sequences/{name}",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		HealthHandler:         &handler.HealthHandler{},
		VoucherHandler:        handler.NewVoucherHandler(&stubVoucherService{}),
		BalanceSheetHandler:   handler.NewBalanceSheetHandler(&stubBalanceSheetService{}),
		ReconciliationHandler: handler.NewReconciliationHandler(&stubReconciliationService{}),
		SequenceHandler:       handler.NewSequenceHandler(&stubSequenceService{}),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubVoucherService struct{}

func (stubVoucherService) PostVoucher(ctx context.Context, voucher *domain.Voucher) (*usecase.PostingReport, error) {
	return &usecase.PostingReport{VoucherID: "vch", VoucherNumber: 1}, nil
}

func (stubVoucherService) ReverseVoucher(ctx context.Context, number int64) (*usecase.PostingReport, error) {
	return &usecase.PostingReport{VoucherID: "vch", VoucherNumber: number}, nil
}

type stubBalanceSheetService struct{}

func (stubBalanceSheetService) GetBalanceSheet(ctx context.Context, asOf *time.Time) (*domain.BalanceSheet, error) {
	return &domain.BalanceSheet{}, nil
}

type stubReconciliationService struct{}

func (stubReconciliationService) Reconcile(ctx context.Context) (*usecase.ReconciliationReport, error) {
	return &usecase.ReconciliationReport{}, nil
}

type stubSequenceService struct{}

func (stubSequenceService) Next(ctx context.Context, name string) (int64, error) { return 1, nil }

func (stubSequenceService) Peek(ctx context.Context, name string) (int64, error) { return 0, nil }

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
