package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tradebooks/tradebooks/internal/adapter/http/handler"
	"github.com/tradebooks/tradebooks/internal/adapter/http/middleware"
	"github.com/tradebooks/tradebooks/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	VoucherHandler        *handler.VoucherHandler
	BalanceSheetHandler   *handler.BalanceSheetHandler
	ReconciliationHandler *handler.ReconciliationHandler
	SequenceHandler       *handler.SequenceHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	RateLimiter           *middleware.RateLimiter
	Logger                zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Metrics)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Vouchers
		r.Route("/vouchers", func(r chi.Router) {
			r.Post("/", cfg.VoucherHandler.Post)
			r.Delete("/{number}", cfg.VoucherHandler.Reverse)
		})

		// Reports
		r.Get("/balance-sheet", cfg.BalanceSheetHandler.Get)
		r.Get("/reconciliation", cfg.ReconciliationHandler.Get)

		// Sequences
		r.Route("/sequences", func(r chi.Router) {
			r.Post("/{name}/next", cfg.SequenceHandler.Next)
			r.Get("/{name}", cfg.SequenceHandler.Peek)
		})
	})

	return r
}
