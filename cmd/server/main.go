package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/tradebooks/tradebooks/internal/adapter/http"
	"github.com/tradebooks/tradebooks/internal/adapter/http/handler"
	"github.com/tradebooks/tradebooks/internal/adapter/http/middleware"
	postgresRepo "github.com/tradebooks/tradebooks/internal/adapter/repository/postgres"
	redisRepo "github.com/tradebooks/tradebooks/internal/adapter/repository/redis"
	"github.com/tradebooks/tradebooks/internal/infrastructure/config"
	"github.com/tradebooks/tradebooks/internal/infrastructure/logger"
	"github.com/tradebooks/tradebooks/internal/infrastructure/metrics"
	"github.com/tradebooks/tradebooks/internal/infrastructure/postgres"
	"github.com/tradebooks/tradebooks/internal/infrastructure/redis"
	"github.com/tradebooks/tradebooks/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	customerRepo := postgresRepo.NewCustomerRepository(pool)
	vendorRepo := postgresRepo.NewVendorRepository(pool)
	groupRepo := postgresRepo.NewGroupRepository(pool)
	voucherRepo := postgresRepo.NewVoucherRepository(pool)
	tripRepo := postgresRepo.NewTripRepository(pool)
	stockRepo := postgresRepo.NewStockRepository(pool)
	sequenceRepo := postgresRepo.NewSequenceRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	reportCache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	m := metrics.New()

	// Initialize use cases
	resolver := usecase.NewRepoAccountResolver(ledgerRepo, customerRepo, vendorRepo)
	postingUC := usecase.NewPostingUseCase(
		txManager, ledgerRepo, customerRepo, vendorRepo,
		voucherRepo, sequenceRepo, resolver, idGen, retrier, m, log,
	)
	sheetUC := usecase.NewBalanceSheetUseCase(
		ledgerRepo, customerRepo, vendorRepo, groupRepo,
		voucherRepo, tripRepo, stockRepo, reportCache, m, log,
	)
	reconcileUC := usecase.NewReconciliationUseCase(
		ledgerRepo, customerRepo, vendorRepo, voucherRepo, tripRepo, stockRepo, m,
	)
	sequenceUC := usecase.NewSequenceUseCase(sequenceRepo, m)

	// Initialize handlers
	voucherHandler := handler.NewVoucherHandler(postingUC)
	sheetHandler := handler.NewBalanceSheetHandler(sheetUC)
	reconcileHandler := handler.NewReconciliationHandler(reconcileUC)
	sequenceHandler := handler.NewSequenceHandler(sequenceUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		VoucherHandler:        voucherHandler,
		BalanceSheetHandler:   sheetHandler,
		ReconciliationHandler: reconcileHandler,
		SequenceHandler:       sequenceHandler,
		HealthHandler:         healthHandler,
		IdempotencyStore:      idempotencyStore,
		RateLimiter:           rateLimiter,
		Logger:                log,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
