package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/oticapro/caixa/internal/adapter/http"
	"github.com/oticapro/caixa/internal/adapter/http/handler"
	"github.com/oticapro/caixa/internal/adapter/http/middleware"
	postgresRepo "github.com/oticapro/caixa/internal/adapter/repository/postgres"
	redisRepo "github.com/oticapro/caixa/internal/adapter/repository/redis"
	"github.com/oticapro/caixa/internal/infrastructure/config"
	"github.com/oticapro/caixa/internal/infrastructure/logger"
	"github.com/oticapro/caixa/internal/infrastructure/metrics"
	"github.com/oticapro/caixa/internal/infrastructure/postgres"
	"github.com/oticapro/caixa/internal/infrastructure/redis"
	"github.com/oticapro/caixa/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	monthlyRate, err := decimal.NewFromString(cfg.InterestMonthlyRate)
	if err != nil {
		log.Fatal().Err(err).Str("rate", cfg.InterestMonthlyRate).Msg("invalid monthly interest rate")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	connectCtx, connectCancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	connectCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize metrics
	appMetrics := metrics.New()

	// Initialize repositories
	entryRepo := postgresRepo.NewEntryRepository(pool)
	receivableRepo := postgresRepo.NewReceivableRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	// Initialize use cases
	reportUC := usecase.NewReportUseCase(entryRepo, appMetrics)
	mutationUC := usecase.NewMutationUseCase(entryRepo, reportUC, idGen, retrier, appLogger, appMetrics)
	receivableUC := usecase.NewReceivableUseCase(receivableRepo, idGen, monthlyRate, appMetrics)

	// Initialize handlers
	reportHandler := handler.NewReportHandler(reportUC)
	entryHandler := handler.NewEntryHandler(mutationUC, reportUC)
	receivableHandler := handler.NewReceivableHandler(receivableUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ReportHandler:     reportHandler,
		EntryHandler:      entryHandler,
		ReceivableHandler: receivableHandler,
		HealthHandler:     healthHandler,
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
		RateLimiter:       rateLimiter,
		Logger:            appLogger,
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
