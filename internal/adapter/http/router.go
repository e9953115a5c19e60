package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/oticapro/caixa/internal/adapter/http/handler"
	"github.com/oticapro/caixa/internal/adapter/http/middleware"
	"github.com/oticapro/caixa/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ReportHandler     *handler.ReportHandler
	EntryHandler      *handler.EntryHandler
	ReceivableHandler *handler.ReceivableHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	IdempotencyTTL    time.Duration
	RateLimiter       *middleware.RateLimiter
	Logger            zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1/stores/{store}", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Reports
		r.Get("/report", cfg.ReportHandler.GetReport)
		r.Get("/variance", cfg.ReportHandler.GetVariance)

		// Ledger entries
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.EntryHandler.Create)
			r.Get("/", cfg.EntryHandler.List)
			r.Put("/{id}", cfg.EntryHandler.Update)
			r.Delete("/{id}", cfg.EntryHandler.Delete)
		})

		// Receivables
		r.Route("/receivables", func(r chi.Router) {
			r.Post("/", cfg.ReceivableHandler.Create)
			r.Get("/", cfg.ReceivableHandler.List)
			r.Get("/{id}", cfg.ReceivableHandler.Get)
			r.Put("/{id}", cfg.ReceivableHandler.Update)
			r.Delete("/{id}", cfg.ReceivableHandler.Delete)
			r.Get("/{id}/interest", cfg.ReceivableHandler.GetInterest)
		})
	})

	return r
}
