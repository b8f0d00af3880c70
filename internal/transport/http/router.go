package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"divicli/internal/config"
	custommw "divicli/internal/middleware"
	"divicli/internal/services"
)

// NewRouter assembles the API router with the standard middleware chain.
func NewRouter(cfg *config.Config, service *services.DividendService, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := custommw.NewRequestMetrics(registry)

	r.Use(custommw.RequestID)
	r.Use(custommw.StructuredLogger(logger))
	r.Use(custommw.Recoverer(logger))
	r.Use(metrics.Handler)
	if cfg.Server.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	health := NewHealthHandler()
	r.Get("/healthz", health.HealthCheck)
	r.Method("GET", "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	dividendHandler := NewDividendHandler(service, logger)
	r.Route("/api", dividendHandler.RegisterRoutes)

	return r
}
