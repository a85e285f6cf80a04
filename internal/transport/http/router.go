package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"idcheck/internal/platform/metrics"
	"idcheck/internal/platform/middleware"
	"idcheck/pkg/platform/httputil"
	"idcheck/pkg/platform/middleware/accesslog"
	"idcheck/pkg/platform/middleware/metadata"
	"idcheck/pkg/platform/middleware/requestid"
	"idcheck/pkg/platform/middleware/requesttime"
)

// HealthChecker reports whether the service's dependencies are reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// RouteRegistrar mounts a feature's routes, with their full /v1 paths.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// RouterConfig holds everything the router wires together. Auth is optional;
// when nil the API routes are open.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	Health         HealthChecker
	Auth           middleware.TokenValidator
	Routes         []RouteRegistrar
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// NewRouter builds the chi router with the shared middleware chain, the
// open operational endpoints and the API routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(accesslog.Middleware(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	r.Get("/health", handleHealth(cfg.Health, cfg.Logger))

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Group(func(api chi.Router) {
		if cfg.Auth != nil {
			api.Use(middleware.RequireAuth(cfg.Auth, cfg.Logger))
		}
		for _, registrar := range cfg.Routes {
			registrar.Register(api)
		}
	})
	return r
}

func handleHealth(checker HealthChecker, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.Health(r.Context()); err != nil {
				logger.WarnContext(r.Context(), "health check failed", "error", err)
				httputil.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Service: "idcheck"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: "idcheck"})
	}
}
