package http

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/catalog-indexer/internal/service"
	"github.com/utafrali/catalog-indexer/pkg/health"
	"github.com/utafrali/catalog-indexer/pkg/middleware"
)

// RouterConfig carries the router's operational knobs.
type RouterConfig struct {
	// PprofCIDRs restricts /debug/pprof to the given networks. Empty
	// disables the pprof routes.
	PprofCIDRs []string

	// AdminToken guards the mutating endpoints when set. Empty leaves
	// them open, which is only acceptable in development.
	AdminToken string
}

// staticTokenValidator accepts exactly one bearer token and maps it to the
// admin role.
func staticTokenValidator(token string) middleware.TokenValidator {
	return func(candidate string) (*middleware.Claims, error) {
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(token)) != 1 {
			return nil, errors.New("invalid token")
		}
		return &middleware.Claims{UserID: "admin", Role: "admin"}, nil
	}
}

// NewRouter creates a chi router with all indexer routes registered.
func NewRouter(
	indexerService *service.IndexerService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("indexer"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("indexer"))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	if len(cfg.PprofCIDRs) > 0 {
		middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)
	}

	indexerHandler := NewIndexerHandler(indexerService, logger)

	r.Route("/api/v1/index", func(r chi.Router) {
		r.Get("/status", indexerHandler.Status)

		r.Group(func(r chi.Router) {
			if cfg.AdminToken != "" {
				r.Use(middleware.Auth(staticTokenValidator(cfg.AdminToken)))
				r.Use(middleware.RequireRole("admin"))
			}
			r.Post("/reindex", indexerHandler.Reindex)
			r.Delete("/{entityType}/{uid}", indexerHandler.DeleteDocument)
		})
	})

	return r
}
