package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/courtside/internal/api/handler"
	"github.com/albapepper/courtside/internal/api/respond"
	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/metrics"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(h *handler.Handler, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(Recoverer)
	r.Use(TimingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(middleware.Compress(5))

	c := corslib.New(corslib.Options{
		AllowedOrigins: cfg.CORSAllowOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "Cache-Control", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Request-Id", "Retry-After"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteError(w, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// --- Routes ---
	r.Get("/", h.Root)
	r.Get("/health", h.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	r.Route("/api", func(r chi.Router) {
		mountAPI(r, h)
	})

	return r
}
