package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/realsushi-official/barinsta/internal/api/middleware"
	"github.com/realsushi-official/barinsta/internal/handlers"
)

// NewRouter creates and configures the UI bridge router.
func NewRouter(logger zerolog.Logger, h *handlers.Handler, uiOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(64 * 1024))

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// CORS - only the local UI is allowed
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   uiOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", h.Health)

	r.Get("/inbox", h.GetInbox)
	r.Get("/inbox/pending", h.GetPendingInbox)
	r.Post("/inbox/refresh", h.RefreshInbox)
	r.Post("/inbox/{threadID}/accept", h.AcceptThread)

	r.Post("/share", h.Share)

	return r
}
