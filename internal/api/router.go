package api

import (
	"github.com/MegaGrindStone/finbot-web/internal/api/middleware"
	"github.com/MegaGrindStone/finbot-web/internal/metrics"
	"github.com/MegaGrindStone/finbot-web/internal/responder"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// maxBodySize bounds chat request bodies.
const maxBodySize = 8 * 1024

// NewRouter creates the router of the reference chat service.
func NewRouter(logger zerolog.Logger, resp responder.Responder) *chi.Mux {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestSize(maxBodySize))

	// Browsers call the service straight from the chat page during development.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h := NewHandler(resp, logger)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/analyze/{ticker}", h.Analyze)
	r.Post("/chat", h.Chat)

	return r
}
