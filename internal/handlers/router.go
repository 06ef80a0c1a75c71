package handlers

import (
	"io/fs"
	"net/http"

	finbotweb "github.com/MegaGrindStone/finbot-web"
	"github.com/MegaGrindStone/finbot-web/internal/api/middleware"
	"github.com/MegaGrindStone/finbot-web/internal/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires the page handlers, the embedded static files and the metrics endpoint.
func (m Main) Router() (http.Handler, error) {
	staticFS, err := fs.Sub(finbotweb.StaticFS, "static")
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(m.logger))
	r.Use(chimw.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", m.HandleHome)
	r.Get("/sse/events", m.HandleSSE)

	r.Route("/pages/{pageID}", func(r chi.Router) {
		r.Post("/messages", m.HandleMessages)
		r.Post("/suggestions/{index}", m.HandleSuggestion)
		r.Post("/actions/{index}", m.HandleQuickAction)
		r.Put("/draft", m.HandleDraft)
		r.Post("/connection", m.HandleConnection)
		r.Get("/sidebar", m.HandleSidebar)
		r.Post("/close", m.HandleClose)
	})

	return r, nil
}
