package handlers

import (
	"net/http"

	"github.com/MegaGrindStone/finbot-web/internal/market"
	"github.com/pkg/errors"
)

// HandleSidebar switches the page's sidebar to the "view" query parameter and renders the sidebar.
// Selecting the visible view again renders the same content.
func (m Main) HandleSidebar(w http.ResponseWriter, r *http.Request) {
	s, ok := m.page(w, r)
	if !ok {
		return
	}

	if v := r.URL.Query().Get("view"); v != "" {
		if err := s.Sidebar.SelectView(market.View(v)); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, market.ErrUnknownView) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}
	}

	if err := m.templates.ExecuteTemplate(w, "sidebar", sidebarView(s.ID, s.Sidebar)); err != nil {
		m.logger.Error().Str(errLoggerKey, err.Error()).Msg("Failed to execute sidebar template")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
