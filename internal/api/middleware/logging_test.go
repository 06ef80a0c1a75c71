package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MegaGrindStone/finbot-web/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedRouter(buf *bytes.Buffer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger(zerolog.New(buf)))
	r.Route("/pages/{pageID}", func(r chi.Router) {
		r.Put("/draft", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})
	r.Get("/sse/events", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return r
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		target    string
		wantLevel string
		wantRoute string
		wantPage  string
		wantCode  float64
	}{
		{
			name:      "page route",
			method:    http.MethodPut,
			target:    "/pages/abc/draft",
			wantLevel: "info",
			wantRoute: "/pages/{pageID}/draft",
			wantPage:  "abc",
			wantCode:  http.StatusNoContent,
		},
		{
			name:      "stream with page query",
			method:    http.MethodGet,
			target:    "/sse/events?page_id=xyz",
			wantLevel: "info",
			wantRoute: "/sse/events",
			wantPage:  "xyz",
			wantCode:  http.StatusOK,
		},
		{
			name:      "server error",
			method:    http.MethodGet,
			target:    "/boom",
			wantLevel: "error",
			wantRoute: "/boom",
			wantCode:  http.StatusInternalServerError,
		},
		{
			name:      "no route",
			method:    http.MethodGet,
			target:    "/nowhere",
			wantLevel: "warn",
			wantCode:  http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := newLoggedRouter(&buf)

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.target, nil))

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

			assert.Equal(t, "http", line["module"])
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, tt.method, line["method"])
			assert.Equal(t, tt.wantCode, line["status"])
			assert.Equal(t, "Request completed", line["message"])

			if tt.wantRoute == "" {
				assert.NotContains(t, line, "route")
			} else {
				assert.Equal(t, tt.wantRoute, line["route"])
			}
			if tt.wantPage == "" {
				assert.NotContains(t, line, "pageID")
			} else {
				assert.Equal(t, tt.wantPage, line["pageID"])
			}
		})
	}
}
