package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Logger logs one line per request under the "http" module. The line carries the matched route and,
// for per-page routes, the page the request acted on. Server errors log at error level and client
// errors at warn level.
func Logger(logger zerolog.Logger) func(next http.Handler) http.Handler {
	logger = logger.With().Str("module", "http").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				var ev *zerolog.Event
				switch {
				case status >= http.StatusInternalServerError:
					ev = logger.Error()
				case status >= http.StatusBadRequest:
					ev = logger.Warn()
				default:
					ev = logger.Info()
				}

				ev = ev.Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", status).
					Int("bytes", ww.BytesWritten()).
					Dur("latency", time.Since(start)).
					Str("request_id", middleware.GetReqID(r.Context()))

				// The route context is filled in while the request is routed, so it is read afterwards.
				pageID := r.URL.Query().Get("page_id")
				if rctx := chi.RouteContext(r.Context()); rctx != nil {
					if pattern := rctx.RoutePattern(); pattern != "" {
						ev = ev.Str("route", pattern)
					}
					if id := rctx.URLParam("pageID"); id != "" {
						pageID = id
					}
				}
				if pageID != "" {
					ev = ev.Str("pageID", pageID)
				}

				ev.Msg("Request completed")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
