package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finbot_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finbot_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Chat panel metrics
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finbot_chat_submissions_total",
			Help: "Chat submissions by outcome of the precondition check",
		},
		[]string{"result"}, // "accepted", "empty", "composing", "disconnected"
	)

	Replies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finbot_chat_replies_total",
			Help: "Assistant replies appended, by origin",
		},
		[]string{"outcome"}, // "success", "service_error", "unreachable"
	)

	HealthChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finbot_health_checks_total",
			Help: "Backend health checks by resulting status",
		},
		[]string{"status"},
	)

	ChatLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "finbot_chat_latency_seconds",
			Help:    "Chat service round-trip latency",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	ActivePages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "finbot_active_pages",
			Help: "Mounted chat pages",
		},
	)

	// Reference backend metrics
	ResponderRules = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finbot_responder_rule_hits_total",
			Help: "Responder dispatches by matched rule",
		},
		[]string{"rule"},
	)
)

// unmatchedPath labels requests no route matched.
const unmatchedPath = "unmatched"

// Middleware records request counts and durations. Paths are labelled with the chi route pattern so
// per-page URLs don't explode label cardinality; requests that match no route share one label.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := unmatchedPath
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
