package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/de-tools/dealer-planner/pkg/metrics"
)

// Metrics records request counts and latency, labelled by the matched
// route pattern so path parameters do not explode the cardinality.
func Metrics(m *metrics.PlannerMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, req)

			route := req.URL.Path
			if rctx := chi.RouteContext(req.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			m.ObserveRequest(req.Method, route, rec.Status(), time.Since(start))
		})
	}
}
