package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PlannerMetrics records request handling and plan computation counters
// for the planning API.
type PlannerMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	plans    *prometheus.CounterVec
}

// NewPlannerMetrics registers the planner metrics on the provided registerer.
func NewPlannerMetrics(reg prometheus.Registerer) *PlannerMetrics {
	if reg == nil {
		return &PlannerMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plans_computed_total",
		Help: "Plans computed, by mode (baseline, scenario, target, actions).",
	}, []string{"mode"})
	reg.MustRegister(requests, duration, plans)
	return &PlannerMetrics{
		requests: requests,
		duration: duration,
		plans:    plans,
	}
}

// ObserveRequest records one handled HTTP request.
func (m *PlannerMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(normalizeLabel(route)).Observe(elapsed.Seconds())
}

// IncPlans increments the computed plan counter for the given mode.
func (m *PlannerMetrics) IncPlans(mode string) {
	if m == nil || m.plans == nil {
		return
	}
	m.plans.WithLabelValues(normalizeLabel(mode)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
