package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Upstream call outcomes as recorded on the client metrics.
const (
	OutcomeOK       = "ok"
	OutcomeNetwork  = "network_error"
	OutcomeRejected = "rejected"
	OutcomeAuth     = "unauthorized"
)

// UpstreamMetrics records calls made to the marketplace API.
type UpstreamMetrics struct {
	duration *prometheus.HistogramVec
	calls    *prometheus.CounterVec
}

// NewUpstreamMetrics registers the upstream client metrics on the provided registerer.
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_call_duration_seconds",
		Help:    "Duration of marketplace API calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"group"})
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_calls_total",
		Help: "Marketplace API calls by endpoint group and outcome.",
	}, []string{"group", "outcome"})
	reg.MustRegister(duration, calls)
	return &UpstreamMetrics{
		duration: duration,
		calls:    calls,
	}
}

// Observe records one completed upstream call.
func (u *UpstreamMetrics) Observe(group, outcome string, elapsed time.Duration) {
	if u == nil {
		return
	}
	if u.duration != nil {
		u.duration.WithLabelValues(normalizeLabel(group)).Observe(elapsed.Seconds())
	}
	if u.calls != nil {
		u.calls.WithLabelValues(normalizeLabel(group), normalizeLabel(outcome)).Inc()
	}
}
