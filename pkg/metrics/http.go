package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records gateway request metadata.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewHTTPMetrics registers the gateway HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_request_duration_seconds",
		Help:    "Duration of storefront gateway requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_requests_total",
		Help: "Storefront gateway requests by route, method and status.",
	}, []string{"route", "method", "status"})
	reg.MustRegister(duration, requests)
	return &HTTPMetrics{
		duration: duration,
		requests: requests,
	}
}

// Observe records one completed request.
func (h *HTTPMetrics) Observe(route, method, status string, elapsed time.Duration) {
	if h == nil {
		return
	}
	if h.duration != nil {
		h.duration.WithLabelValues(normalizeLabel(route), normalizeLabel(method)).Observe(elapsed.Seconds())
	}
	if h.requests != nil {
		h.requests.WithLabelValues(normalizeLabel(route), normalizeLabel(method), normalizeLabel(status)).Inc()
	}
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
