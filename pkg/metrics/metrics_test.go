package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("/api/v1/cart", "GET", "200", 50*time.Millisecond)
	m.Observe("/api/v1/cart", "GET", "200", 20*time.Millisecond)
	m.Observe("", "", "", time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	counter := findFamily(families, "gateway_requests_total")
	require.NotNil(t, counter, "counter family missing")

	var cartCount, unknownCount float64
	for _, metric := range counter.GetMetric() {
		switch labelValue(metric, "route") {
		case "/api/v1/cart":
			cartCount = metric.GetCounter().GetValue()
		case "unknown":
			unknownCount = metric.GetCounter().GetValue()
		}
	}
	require.Equal(t, float64(2), cartCount)
	require.Equal(t, float64(1), unknownCount, "empty labels should normalize to unknown")

	require.NotNil(t, findFamily(families, "gateway_request_duration_seconds"))
}

func TestUpstreamMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewUpstreamMetrics(reg)

	m.Observe("cart", OutcomeOK, 10*time.Millisecond)
	m.Observe("cart", OutcomeNetwork, 10*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	calls := findFamily(families, "upstream_calls_total")
	require.NotNil(t, calls)
	require.Len(t, calls.GetMetric(), 2)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var h *HTTPMetrics
	var u *UpstreamMetrics
	h.Observe("r", "GET", "200", time.Second)
	u.Observe("g", OutcomeOK, time.Second)

	unregistered := NewHTTPMetrics(nil)
	unregistered.Observe("r", "GET", "200", time.Second)
}

func findFamily(families []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

func labelValue(metric *dto.Metric, name string) string {
	for _, label := range metric.GetLabel() {
		if label.GetName() == name {
			return label.GetValue()
		}
	}
	return ""
}
