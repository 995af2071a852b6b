package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the tool surface.
type Metrics struct {
	ToolInvocations *prometheus.CounterVec   // labels: tool, outcome={ok,validation_error,not_found,error}
	ToolDuration    *prometheus.HistogramVec // labels: tool
}

// NewMetrics creates and registers the tool metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers against a caller-supplied registry; tests use this
// to avoid duplicate registration on the default one.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ToolInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_tools",
			Name:      "tool_invocations_total",
			Help:      "Total tool calls by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		ToolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hazard_tools",
			Name:      "tool_duration_seconds",
			Help:      "Latency of tool calls, store fetch included.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"tool"}),
	}
	reg.MustRegister(m.ToolInvocations, m.ToolDuration)
	return m
}

// ObserveTool records one tool call. Nil-safe so metrics stay optional in tests.
func (m *Metrics) ObserveTool(tool, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.ToolInvocations.WithLabelValues(tool, outcome).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(seconds)
}
