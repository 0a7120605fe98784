// Package metrics holds the Prometheus instruments for tool invocations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"financetools/internal/tool"
)

// Metrics contains all Prometheus metrics for the tool host.
type Metrics struct {
	registry *prometheus.Registry

	Invocations *prometheus.CounterVec
	LatencyMs   *prometheus.HistogramVec
}

// New creates the metrics on a private registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "financetools_tool_invocations_total",
			Help: "Total number of tool invocations by tool and outcome",
		}, []string{"tool", "outcome"}),

		LatencyMs: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "financetools_tool_latency_ms",
			Help:    "Tool invocation latency in milliseconds, provider calls included",
			Buckets: []float64{5, 25, 100, 250, 500, 1000, 2500, 5000, 10000},
		}, []string{"tool"}),
	}
}

// ObserveInvocation implements tool.Observer.
func (m *Metrics) ObserveInvocation(name string, res tool.Result, elapsed time.Duration) {
	outcome := "success"
	if res.IsError() {
		outcome = "error"
	}
	m.Invocations.WithLabelValues(name, outcome).Inc()
	m.LatencyMs.WithLabelValues(name).Observe(float64(elapsed.Microseconds()) / 1000)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
