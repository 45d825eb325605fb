// Package metrics holds the Prometheus registry of the bedrockgate server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/teilomillet/bedrockgate/errors"
)

// Metrics encapsulates Prometheus metrics for the server.
type Metrics struct {
	registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ActiveRequests  *prometheus.GaugeVec
	FailuresTotal   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with a custom registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bedrockgate_http_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bedrockgate_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		ActiveRequests: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "bedrockgate_http_active_requests",
				Help: "Number of currently active HTTP requests",
			},
			[]string{"method"},
		),
		FailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bedrockgate_failures_total",
				Help: "Failed generation requests by failure kind",
			},
			[]string{"type"},
		),
	}

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Export every failure kind from the start so rate() queries see zeros.
	for _, t := range errors.Types {
		m.FailuresTotal.WithLabelValues(string(t)).Add(0)
	}

	return m
}

// Registry exposes the registry so other components (the provider client)
// can register their own collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordFailure counts one failed request of the given kind.
func (m *Metrics) RecordFailure(errType errors.ErrorType) {
	m.FailuresTotal.WithLabelValues(string(errType)).Inc()
}

// Handler returns a handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: false,
	})
}
