package provider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type clientMetrics struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// newClientMetrics sets up Prometheus metrics. A nil registerer leaves them
// unregistered.
func newClientMetrics(registry prometheus.Registerer) *clientMetrics {
	factory := promauto.With(registry)

	return &clientMetrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bedrockgate_provider_requests_total",
			Help: "Bedrock calls by operation and outcome",
		}, []string{"operation", "outcome"}),

		requestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bedrockgate_provider_request_latency_seconds",
			Help:    "Latency of Bedrock calls",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
		}, []string{"operation"}),
	}
}
