// Package metrics exposes Prometheus metrics for the retrieval service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector provides application metrics collection
type Collector struct {
	registry *prometheus.Registry

	// API Metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	// Retrieval Metrics
	RetrievalsTotal    *prometheus.CounterVec
	RetrievalDuration  *prometheus.HistogramVec
	RetrievalDaysAhead *prometheus.HistogramVec
}

// NewCollector creates a collector backed by its own registry.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		APIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by endpoint, method, and status",
			},
			[]string{"endpoint", "method", "status"},
		),

		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"endpoint"},
		),

		RetrievalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retrievals_total",
				Help:      "Total number of Tsi retrievals by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),

		RetrievalDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "retrieval_duration_seconds",
				Help:      "Duration of Tsi retrievals in seconds, file reads included",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"kind"},
		),

		RetrievalDaysAhead: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "retrieval_days_skipped",
				Help:      "Days between the requested date and the archive file that served it",
				Buckets:   []float64{0, 1, 2, 3, 5, 7, 14, 31},
			},
			[]string{"kind"},
		),
	}
}

// ObserveRetrieval records one retrieval outcome.
func (c *Collector) ObserveRetrieval(kind, outcome string, elapsed time.Duration) {
	c.RetrievalsTotal.WithLabelValues(kind, outcome).Inc()
	c.RetrievalDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveDaysSkipped records how far the locator advanced past the requested day.
func (c *Collector) ObserveDaysSkipped(kind string, days int) {
	c.RetrievalDaysAhead.WithLabelValues(kind).Observe(float64(days))
}

// RecordAPIRequest increments API request counter
func (c *Collector) RecordAPIRequest(endpoint, method, status string, elapsed time.Duration) {
	c.APIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
	c.APIRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
