// Package metrics holds the Prometheus instruments shared by the binaries.
// Everything registers on the default registry; the API exposes it on
// /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline metrics
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quakescope",
		Subsystem: "pipeline",
		Name:      "queries_total",
		Help:      "Total pipeline executions by outcome",
	}, []string{"status"})

	EventsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quakescope",
		Subsystem: "pipeline",
		Name:      "events_fetched_total",
		Help:      "Total raw features received from the catalog",
	})

	EventsReturned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quakescope",
		Subsystem: "pipeline",
		Name:      "events_returned_total",
		Help:      "Total events returned to callers after filtering",
	})

	// Catalog client metrics
	catalogRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quakescope",
		Subsystem: "catalog",
		Name:      "requests_total",
		Help:      "Total catalog HTTP requests by status",
	}, []string{"status"})

	catalogDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "quakescope",
		Subsystem: "catalog",
		Name:      "request_duration_seconds",
		Help:      "Catalog request latency in seconds",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})
)

// ObserveCatalogRequest records one catalog round trip. status is the HTTP
// status code, or "error" when the request never produced a response.
func ObserveCatalogRequest(status string, took time.Duration) {
	catalogRequests.WithLabelValues(status).Inc()
	catalogDuration.Observe(took.Seconds())
}
