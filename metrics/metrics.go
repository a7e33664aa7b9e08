/*
	metrics package exposes Prometheus instrumentation for the search
	engine: query traffic and latency on the serving side, pass outcomes
	and corpus size on the build side.
*/

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors for one engine instance. All collectors are
// registered on a private registry so tests can create instances freely.
type Metrics struct {
	registry *prometheus.Registry

	// QueriesTotal counts served search queries.
	QueriesTotal prometheus.Counter

	// QueryDuration observes end-to-end query computation time.
	QueryDuration prometheus.Histogram

	// QueryHits observes the candidate count per query.
	QueryHits prometheus.Histogram

	// BuildPassesTotal counts snapshot build passes by outcome.
	BuildPassesTotal *prometheus.CounterVec

	// BuildDuration observes full build pass duration.
	BuildDuration prometheus.Histogram

	// DocumentsIndexed tracks the document count of the published
	// snapshot.
	DocumentsIndexed prometheus.Gauge
}

// New creates a Metrics instance backed by its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		QueriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "wikisearch_queries_total",
			Help: "Total number of search queries served.",
		}),
		QueryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wikisearch_query_duration_seconds",
			Help:    "Search query computation time in seconds.",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		QueryHits: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wikisearch_query_hits",
			Help:    "Number of candidate documents per query.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		}),
		BuildPassesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wikisearch_build_passes_total",
			Help: "Total number of snapshot build passes by outcome.",
		}, []string{"outcome"}),
		BuildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wikisearch_build_duration_seconds",
			Help:    "Snapshot build pass duration in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		DocumentsIndexed: factory.NewGauge(prometheus.GaugeOpts{
			Name: "wikisearch_documents_indexed",
			Help: "Document count of the currently published snapshot.",
		}),
	}
}

// Handler returns an HTTP handler serving the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
