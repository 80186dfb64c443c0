// Package metrics exposes Prometheus metrics for the recommendation and
// search pipeline. Each service process owns an isolated registry served on
// its own /metrics endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus registry, the HTTP server exposing it, and the
// pipeline's core instruments.
type Metrics struct {
	Server   *http.Server
	Registry *prometheus.Registry

	searchesTotal           *prometheus.CounterVec
	searchDuration          *prometheus.HistogramVec
	embeddingFallbacksTotal prometheus.Counter
	indexJobsTotal          *prometheus.CounterVec
	playsRecordedTotal      prometheus.Counter
}

// NewMetrics builds a Metrics instance with a dedicated registry. All metrics
// carry a constant service label so multiple processes can share a scrape
// config.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
		searchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "searches_total",
			Help: "Search requests by result source and outcome",
		}, []string{"source", "outcome"}),
		searchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "search_duration_seconds",
			Help:    "Search latency by result source",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		embeddingFallbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "embedding_fallbacks_total",
			Help: "Embeddings served by the deterministic hash fallback",
		}),
		indexJobsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "index_jobs_total",
			Help: "Song indexing jobs by terminal status",
		}, []string{"status"}),
		playsRecordedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "plays_recorded_total",
			Help: "Play events recorded in the preference tracker",
		}),
	}

	wrapped.MustRegister(
		m.searchesTotal,
		m.searchDuration,
		m.embeddingFallbacksTotal,
		m.indexJobsTotal,
		m.playsRecordedTotal,
	)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	return m
}
