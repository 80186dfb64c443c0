package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ObserveSearch records one search request.
func (m *Metrics) ObserveSearch(source, outcome string, start time.Time) {
	m.searchesTotal.WithLabelValues(source, outcome).Inc()
	m.searchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

// IncrementEmbeddingFallbacks counts one hash-fallback embedding.
func (m *Metrics) IncrementEmbeddingFallbacks() {
	m.embeddingFallbacksTotal.Inc()
}

// IncrementIndexJobs counts one indexing job with its terminal status
// ("indexed", "failed", or "dropped").
func (m *Metrics) IncrementIndexJobs(status string) {
	m.indexJobsTotal.WithLabelValues(status).Inc()
}

// IncrementPlaysRecorded counts one recorded play event.
func (m *Metrics) IncrementPlaysRecorded() {
	m.playsRecordedTotal.Inc()
}

// CreateCounter registers an additional CounterVec on the service registry.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// CreateHistogram registers an additional HistogramVec on the service registry.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets}, labels)
	m.Registry.MustRegister(hist)
	return hist
}

// CreateGauge registers an additional GaugeVec on the service registry.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
	m.Registry.MustRegister(gauge)
	return gauge
}
