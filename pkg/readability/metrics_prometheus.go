package readability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements MetricsCollector using Prometheus.
//
// All metrics are registered on a custom registry for better testability
// and isolation; expose it via promhttp.HandlerFor or register the
// collectors on an application registry through Registry().
type PrometheusMetrics struct {
	registry *prometheus.Registry

	// cacheOps counts syllable cache operations.
	// Labels:
	//   - result: "hit", "miss" or "eviction"
	cacheOps *prometheus.CounterVec

	// hyphenatorLoads counts hyphenation capability loads.
	// Labels:
	//   - language: normalized language name
	//   - status: "success" or "failure"
	hyphenatorLoads *prometheus.CounterVec

	// analysisDuration tracks the duration of full readability analyses.
	// Labels:
	//   - language: normalized language name
	//
	// Buckets target in-process text analysis: sub-millisecond for short
	// cached texts up to a second for very long first-seen documents.
	analysisDuration *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance with a custom
// registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	cacheOps := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readability_syllable_cache_ops_total",
			Help: "Syllable cache operations by result (hit, miss, eviction)",
		},
		[]string{"result"},
	)

	hyphenatorLoads := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readability_hyphenator_loads_total",
			Help: "Hyphenation capability loads by language and status",
		},
		[]string{"language", "status"},
	)

	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readability_analysis_duration_seconds",
			Help:    "Duration of readability analyses by language",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"language"},
	)

	registry.MustRegister(cacheOps, hyphenatorLoads, analysisDuration)

	return &PrometheusMetrics{
		registry:         registry,
		cacheOps:         cacheOps,
		hyphenatorLoads:  hyphenatorLoads,
		analysisDuration: analysisDuration,
	}
}

// Registry returns the Prometheus registry holding this collector's metrics.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordCacheHit records a syllable cache hit.
func (m *PrometheusMetrics) RecordCacheHit() {
	m.cacheOps.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a syllable cache miss.
func (m *PrometheusMetrics) RecordCacheMiss() {
	m.cacheOps.WithLabelValues("miss").Inc()
}

// RecordCacheEviction records the eviction of one syllable cache entry.
func (m *PrometheusMetrics) RecordCacheEviction() {
	m.cacheOps.WithLabelValues("eviction").Inc()
}

// RecordHyphenatorLoad records the outcome of a hyphenation capability load.
func (m *PrometheusMetrics) RecordHyphenatorLoad(language string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.hyphenatorLoads.WithLabelValues(language, status).Inc()
}

// RecordAnalysis records a completed analysis and its duration.
func (m *PrometheusMetrics) RecordAnalysis(language string, duration time.Duration) {
	m.analysisDuration.WithLabelValues(language).Observe(duration.Seconds())
}
