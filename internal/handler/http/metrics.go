package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"readability-audit/internal/handler/http/pathutil"
	"readability-audit/internal/observability/slo"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Buckets run from 5ms to 10s so p95/p99 stay accurate for both cached
	// analyses and slow full-page audits.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	httpRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_analyses_total",
			Help: "Total number of text analyses served by the API",
		},
		[]string{"language", "status"},
	)

	analysisTextBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "api_analysis_text_bytes",
			Help:    "Size distribution of analyzed text in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 6),
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// MetricsMiddleware records per-request counters, latency, sizes, and the
// in-flight gauge. Paths are normalized first so IDs in URLs do not blow up
// label cardinality.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		normalizedPath := pathutil.NormalizePath(r.URL.Path)

		if r.ContentLength > 0 {
			httpRequestSize.WithLabelValues(r.Method, normalizedPath).Observe(float64(r.ContentLength))
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rw, r)
		duration := time.Since(start).Seconds()

		status := strconv.Itoa(rw.statusCode)
		slo.RecordRequest(rw.statusCode)
		httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, normalizedPath, status).Observe(duration)
		httpResponseSize.WithLabelValues(r.Method, normalizedPath).Observe(float64(rw.size))
	})
}

// MetricsHandler serves the Prometheus endpoint. Extra gatherers, such as the
// analyzer's engine registry, are merged with the default registry so one
// /metrics endpoint exposes everything.
func MetricsHandler(extra ...prometheus.Gatherer) http.Handler {
	if len(extra) == 0 {
		return promhttp.Handler()
	}
	gatherers := append(prometheus.Gatherers{prometheus.DefaultGatherer}, extra...)
	return promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})
}

// RecordAnalysis counts one analysis request and observes its text size.
func RecordAnalysis(language string, success bool, textBytes int) {
	status := "success"
	if !success {
		status = "failure"
	}
	analysesTotal.WithLabelValues(language, status).Inc()
	if textBytes > 0 {
		analysisTextBytes.Observe(float64(textBytes))
	}
}
