package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"readability-audit/internal/pkg/config"
)

// WorkerMetrics provides Prometheus metrics for the audit worker component.
// It embeds the standard ConfigMetrics for configuration monitoring and adds
// worker-specific metrics for scheduled audit run tracking.
//
// Embedded metrics (from ConfigMetrics):
//   - worker_config_load_timestamp: Unix timestamp of last configuration load
//   - worker_config_validation_errors_total: Total validation errors by field
//   - worker_config_fallbacks_total: Total fallback operations by field
//   - worker_config_fallback_active: 1 if any fallback active, 0 otherwise
//
// Worker-specific metrics:
//   - worker_audit_runs_total: Total scheduled audit runs by status (success/failure)
//   - worker_audit_run_duration_seconds: Duration histogram of audit run execution
//   - worker_audit_pages_processed_total: Total pages audited across all runs
//   - worker_audit_last_success_timestamp: Unix timestamp of last successful run
//
// Example usage:
//
//	metrics := NewWorkerMetrics()
//	metrics.MustRegister()
//
//	start := time.Now()
//	results, err := svc.AuditTargets(ctx, targets)
//	metrics.RecordRunDuration(time.Since(start).Seconds())
//	if err != nil {
//	    metrics.RecordRun("failure")
//	} else {
//	    metrics.RecordRun("success")
//	    metrics.RecordPagesProcessed(len(results))
//	    metrics.RecordLastSuccess()
//	}
type WorkerMetrics struct {
	*config.ConfigMetrics

	// AuditRunsTotal counts scheduled audit runs.
	// Type: Counter
	// Labels: status (success, failure)
	AuditRunsTotal *prometheus.CounterVec

	// AuditRunDurationSeconds measures the duration of audit run execution.
	// Type: Histogram
	// Buckets: 1s, 5s, 30s, 1m, 5m, 15m, 30m (typical run durations)
	AuditRunDurationSeconds prometheus.Histogram

	// AuditPagesProcessedTotal counts the pages audited across all runs.
	// Type: Counter
	AuditPagesProcessedTotal prometheus.Counter

	// AuditLastSuccessTimestamp records the Unix timestamp of the last
	// successful run.
	// Type: Gauge
	AuditLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates a new WorkerMetrics instance with all metrics initialized.
// Metrics are created but not registered with Prometheus. Call MustRegister() to register.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		AuditRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_audit_runs_total",
			Help: "Total number of scheduled audit runs by status (success/failure)",
		}, []string{"status"}),

		AuditRunDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_audit_run_duration_seconds",
			Help:    "Duration of scheduled audit run execution in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800}, // 1s, 5s, 30s, 1m, 5m, 15m, 30m
		}),

		AuditPagesProcessedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_audit_pages_processed_total",
			Help: "Total number of pages audited across all scheduled runs",
		}),

		AuditLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_audit_last_success_timestamp",
			Help: "Unix timestamp of the last successful scheduled audit run",
		}),
	}
}

// MustRegister is a no-op method for API compatibility.
// Metrics are automatically registered via promauto when created in NewWorkerMetrics.
//
// Even though registration happens automatically, this explicit call makes the
// initialization intent clear and maintains compatibility with future changes.
func (m *WorkerMetrics) MustRegister() {
	// No-op: metrics are auto-registered via promauto
}

// RecordRun increments the run counter for the given status.
// Status should be either "success" or "failure".
func (m *WorkerMetrics) RecordRun(status string) {
	m.AuditRunsTotal.WithLabelValues(status).Inc()
}

// RecordRunDuration observes the duration of an audit run in seconds.
func (m *WorkerMetrics) RecordRunDuration(seconds float64) {
	m.AuditRunDurationSeconds.Observe(seconds)
}

// RecordPagesProcessed adds the number of audited pages to the total counter.
func (m *WorkerMetrics) RecordPagesProcessed(count int) {
	m.AuditPagesProcessedTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful run completion.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.AuditLastSuccessTimestamp.SetToCurrentTime()
}
