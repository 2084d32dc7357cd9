// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track audit-specific operations
var (
	// PagesAuditedTotal counts audited (page, language) pairs by language and outcome
	PagesAuditedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_pages_total",
			Help: "Total number of audited (page, language) pairs by language and outcome",
		},
		[]string{"language", "outcome"},
	)

	// PageAuditErrors counts pages that could not be audited, by error type
	PageAuditErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_page_errors_total",
			Help: "Total number of pages that could not be audited, by error type",
		},
		[]string{"error_type"},
	)

	// AuditRunDuration measures the duration of whole audit runs
	AuditRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "audit_run_duration_seconds",
			Help:    "Duration of audit runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)

	// AuditRunResults tracks the number of results produced per audit run
	AuditRunResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "audit_run_results",
			Help:    "Number of results produced per audit run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	// ContentFetchDuration measures page fetch and extraction time
	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "audit_content_fetch_duration_seconds",
			Help:    "Duration of page fetch and text extraction in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
