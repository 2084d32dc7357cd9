// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the audit-side application metrics including:
//   - Audited (page, language) pairs by language and outcome
//   - Pages that could not be audited, by error type
//   - Audit run duration and result counts
//   - Page fetch and extraction duration
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "readability-audit/internal/observability/metrics"
//
//	func auditPage(language string) {
//	    // ... fetch and analyze the page ...
//	    metrics.RecordPageAudited(language, passed)
//	}
package metrics
