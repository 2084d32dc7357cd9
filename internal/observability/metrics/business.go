package metrics

import "time"

// RecordPageAudited records one audited (page, language) pair.
// Outcome is "passed" or "failed" against the plain-language target.
func RecordPageAudited(language string, passed bool) {
	outcome := "passed"
	if !passed {
		outcome = "failed"
	}
	PagesAuditedTotal.WithLabelValues(language, outcome).Inc()
}

// RecordPageAuditError records a page that could not be audited.
// ErrorType is a coarse classification: "validation", "empty_content" or "fetch".
func RecordPageAuditError(errorType string) {
	PageAuditErrors.WithLabelValues(errorType).Inc()
}

// RecordAuditRun records metrics for a completed audit run. Per-page
// failures are recorded separately via RecordPageAuditError.
func RecordAuditRun(duration time.Duration, results int) {
	AuditRunDuration.Observe(duration.Seconds())
	AuditRunResults.Observe(float64(results))
}

// RecordContentFetch records the time taken to fetch and extract one page.
func RecordContentFetch(duration time.Duration) {
	ContentFetchDuration.Observe(duration.Seconds())
}
