package readability

import "time"

// MetricsCollector defines the interface for readability engine metrics.
//
// Implementations must be safe for concurrent use. The engine calls these
// hooks on the hot path of every analysis, so implementations should be
// cheap; use NoOpMetrics to disable collection entirely.
type MetricsCollector interface {
	// RecordCacheHit records a syllable cache hit.
	RecordCacheHit()

	// RecordCacheMiss records a syllable cache miss.
	RecordCacheMiss()

	// RecordCacheEviction records the eviction of one syllable cache entry.
	RecordCacheEviction()

	// RecordHyphenatorLoad records the outcome of a hyphenation capability
	// load for a language. A load happens at most once per language per
	// process.
	RecordHyphenatorLoad(language string, success bool)

	// RecordAnalysis records a completed analysis for a language and its
	// duration.
	RecordAnalysis(language string, duration time.Duration)
}
