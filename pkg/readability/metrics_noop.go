package readability

import "time"

// NoOpMetrics implements MetricsCollector with no-op methods.
//
// It is the default collector: analysis benchmarks and library consumers
// that do not run Prometheus pay no collection overhead.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a new NoOpMetrics instance.
func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

// RecordCacheHit is a no-op implementation.
func (m *NoOpMetrics) RecordCacheHit() {}

// RecordCacheMiss is a no-op implementation.
func (m *NoOpMetrics) RecordCacheMiss() {}

// RecordCacheEviction is a no-op implementation.
func (m *NoOpMetrics) RecordCacheEviction() {}

// RecordHyphenatorLoad is a no-op implementation.
func (m *NoOpMetrics) RecordHyphenatorLoad(language string, success bool) {}

// RecordAnalysis is a no-op implementation.
func (m *NoOpMetrics) RecordAnalysis(language string, duration time.Duration) {}
