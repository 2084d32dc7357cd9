package readability

// DefaultComplexThreshold is the syllable count at which a word is counted
// as complex unless the caller overrides the threshold per analysis.
const DefaultComplexThreshold = 3

// Config holds the construction-time configuration of an Analyzer.
//
// The zero value is usable: every field has a working default applied by
// New. Segmentation strategy is fixed at construction; there is no runtime
// feature detection.
type Config struct {
	// Segmenter selects the sentence/word segmentation implementation.
	// Default: NewUnicodeSegmenter() (UAX#29 boundary rules).
	Segmenter Segmenter

	// CacheSize bounds the syllable memoization cache.
	// Default: DefaultCacheSize (2000 entries).
	CacheSize int

	// ComplexThreshold is the default minimum syllable count for a word to
	// be counted as complex. Individual analyses may override it via
	// WithComplexThreshold. Default: DefaultComplexThreshold (3).
	ComplexThreshold int

	// Metrics receives engine observability events.
	// Default: NewNoOpMetrics().
	Metrics MetricsCollector
}

// DefaultConfig returns the default analyzer configuration.
func DefaultConfig() Config {
	return Config{
		Segmenter:        NewUnicodeSegmenter(),
		CacheSize:        DefaultCacheSize,
		ComplexThreshold: DefaultComplexThreshold,
		Metrics:          NewNoOpMetrics(),
	}
}
