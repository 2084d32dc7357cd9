package readability

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Result is the output of a readability analysis. All counts refer to the
// same segmentation pass, so they are internally consistent. For empty or
// degenerate input every count is 0 and Score is 100 (nothing to penalize).
type Result struct {
	// Sentences is the number of sentences found in the text.
	Sentences int `json:"sentences"`

	// Words is the number of word tokens found in the text.
	Words int `json:"words"`

	// Syllables is the total syllable count across all word occurrences.
	Syllables int `json:"syllables"`

	// ComplexWords is the number of word occurrences whose syllable count
	// meets or exceeds the complex-word threshold.
	ComplexWords int `json:"complex_words"`

	// Score is the readability score in [0, 100]; higher is easier to read.
	Score float64 `json:"score"`
}

// Option customizes a single analysis call.
type Option func(*analyzeOptions)

type analyzeOptions struct {
	complexThreshold int
}

// WithComplexThreshold overrides the minimum syllable count for a word to
// be counted as complex for this call only. The threshold affects only the
// ComplexWords count, never the score. Non-positive values are ignored.
func WithComplexThreshold(threshold int) Option {
	return func(o *analyzeOptions) {
		if threshold > 0 {
			o.complexThreshold = threshold
		}
	}
}

// Analyzer computes readability metrics and scores for text. It owns the
// bounded syllable cache and the hyphenation capability table; both persist
// for the lifetime of the Analyzer and are safe to share across concurrent
// analyses.
//
// Construct with New, or use the package-level functions which share one
// process-wide default Analyzer.
type Analyzer struct {
	segmenter        Segmenter
	cache            *syllableCache
	hyphenators      *hyphenatorLoader
	complexThreshold int
	metrics          MetricsCollector
}

// New creates an Analyzer from the given configuration. Zero-value fields
// receive the defaults documented on Config.
func New(cfg Config) *Analyzer {
	if cfg.Segmenter == nil {
		cfg.Segmenter = NewUnicodeSegmenter()
	}
	if cfg.ComplexThreshold <= 0 {
		cfg.ComplexThreshold = DefaultComplexThreshold
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewNoOpMetrics()
	}

	return &Analyzer{
		segmenter:        cfg.Segmenter,
		cache:            newSyllableCache(cfg.CacheSize, cfg.Metrics),
		hyphenators:      newHyphenatorLoader(cfg.Metrics),
		complexThreshold: cfg.ComplexThreshold,
		metrics:          cfg.Metrics,
	}
}

// Analyze computes the full readability metric set for text in the given
// language.
//
// The language may be a supported name ("german") or code ("deu"),
// case-insensitively; empty input defaults to english and unsupported
// languages degrade to generic counting with English-like scoring rather
// than failing. Text without any alphabetic content short-circuits to the
// zero result with score 100.
//
// Repeated calls with identical input return identical results. The only
// returned error is the context's, checked before per-word syllable
// resolution.
func (a *Analyzer) Analyze(ctx context.Context, text, language string, opts ...Option) (*Result, error) {
	start := time.Now()
	lang := NormalizeLanguage(language)

	options := analyzeOptions{complexThreshold: a.complexThreshold}
	for _, opt := range opts {
		opt(&options)
	}

	if !containsLetter(text) {
		return &Result{Score: 100}, nil
	}

	// One segmentation pass feeds every metric; no re-segmentation between
	// counts.
	sentences := a.segmenter.Sentences(text, lang)
	words := a.segmenter.Words(text, lang)
	if len(sentences) == 0 || len(words) == 0 {
		return &Result{Score: 100}, nil
	}

	// Syllables are resolved once per unique word and summed per
	// occurrence, so repeated words hit the cache within a single call too.
	frequencies := make(map[string]int, len(words))
	for _, w := range words {
		frequencies[strings.ToLower(w)]++
	}

	result := &Result{
		Sentences: len(sentences),
		Words:     len(words),
	}
	for word, freq := range frequencies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		count := a.countSyllables(ctx, word, lang)
		result.Syllables += count * freq
		if count >= options.complexThreshold {
			result.ComplexWords += freq
		}
	}

	result.Score = calculateScore(lang, result.Sentences, result.Words, result.Syllables)
	a.metrics.RecordAnalysis(lang, time.Since(start))
	return result, nil
}

// Score computes only the readability score for text in the given language.
// It is a convenience wrapper around Analyze.
func (a *Analyzer) Score(ctx context.Context, text, language string) (float64, error) {
	result, err := a.Analyze(ctx, text, language)
	if err != nil {
		return 0, err
	}
	return result.Score, nil
}

// ResetCaches clears the syllable cache and the hyphenation capability
// table. It exists for tests; production processes keep both caches for
// their whole lifetime.
func (a *Analyzer) ResetCaches() {
	a.cache.reset()
	a.hyphenators.Reset()
}

// defaultAnalyzer backs the package-level convenience functions. It is
// created on first use and shared process-wide, matching the lifetime of
// its internal caches.
var (
	defaultAnalyzer     *Analyzer
	defaultAnalyzerOnce sync.Once
)

// Default returns the shared process-wide Analyzer used by the
// package-level functions.
func Default() *Analyzer {
	defaultAnalyzerOnce.Do(func() {
		defaultAnalyzer = New(DefaultConfig())
	})
	return defaultAnalyzer
}

// Analyze computes readability metrics using the shared default Analyzer.
func Analyze(ctx context.Context, text, language string, opts ...Option) (*Result, error) {
	return Default().Analyze(ctx, text, language, opts...)
}

// Score computes the readability score using the shared default Analyzer.
func Score(ctx context.Context, text, language string) (float64, error) {
	return Default().Score(ctx, text, language)
}
