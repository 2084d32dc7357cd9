// Package audit provides the content audit use case: fetching page text,
// scoring its readability per language, and collecting pass/fail results
// against the plain-language target.
package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"readability-audit/internal/domain/entity"
	"readability-audit/internal/observability/metrics"
	"readability-audit/pkg/readability"
)

const defaultParallelism = 5

// Target identifies one page to audit in one or more languages.
type Target struct {
	URL       string   `yaml:"url" json:"url"`
	Languages []string `yaml:"languages" json:"languages"`
}

// ContentFetcher is an interface for fetching a page and extracting its
// readable text content.
type ContentFetcher interface {
	FetchPage(ctx context.Context, url string) (*entity.Page, error)
}

// PageLister is an interface for discovering page URLs to audit, e.g. from
// an RSS/Atom feed of the audited site.
type PageLister interface {
	ListPages(ctx context.Context, feedURL string) ([]string, error)
}

// Config holds configuration for audit runs.
type Config struct {
	// Parallelism bounds the number of pages fetched and analyzed
	// concurrently. Default: 5.
	Parallelism int
}

// Service orchestrates content audits. The analyzer is shared across runs so
// its syllable cache and hyphenation table warm up over the process
// lifetime.
type Service struct {
	Fetcher  ContentFetcher
	Lister   PageLister
	Analyzer *readability.Analyzer
	Logger   *slog.Logger
	config   Config
}

// NewService creates an audit Service with the provided dependencies.
//
// Parameters:
//   - fetcher: page text extraction (required for AuditTargets/AuditFeed)
//   - lister: page discovery from feeds (required for AuditFeed; may be nil)
//   - analyzer: shared readability analyzer (required)
//   - logger: structured logger (falls back to slog.Default when nil)
//   - config: run configuration
func NewService(fetcher ContentFetcher, lister PageLister, analyzer *readability.Analyzer, logger *slog.Logger, config Config) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Parallelism <= 0 {
		config.Parallelism = defaultParallelism
	}
	return &Service{
		Fetcher:  fetcher,
		Lister:   lister,
		Analyzer: analyzer,
		Logger:   logger,
		config:   config,
	}
}

// AuditText analyzes a block of text directly, without fetching. This backs
// the HTTP analyze endpoint.
func (s *Service) AuditText(ctx context.Context, text, language string, opts ...readability.Option) (*entity.AuditResult, error) {
	metricsResult, err := s.Analyzer.Analyze(ctx, text, language, opts...)
	if err != nil {
		return nil, fmt.Errorf("analyze text: %w", err)
	}
	return entity.NewAuditResult("", language, *metricsResult), nil
}

// AuditTargets fetches and audits every (page, language) pair from the given
// targets, with bounded parallelism. Per-page failures are logged and
// skipped; they never abort the whole run. Results arrive in no particular
// order.
func (s *Service) AuditTargets(ctx context.Context, targets []Target) ([]*entity.AuditResult, error) {
	start := time.Now()

	var (
		mu      sync.Mutex
		results []*entity.AuditResult
		failed  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallelism)

	for _, target := range targets {
		target := target
		g.Go(func() error {
			pageResults, err := s.auditOne(gctx, target)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				s.Logger.Warn("page audit failed",
					slog.String("url", target.URL),
					slog.Any("error", err))
				metrics.RecordPageAuditError(classifyError(err))
				return nil // best-effort: keep auditing the other pages
			}
			results = append(results, pageResults...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.RecordAuditRun(time.Since(start), len(results))
	s.Logger.Info("audit run completed",
		slog.Int("targets", len(targets)),
		slog.Int("results", len(results)),
		slog.Int("failed_pages", failed),
		slog.Duration("duration", time.Since(start)))
	return results, nil
}

// AuditFeed discovers page URLs from an RSS/Atom feed and audits each one in
// the given languages.
func (s *Service) AuditFeed(ctx context.Context, feedURL string, languages []string) ([]*entity.AuditResult, error) {
	if s.Lister == nil {
		return nil, fmt.Errorf("audit feed %s: no page lister configured", feedURL)
	}

	urls, err := s.Lister.ListPages(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("list pages from feed %s: %w", feedURL, err)
	}

	targets := make([]Target, 0, len(urls))
	for _, u := range urls {
		targets = append(targets, Target{URL: u, Languages: languages})
	}
	s.Logger.Info("feed pages discovered",
		slog.String("feed_url", feedURL),
		slog.Int("pages", len(targets)))
	return s.AuditTargets(ctx, targets)
}

// auditOne fetches a single page and audits it in every requested language.
// Sentences, words and syllables come from one analysis per language over
// the same extracted text.
func (s *Service) auditOne(ctx context.Context, target Target) ([]*entity.AuditResult, error) {
	page := &entity.Page{URL: target.URL}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	page, err := s.Fetcher.FetchPage(ctx, target.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target.URL, err)
	}
	if strings.TrimSpace(page.Text) == "" {
		return nil, fmt.Errorf("%s: %w", target.URL, entity.ErrEmptyContent)
	}

	languages := target.Languages
	if len(languages) == 0 {
		languages = []string{page.Language}
	}

	results := make([]*entity.AuditResult, 0, len(languages))
	for _, language := range languages {
		analysis, err := s.Analyzer.Analyze(ctx, page.Text, language)
		if err != nil {
			return nil, fmt.Errorf("analyze %s (%s): %w", target.URL, language, err)
		}
		result := entity.NewAuditResult(target.URL, language, *analysis)
		metrics.RecordPageAudited(result.Language, result.Passed)
		results = append(results, result)
	}
	return results, nil
}

// classifyError maps an audit error to a coarse metric label.
func classifyError(err error) string {
	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		return "validation"
	case errors.Is(err, entity.ErrEmptyContent):
		return "empty_content"
	default:
		return "fetch"
	}
}
