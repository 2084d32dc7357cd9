// Package feed lists audit candidate pages from RSS/Atom feeds.
// It uses the gofeed library to parse feed content with reliability patterns.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"readability-audit/internal/resilience/circuitbreaker"
	"readability-audit/internal/resilience/retry"
)

// RSSLister implements audit.PageLister using the gofeed library.
// It includes circuit breaker and retry logic for improved reliability.
type RSSLister struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	userAgent      string
	maxItems       int
}

// DefaultMaxItems caps how many page URLs a single feed contributes to an
// audit run.
const DefaultMaxItems = 100

// NewRSSLister creates an RSSLister with the given HTTP client.
// A nil client falls back to a client with a 30 second timeout.
func NewRSSLister(client *http.Client) *RSSLister {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &RSSLister{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
		userAgent:      "ReadabilityAuditBot/1.0",
		maxItems:       DefaultMaxItems,
	}
}

// ListPages retrieves and parses an RSS/Atom feed and returns the absolute
// item URLs, deduplicated and capped at DefaultMaxItems. Fetching goes
// through retry with backoff and the feed circuit breaker.
func (l *RSSLister) ListPages(ctx context.Context, feedURL string) ([]string, error) {
	var pages []string

	retryErr := retry.WithBackoff(ctx, l.retryConfig, func() error {
		cbResult, err := l.circuitBreaker.Execute(func() (interface{}, error) {
			return l.doList(ctx, feedURL)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed circuit breaker open, request rejected",
					slog.String("service", "feed-fetch"),
					slog.String("url", feedURL),
					slog.String("state", l.circuitBreaker.State().String()))
			}
			return err
		}

		pages = cbResult.([]string)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}

	return pages, nil
}

// doList performs the actual feed fetch without retry or circuit breaker.
func (l *RSSLister) doList(ctx context.Context, feedURL string) ([]string, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = l.userAgent
	fp.Client = l.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}

	base, err := url.Parse(feedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid feed URL %s: %w", feedURL, err)
	}

	seen := make(map[string]bool, len(feed.Items))
	pages := make([]string, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it.Link == "" {
			continue
		}
		link, err := base.Parse(it.Link)
		if err != nil {
			slog.Debug("skipping unparsable feed item link",
				slog.String("feed", feedURL),
				slog.String("link", it.Link))
			continue
		}
		abs := link.String()
		if seen[abs] {
			continue
		}
		seen[abs] = true
		pages = append(pages, abs)
		if len(pages) >= l.maxItems {
			break
		}
	}

	return pages, nil
}
