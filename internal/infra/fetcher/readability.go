package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readable "github.com/go-shiori/go-readability"
	"golang.org/x/time/rate"

	"readability-audit/internal/domain/entity"
	"readability-audit/internal/observability/metrics"
	"readability-audit/internal/resilience/circuitbreaker"
	"readability-audit/internal/usecase/audit"
	"readability-audit/pkg/readability"
)

// htmlLangNames maps the primary subtag of an HTML lang attribute to the
// analyzer's language name. The page language is a hint: it can be
// overridden per audit target.
var htmlLangNames = map[string]string{
	"en": readability.LanguageEnglish,
	"de": readability.LanguageGerman,
	"es": readability.LanguageSpanish,
	"it": readability.LanguageItalian,
	"fr": readability.LanguageFrench,
	"nl": readability.LanguageDutch,
}

// PageFetcher implements audit.ContentFetcher. It fetches HTML from URLs
// and extracts clean article text using the Mozilla Readability algorithm,
// with a goquery body-text fallback for pages Readability cannot parse.
//
// Reliability and security:
//   - SSRF prevention via URL and redirect validation
//   - Circuit breaker against repeatedly failing sites
//   - Outbound rate limiting for politeness
//   - Size limiting and per-request timeouts
//
// Thread safety: PageFetcher is safe for concurrent use.
type PageFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	limiter        *rate.Limiter
	config         ContentFetchConfig
}

// NewPageFetcher creates a PageFetcher with the given configuration.
func NewPageFetcher(config ContentFetchConfig) *PageFetcher {
	fetcher := &PageFetcher{
		circuitBreaker: circuitbreaker.New(circuitbreaker.ContentFetchConfig()),
		config:         config,
	}
	if config.RequestsPerSecond > 0 {
		fetcher.limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	fetcher.client = &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= fetcher.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", audit.ErrTooManyRedirects, len(via))
			}
			// Every redirect target gets the same SSRF validation as the
			// original URL.
			if err := validateURL(req.URL.String(), fetcher.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}
	return fetcher
}

// FetchPage fetches the page at urlStr and extracts its readable text.
//
// The fetch goes through URL validation, the politeness rate limiter and
// the circuit breaker; extraction prefers Readability and falls back to
// stripped body text. The returned Page carries the page title and the
// language hinted by the HTML lang attribute (empty when the attribute is
// missing or unsupported).
func (f *PageFetcher) FetchPage(ctx context.Context, urlStr string) (*entity.Page, error) {
	start := time.Now()

	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return nil, err
	}
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, urlStr)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordContentFetch(time.Since(start))
	return result.(*entity.Page), nil
}

// doFetch performs the HTTP request and content extraction. Called through
// the circuit breaker.
func (f *PageFetcher) doFetch(ctx context.Context, urlStr string) (*entity.Page, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", audit.ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: request exceeded %v", audit.ErrTimeout, f.config.Timeout)
		}
		if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
			return nil, urlErr.Err
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	limitedReader := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", audit.ErrBodyTooLarge, f.config.MaxBodySize)
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	return extractPage(urlStr, finalURL, htmlBytes)
}

// extractPage turns raw HTML into a Page. Readability extraction comes
// first; when it fails or yields nothing, the goquery fallback strips
// non-content elements and uses the remaining body text.
func extractPage(urlStr string, finalURL *url.URL, htmlBytes []byte) (*entity.Page, error) {
	page := &entity.Page{
		URL:       urlStr,
		FetchedAt: time.Now().UTC(),
	}

	doc, docErr := goquery.NewDocumentFromReader(bytes.NewReader(htmlBytes))
	if docErr == nil {
		if lang, ok := doc.Find("html").Attr("lang"); ok {
			page.Language = languageFromHTMLLang(lang)
		}
		page.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	article, err := readable.FromReader(bytes.NewReader(htmlBytes), finalURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		if article.Title != "" {
			page.Title = article.Title
		}
		page.Text = article.TextContent
		return page, nil
	}

	if docErr != nil {
		return nil, fmt.Errorf("%w: %v", audit.ErrExtractionFailed, docErr)
	}
	slog.Debug("readability extraction failed, using body text fallback",
		slog.String("url", urlStr),
		slog.Any("error", err))

	doc.Find("script, style, nav, header, footer, noscript, iframe").Remove()
	text := strings.TrimSpace(doc.Find("body").Text())
	if text == "" {
		return nil, fmt.Errorf("%w: no readable content found", audit.ErrExtractionFailed)
	}
	page.Text = text
	return page, nil
}

// languageFromHTMLLang maps an HTML lang attribute ("de", "de-AT") to an
// analyzer language name, or empty when the language is not supported.
func languageFromHTMLLang(lang string) string {
	primary, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(lang)), "-")
	return htmlLangNames[primary]
}
