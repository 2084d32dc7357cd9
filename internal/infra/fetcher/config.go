package fetcher

import (
	"fmt"
	"log/slog"
	"time"

	"readability-audit/internal/pkg/config"
)

// ContentFetchConfig holds the configuration for page fetching operations.
//
// Security settings:
//   - DenyPrivateIPs: Prevents SSRF attacks by blocking private IP addresses
//   - MaxBodySize: Prevents memory exhaustion from oversized responses
//   - MaxRedirects: Prevents infinite redirect loops
//   - Timeout: Prevents resource starvation from slow servers
//
// Politeness:
//   - RequestsPerSecond: Rate-limits outbound fetches so audit runs do not
//     hammer the audited site
type ContentFetchConfig struct {
	// Timeout is the maximum duration for a single HTTP request.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes, enforced
	// while reading, not from the Content-Length header.
	// Default: 10485760 (10MB)
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is re-validated for SSRF.
	// Default: 5
	MaxRedirects int

	// DenyPrivateIPs blocks URLs resolving to private/loopback/link-local
	// addresses. Should always be true in production.
	// Default: true
	DenyPrivateIPs bool

	// RequestsPerSecond rate-limits outbound fetches across all concurrent
	// audit workers. Zero disables rate limiting.
	// Default: 4
	RequestsPerSecond float64

	// UserAgent identifies the audit bot to the fetched site.
	// Default: "ReadabilityAuditBot/1.0"
	UserAgent string
}

// DefaultConfig returns the default configuration for page fetching.
func DefaultConfig() ContentFetchConfig {
	return ContentFetchConfig{
		Timeout:           10 * time.Second,
		MaxBodySize:       10 * 1024 * 1024, // 10MB
		MaxRedirects:      5,
		DenyPrivateIPs:    true,
		RequestsPerSecond: 4,
		UserAgent:         "ReadabilityAuditBot/1.0",
	}
}

// Validate checks that the configuration values are valid and safe.
func (c *ContentFetchConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d",
			minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must be non-negative, got %v", c.RequestsPerSecond)
	}

	return nil
}

// LoadConfigFromEnv loads configuration from environment variables, falling
// back to defaults for unset values. The loaded configuration is validated.
//
// Environment variables:
//   - CONTENT_FETCH_TIMEOUT: duration string, e.g. "10s"
//   - CONTENT_FETCH_MAX_BODY_SIZE: integer in bytes
//   - CONTENT_FETCH_MAX_REDIRECTS: integer
//   - CONTENT_FETCH_DENY_PRIVATE_IPS: "true" or "false"
//   - CONTENT_FETCH_RATE: float requests per second
//   - CONTENT_FETCH_USER_AGENT: string
func LoadConfigFromEnv() (ContentFetchConfig, error) {
	cfg := DefaultConfig()

	// Unparsable values warn and keep the default; range checks run once
	// below so an out-of-range value still fails the load.
	logWarnings := func(result config.ConfigLoadResult, field string) config.ConfigLoadResult {
		for _, warning := range result.Warnings {
			slog.Warn("Fetch configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
		return result
	}

	cfg.Timeout = logWarnings(
		config.LoadEnvDuration("CONTENT_FETCH_TIMEOUT", cfg.Timeout, nil),
		"Timeout").Value.(time.Duration)
	cfg.MaxBodySize = int64(logWarnings(
		config.LoadEnvInt("CONTENT_FETCH_MAX_BODY_SIZE", int(cfg.MaxBodySize), nil),
		"MaxBodySize").Value.(int))
	cfg.MaxRedirects = logWarnings(
		config.LoadEnvInt("CONTENT_FETCH_MAX_REDIRECTS", cfg.MaxRedirects, nil),
		"MaxRedirects").Value.(int)
	cfg.DenyPrivateIPs = logWarnings(
		config.LoadEnvBool("CONTENT_FETCH_DENY_PRIVATE_IPS", cfg.DenyPrivateIPs),
		"DenyPrivateIPs").Value.(bool)
	cfg.RequestsPerSecond = logWarnings(
		config.LoadEnvFloat("CONTENT_FETCH_RATE", cfg.RequestsPerSecond, nil),
		"RequestsPerSecond").Value.(float64)
	cfg.UserAgent = config.LoadEnvString("CONTENT_FETCH_USER_AGENT", cfg.UserAgent)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
