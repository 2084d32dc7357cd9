package entity

import (
	"fmt"
	"net/url"
)

// maxURLLength caps URL length to keep log lines and metric labels sane.
const maxURLLength = 2048

// ValidateURL validates the shape of an audit target URL: non-empty,
// well-formed, absolute and using the http or https scheme.
//
// Network-level safety (private IP blocking, redirect validation) is the
// fetcher's responsibility; it happens at fetch time against the resolved
// addresses, not here.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: fmt.Sprintf("is not a valid URL: %v", err)}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "must use http or https"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "must be absolute"}
	}

	return nil
}
