package audit

import "errors"

// Sentinel errors for content fetching. Infrastructure implementations wrap
// these so the use case layer can classify failures without importing
// infrastructure packages.
var (
	// ErrInvalidURL indicates the URL is malformed or uses a forbidden scheme
	ErrInvalidURL = errors.New("invalid URL")

	// ErrPrivateIP indicates the URL resolves to a private or loopback address
	ErrPrivateIP = errors.New("URL resolves to private IP")

	// ErrTimeout indicates the fetch exceeded its per-request timeout
	ErrTimeout = errors.New("fetch timeout")

	// ErrBodyTooLarge indicates the response exceeded the size limit
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTooManyRedirects indicates the redirect limit was exceeded
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrExtractionFailed indicates no readable text could be extracted
	ErrExtractionFailed = errors.New("content extraction failed")
)
