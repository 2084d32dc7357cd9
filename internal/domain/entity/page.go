package entity

import (
	"fmt"
	"strings"
	"time"

	"readability-audit/pkg/readability"
)

// Page represents a single web page whose text content is audited for
// readability. The text is the extracted article body, not raw HTML.
type Page struct {
	URL       string
	Language  string // canonical language name, e.g. "german"
	Title     string
	Text      string
	FetchedAt time.Time
}

// Validate validates the Page entity fields.
// The URL must be an absolute http(s) URL and the language, when set, must
// be a supported language name or code.
func (p *Page) Validate() error {
	if err := ValidateURL(strings.TrimSpace(p.URL)); err != nil {
		return err
	}

	// Empty language is allowed: the analyzer defaults it to english.
	if p.Language != "" && !readability.IsSupportedLanguage(p.Language) {
		return &ValidationError{Field: "language", Message: fmt.Sprintf("%q is not supported", p.Language)}
	}
	return nil
}
