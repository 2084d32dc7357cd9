package entity

import (
	"time"

	"github.com/google/uuid"

	"readability-audit/pkg/readability"
)

// AuditResult is the outcome of auditing one page in one language.
// It pairs the raw readability metrics with the pass/fail judgment against
// the plain-language target score.
type AuditResult struct {
	ID          string             `json:"id"`
	PageURL     string             `json:"page_url"`
	Language    string             `json:"language"`
	Metrics     readability.Result `json:"metrics"`
	TargetScore float64            `json:"target_score"`
	Passed      bool               `json:"passed"`
	AuditedAt   time.Time          `json:"audited_at"`
}

// NewAuditResult builds an AuditResult from analyzer output, assigning a
// fresh ID and judging the score against the language's target.
func NewAuditResult(pageURL, language string, metrics readability.Result) *AuditResult {
	target := readability.TargetScore(language)
	return &AuditResult{
		ID:          uuid.NewString(),
		PageURL:     pageURL,
		Language:    readability.NormalizeLanguage(language),
		Metrics:     metrics,
		TargetScore: target,
		Passed:      metrics.Score >= target,
		AuditedAt:   time.Now().UTC(),
	}
}
