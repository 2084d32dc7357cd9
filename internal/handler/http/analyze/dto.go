// Package analyze provides HTTP handlers for the readability analysis API.
// It includes handlers for analyzing raw text, auditing live pages, and
// listing the supported languages.
package analyze

import (
	"time"

	"readability-audit/internal/domain/entity"
)

// ResultDTO represents the JSON structure for a single analysis result.
type ResultDTO struct {
	ID           string    `json:"id"`
	PageURL      string    `json:"page_url,omitempty"`
	Language     string    `json:"language"`
	Sentences    int       `json:"sentences"`
	Words        int       `json:"words"`
	Syllables    int       `json:"syllables"`
	ComplexWords int       `json:"complex_words"`
	Score        float64   `json:"score"`
	TargetScore  float64   `json:"target_score"`
	Passed       bool      `json:"passed"`
	AuditedAt    time.Time `json:"audited_at"`
}

// LanguageDTO represents one supported language in list and detail responses.
type LanguageDTO struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	TargetScore float64     `json:"target_score"`
	Formula     *FormulaDTO `json:"formula,omitempty"`
}

// FormulaDTO exposes the score formula weights for a language.
type FormulaDTO struct {
	Intercept            float64 `json:"intercept"`
	WordsPerSentence     float64 `json:"words_per_sentence"`
	SyllablesPerWord     float64 `json:"syllables_per_word"`
	SyllablesPer100Words float64 `json:"syllables_per_100_words"`
}

func toDTO(r *entity.AuditResult) ResultDTO {
	return ResultDTO{
		ID:           r.ID,
		PageURL:      r.PageURL,
		Language:     r.Language,
		Sentences:    r.Metrics.Sentences,
		Words:        r.Metrics.Words,
		Syllables:    r.Metrics.Syllables,
		ComplexWords: r.Metrics.ComplexWords,
		Score:        r.Metrics.Score,
		TargetScore:  r.TargetScore,
		Passed:       r.Passed,
		AuditedAt:    r.AuditedAt,
	}
}
