// Package readability provides multilingual readability scoring for plain text.
//
// The package estimates how easy a block of text is to read, expressed as a
// 0-100 score (higher is easier), together with the supporting metrics the
// score is derived from: sentence count, word count, syllable count, and
// complex-word count. It is designed to be called per page, per language,
// potentially thousands of times during a single content audit, so results
// are deterministic and repeated syllable computations are memoized in a
// bounded process-wide cache.
//
// The package is pure computation: text and language in, metrics and score
// out. It performs no I/O and surfaces no errors under normal operation;
// unsupported languages and degenerate input degrade to well-defined
// defaults instead of failing.
package readability

import "strings"

// Language names as used throughout the package. Lookups accept either the
// name or the corresponding 3-letter code, case-insensitively.
const (
	LanguageEnglish = "english"
	LanguageGerman  = "german"
	LanguageSpanish = "spanish"
	LanguageItalian = "italian"
	LanguageFrench  = "french"
	LanguageDutch   = "dutch"
)

// supportedLanguages maps 3-letter language codes to canonical language names.
// The table is fixed: every code maps to exactly one name and every name is
// reachable by exactly one code.
var supportedLanguages = map[string]string{
	"eng": LanguageEnglish,
	"deu": LanguageGerman,
	"spa": LanguageSpanish,
	"ita": LanguageItalian,
	"fra": LanguageFrench,
	"nld": LanguageDutch,
}

// languageNames is the reverse index of supportedLanguages, built once at
// package initialization.
var languageNames = func() map[string]string {
	names := make(map[string]string, len(supportedLanguages))
	for code, name := range supportedLanguages {
		names[name] = code
	}
	return names
}()

// defaultTargetScore is the fixed "plain language" threshold callers use to
// classify text as sufficiently readable. It is intentionally the same for
// every language: the per-language formulas are calibrated so that 30 marks
// comparable difficulty across languages.
const defaultTargetScore = 30.0

// SupportedLanguages returns the code-to-name registry of supported
// languages. The returned map is a copy; mutating it has no effect on the
// package.
func SupportedLanguages() map[string]string {
	out := make(map[string]string, len(supportedLanguages))
	for code, name := range supportedLanguages {
		out[code] = name
	}
	return out
}

// IsSupportedLanguage reports whether input identifies a supported language,
// either by 3-letter code ("deu") or by name ("german"). Matching is
// case-insensitive and ignores surrounding whitespace. An empty string is
// not supported.
func IsSupportedLanguage(input string) bool {
	key := strings.ToLower(strings.TrimSpace(input))
	if key == "" {
		return false
	}
	if _, ok := supportedLanguages[key]; ok {
		return true
	}
	_, ok := languageNames[key]
	return ok
}

// LanguageName returns the canonical lowercase language name for a 3-letter
// code, case-insensitively. Unknown codes return the literal string
// "unknown"; the function never fails.
func LanguageName(code string) string {
	name, ok := supportedLanguages[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return "unknown"
	}
	return name
}

// TargetScore returns the readability score threshold above which text is
// considered sufficiently plain. The threshold is a single calibrated
// constant; the language parameter exists for interface symmetry with the
// analysis functions and does not affect the result.
func TargetScore(language string) float64 {
	_ = language
	return defaultTargetScore
}

// NormalizeLanguage resolves a caller-supplied language identifier to a
// canonical language name. Codes are resolved to names, names pass through,
// and matching is case-insensitive. Empty input defaults to english.
// Unsupported identifiers are returned lowercased so downstream strategies
// can apply their generic fallbacks.
func NormalizeLanguage(language string) string {
	key := strings.ToLower(strings.TrimSpace(language))
	if key == "" {
		return LanguageEnglish
	}
	if name, ok := supportedLanguages[key]; ok {
		return name
	}
	return key
}
