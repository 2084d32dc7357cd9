package analyze

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"readability-audit/internal/handler/http/respond"
	"readability-audit/pkg/readability"
)

// LanguagesHandler handles GET /v1/languages: list the supported languages
// with their target scores, ordered by code.
type LanguagesHandler struct{}

func (h LanguagesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	registry := readability.SupportedLanguages()

	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]LanguageDTO, 0, len(codes))
	for _, code := range codes {
		name := registry[code]
		out = append(out, LanguageDTO{
			Code:        code,
			Name:        name,
			TargetScore: readability.TargetScore(name),
		})
	}

	respond.JSON(w, http.StatusOK, map[string][]LanguageDTO{"languages": out})
}

// LanguageHandler handles GET /v1/languages/{language}: detail for one
// supported language, including its score formula weights. The path segment
// accepts either the 3-letter code or the language name.
type LanguageHandler struct{}

func (h LanguageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/languages/"), "/")
	if raw == "" || strings.ContainsRune(raw, '/') {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid language path"))
		return
	}

	if !readability.IsSupportedLanguage(raw) {
		respond.SafeError(w, http.StatusNotFound, errors.New("language not found"))
		return
	}

	name := readability.NormalizeLanguage(raw)
	code := codeForName(name)
	c := readability.Coefficients(name)

	respond.JSON(w, http.StatusOK, LanguageDTO{
		Code:        code,
		Name:        name,
		TargetScore: readability.TargetScore(name),
		Formula: &FormulaDTO{
			Intercept:            c.Intercept,
			WordsPerSentence:     c.WordsPerSentence,
			SyllablesPerWord:     c.SyllablesPerWord,
			SyllablesPer100Words: c.SyllablesPer100Words,
		},
	})
}

func codeForName(name string) string {
	for code, n := range readability.SupportedLanguages() {
		if n == name {
			return code
		}
	}
	return ""
}
