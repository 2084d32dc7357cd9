package readability

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// UnicodeSegmenter segments text using the UAX#29 boundary rules
// implemented by github.com/rivo/uniseg. This is the preferred segmenter:
// its sentence rules already suppress false breaks after initials and many
// abbreviation shapes, and its word rules handle apostrophes, hyphenation
// and non-Latin scripts uniformly.
//
// UnicodeSegmenter is stateless and safe for concurrent use.
type UnicodeSegmenter struct{}

// NewUnicodeSegmenter creates a UAX#29-backed segmenter.
func NewUnicodeSegmenter() *UnicodeSegmenter {
	return &UnicodeSegmenter{}
}

// Sentences splits text at UAX#29 sentence boundaries. Segments without any
// letter (stray punctuation, whitespace runs) are discarded; non-empty text
// always yields at least one sentence.
func (s *UnicodeSegmenter) Sentences(text, language string) []string {
	_ = language // UAX#29 rules are language-independent
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sentences []string
	state := -1
	rest := text
	for len(rest) > 0 {
		var sentence string
		sentence, rest, state = uniseg.FirstSentenceInString(rest, state)
		sentence = strings.TrimSpace(sentence)
		if containsLetter(sentence) {
			sentences = append(sentences, sentence)
		}
	}

	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(text)}
	}
	return sentences
}

// Words splits text at UAX#29 word boundaries and keeps only tokens that
// contain at least one letter. UAX#29 emits punctuation and whitespace as
// their own segments, so filtering by letter content discards them along
// with digit-only tokens.
func (s *UnicodeSegmenter) Words(text, language string) []string {
	_ = language
	var words []string
	state := -1
	rest := text
	for len(rest) > 0 {
		var token string
		token, rest, state = uniseg.FirstWordInString(rest, state)
		if containsLetter(token) {
			words = append(words, strings.TrimFunc(token, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsMark(r) && !unicode.IsDigit(r)
			}))
		}
	}
	return words
}
