package readability

import (
	"regexp"
	"strings"
	"unicode"
)

// Segmenter splits raw text into sentences and into words for a given
// language. Both passes operate on the same raw text; implementations must
// be safe for concurrent use.
//
// Two implementations are provided and selected at construction time:
// UnicodeSegmenter (UAX#29 boundary rules) and HeuristicSegmenter
// (punctuation and regex heuristics with language-specific abbreviation
// handling). There is no runtime feature detection; callers inject the
// implementation through Config.
type Segmenter interface {
	// Sentences splits text into sentences. Non-empty text always yields at
	// least one sentence, even when it contains no terminal punctuation.
	Sentences(text, language string) []string

	// Words splits text into word tokens. A token counts as a word only if
	// it contains at least one letter; digit-only and punctuation-only
	// tokens are discarded.
	Words(text, language string) []string
}

// wordPattern extracts maximal runs of Unicode letters and combining marks,
// optionally joined by apostrophes or hyphens ("l'été", "well-known").
var wordPattern = regexp.MustCompile(`[\p{L}\p{M}]+(?:[''\x{2019}-][\p{L}\p{M}]+)*`)

// abbreviations lists per-language lowercase abbreviations whose trailing
// period must not be treated as a sentence terminator. Entries are stored
// without the trailing dot.
var abbreviations = map[string]map[string]bool{
	LanguageEnglish: {
		"dr": true, "mr": true, "mrs": true, "ms": true, "sr": true,
		"jr": true, "prof": true, "st": true, "vs": true, "etc": true,
		// "ph" supports greedy matching of the interior dot in "ph.d".
		"e.g": true, "i.e": true, "ph.d": true, "ph": true,
		"inc": true, "ltd": true,
	},
	LanguageGerman: {
		"dr": true, "prof": true, "hr": true, "fr": true, "nr": true,
		"bzw": true, "usw": true, "z.b": true, "d.h": true, "ca": true,
	},
	LanguageSpanish: {
		"sr": true, "sra": true, "srta": true, "dr": true, "dra": true,
		"ud": true, "uds": true, "etc": true, "p.ej": true,
	},
	LanguageItalian: {
		"sig": true, "dott": true, "prof": true, "ecc": true, "ing": true,
	},
	LanguageFrench: {
		"m": true, "mme": true, "mlle": true, "dr": true, "etc": true,
		"p.ex": true, "st": true,
	},
	LanguageDutch: {
		"dhr": true, "mevr": true, "dr": true, "prof": true, "enz": true,
		"bijv": true, "o.a": true, "d.w.z": true,
	},
}

// HeuristicSegmenter segments text with punctuation and regex heuristics.
// It is the fallback used where UAX#29 segmentation is not wanted; sentence
// boundaries are runs of terminal punctuation (".", "!", "?"), except when
// a period belongs to a recognized abbreviation for the target language.
type HeuristicSegmenter struct{}

// NewHeuristicSegmenter creates a heuristic segmenter.
func NewHeuristicSegmenter() *HeuristicSegmenter {
	return &HeuristicSegmenter{}
}

// Sentences splits text on runs of terminal punctuation, skipping periods
// that terminate a recognized abbreviation. Text without any terminator
// counts as exactly one sentence.
func (s *HeuristicSegmenter) Sentences(text, language string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	abbrevs := abbreviations[language]
	runes := []rune(text)
	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if r == '.' && isAbbreviationDot(runes, start, i, abbrevs) {
			continue
		}

		// Consume the whole terminator run ("...", "?!", "!!!").
		end := i + 1
		for end < len(runes) {
			nr := runes[end]
			if nr != '.' && nr != '!' && nr != '?' {
				break
			}
			end++
		}

		sentence := strings.TrimSpace(string(runes[start:end]))
		if containsLetter(sentence) {
			sentences = append(sentences, sentence)
		}
		start = end
		i = end - 1
	}

	if tail := strings.TrimSpace(string(runes[start:])); containsLetter(tail) {
		sentences = append(sentences, tail)
	}

	// Non-empty text is never zero sentences.
	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(text)}
	}
	return sentences
}

// Words extracts word tokens via the Unicode-letter-aware pattern.
func (s *HeuristicSegmenter) Words(text, language string) []string {
	_ = language
	return wordPattern.FindAllString(text, -1)
}

// isAbbreviationDot reports whether the period at runes[dot] terminates a
// recognized abbreviation or a single-letter initial ("J. Smith").
func isAbbreviationDot(runes []rune, start, dot int, abbrevs map[string]bool) bool {
	// Walk back to the beginning of the token preceding the period.
	// Interior dots are included so multi-part abbreviations ("e.g", "z.b",
	// "ph.d") match as a single token.
	tokenStart := dot
	for tokenStart > start {
		p := runes[tokenStart-1]
		if !unicode.IsLetter(p) && p != '.' {
			break
		}
		tokenStart--
	}
	if tokenStart == dot {
		return false
	}

	token := strings.ToLower(strings.Trim(string(runes[tokenStart:dot]), "."))
	if token == "" {
		return false
	}
	if len([]rune(token)) == 1 {
		// Single-letter initials: "J. R. R. Tolkien".
		return true
	}
	return abbrevs[token]
}

// containsLetter reports whether s contains at least one Unicode letter.
func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
