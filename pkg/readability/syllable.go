package readability

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// englishVowels are the vowel-class runes used by the English rule-based
// counter and, after diacritic folding, by the generic fallback.
const englishVowels = "aeiouy"

// englishExceptions overrides the rule-computed syllable count for known
// irregular words. The list is calibration data: entries exist because the
// vowel-group heuristic demonstrably mis-counts them.
var englishExceptions = map[string]int{
	"every":     3,
	"different": 3,
	"somewhere": 2,
	"something": 2,
	"through":   1,
	"thought":   1,
	"though":    1,
	"business":  2,
	"wednesday": 2,
	"beautiful": 3,
	"people":    2,
	"area":      3,
	"idea":      3,
	"being":     2,
	"science":   2,
	"quiet":     2,
}

// diacriticFolder strips combining marks after canonical decomposition, so
// "é" classifies as the vowel "e" and "ñ" as the consonant "n".
var diacriticFolder = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// countSyllables computes the syllable count for a single word in the given
// (already normalized) language, memoized through the bounded cache.
//
// Dispatch is by language: english uses the rule-based counter, languages
// with a hyphenation locale use the hyphenation-backed counter (falling
// through to the generic counter when the capability is unavailable), and
// everything else uses the generic Unicode counter directly. Non-letter
// tokens yield 0; any non-empty word otherwise yields at least 1.
func (a *Analyzer) countSyllables(ctx context.Context, word, language string) int {
	key := syllableKey{word: strings.ToLower(word), language: language}
	if count, ok := a.cache.get(key); ok {
		return count
	}

	var count int
	switch {
	case language == LanguageEnglish:
		count = englishSyllables(key.word)
	default:
		if _, mapped := hyphenLocales[language]; mapped {
			if h := a.hyphenators.Get(ctx, language); h != nil {
				count = hyphenatedSyllables(key.word, h)
				break
			}
		}
		count = genericSyllables(key.word)
	}

	a.cache.put(key, count)
	return count
}

// englishSyllables counts syllables in a lowercase English word: vowel-group
// transitions as the baseline, then silent-e, consonant+"le" and "-ing"
// corrections, then the exception table.
func englishSyllables(word string) int {
	word = cleanWord(word)
	if word == "" || !containsLetter(word) {
		return 0
	}
	if count, ok := englishExceptions[word]; ok {
		return count
	}

	runes := []rune(word)
	count := 0
	prevVowel := false
	for _, r := range runes {
		vowel := strings.ContainsRune(englishVowels, r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	n := len(runes)
	switch {
	case strings.HasSuffix(word, "le") && n > 2 &&
		!strings.ContainsRune(englishVowels, runes[n-3]):
		// "apple", "simple": the final "le" is a real syllable and the
		// trailing e already contributed a vowel group. Keep the count.
	case strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "ee"):
		// Silent trailing e: "make", "candidate".
		count--
	case strings.HasSuffix(word, "ing") && n > 3 &&
		strings.ContainsRune(englishVowels, runes[n-4]):
		// The "-ing" vowel merged into the preceding group ("seeing",
		// "doing"); the ending still forms its own syllable.
		count++
	}

	if count < 1 {
		count = 1
	}
	return count
}

// hyphenatedSyllables counts syllables as the number of segments the
// language's hyphenation capability returns for the cleaned word, floored
// at 1 for non-empty words.
func hyphenatedSyllables(word string, h Hyphenator) int {
	word = cleanWord(word)
	if word == "" || !containsLetter(word) {
		return 0
	}
	if count := len(h(word)); count > 1 {
		return count
	}
	return 1
}

// genericSyllables approximates a syllable count for any language by
// counting contiguous runs of vowel-class characters after folding
// diacritics. Non-letter tokens yield 0; everything else at least 1.
func genericSyllables(word string) int {
	word = cleanWord(word)
	if word == "" || !containsLetter(word) {
		return 0
	}

	folded, _, err := transform.String(diacriticFolder, word)
	if err != nil {
		folded = word
	}

	count := 0
	prevVowel := false
	for _, r := range folded {
		vowel := strings.ContainsRune(englishVowels, unicode.ToLower(r))
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if count < 1 {
		count = 1
	}
	return count
}

// cleanWord strips characters that are not letters, combining marks,
// apostrophes or hyphens, so surrounding punctuation never influences
// syllable counting.
func cleanWord(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsMark(r) ||
			r == '\'' || r == '’' || r == '-' {
			return r
		}
		return -1
	}, word)
}
