package readability

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/sync/singleflight"
)

// Hyphenator splits a cleaned lowercase word into syllable-like segments.
// The segment count is used as a syllable-count proxy for languages with
// regular syllable structure. A nil Hyphenator means "no hyphenation
// available for this language" and callers must fall back to the generic
// counting strategy.
type Hyphenator func(word string) []string

// hyphenLocales maps language names to the internal locale identifier of
// their syllabification rule set. English is deliberately absent: it uses
// its own rule-based counter and never loads a hyphenator.
var hyphenLocales = map[string]string{
	LanguageGerman:  "de",
	LanguageFrench:  "fr",
	LanguageSpanish: "es",
	LanguageItalian: "it",
	LanguageDutch:   "nl",
}

// hyphenatorLoader lazily builds per-language hyphenators and caches the
// outcome for the lifetime of the process. Concurrent requests for the same
// language are deduplicated through singleflight so a language's rule set is
// built at most once; a failed build is cached as a permanent nil and never
// retried.
type hyphenatorLoader struct {
	mu      sync.RWMutex
	loaded  map[string]Hyphenator // present-with-nil means permanently unavailable
	group   singleflight.Group
	metrics MetricsCollector
}

// newHyphenatorLoader creates an empty loader.
func newHyphenatorLoader(metrics MetricsCollector) *hyphenatorLoader {
	return &hyphenatorLoader{
		loaded:  make(map[string]Hyphenator),
		metrics: metrics,
	}
}

// Get returns the hyphenation capability for a language, or nil when none is
// available. The first call per language builds the capability; later calls
// return the cached result. Unmapped languages (including english) resolve
// to nil immediately without recording a load.
func (l *hyphenatorLoader) Get(ctx context.Context, language string) Hyphenator {
	l.mu.RLock()
	h, ok := l.loaded[language]
	l.mu.RUnlock()
	if ok {
		return h
	}

	locale, mapped := hyphenLocales[language]
	if !mapped {
		l.mu.Lock()
		l.loaded[language] = nil
		l.mu.Unlock()
		return nil
	}
	if ctx.Err() != nil {
		// Cancelled before the build started: report unavailable for this
		// call without poisoning the cache for future calls.
		return nil
	}

	v, _, _ := l.group.Do(language, func() (interface{}, error) {
		h, err := buildSyllabifier(locale)
		if err != nil {
			// Failed loads are cached as permanently unavailable; every
			// waiter and every future caller falls back to the generic
			// counting strategy.
			h = nil
		}
		l.metrics.RecordHyphenatorLoad(language, err == nil)
		l.mu.Lock()
		l.loaded[language] = h
		l.mu.Unlock()
		return h, nil
	})

	if v == nil {
		return nil
	}
	return v.(Hyphenator)
}

// Reset clears all cached load outcomes. It exists for tests only.
func (l *hyphenatorLoader) Reset() {
	l.mu.Lock()
	l.loaded = make(map[string]Hyphenator)
	l.mu.Unlock()
}

// syllableRules is the per-locale data a syllabifier is built from. The
// rule sets are calibration data, not exact phonology: they are tuned to
// produce stable, comparable counts for scoring, not true syllabification.
type syllableRules struct {
	// vowels are the nucleus-forming runes, lowercase.
	vowels map[rune]bool

	// diphthongs are two-vowel sequences that form a single nucleus.
	// Ignored when mergeVowelRuns is set.
	diphthongs map[string]bool

	// mergeVowelRuns treats any contiguous vowel run as one nucleus
	// (French: "eau", "oui", "aie" are single syllables).
	mergeVowelRuns bool

	// silentFinalE drops a nucleus formed solely by a word-final plain "e",
	// provided the word keeps at least one other nucleus.
	silentFinalE bool
}

var localeRules = map[string]*syllableRules{
	"de": {
		vowels: vowelSet("aeiouyäöü"),
		diphthongs: pairSet(
			"au", "eu", "äu", "ei", "ai", "ie", "ey", "ay", "ui",
		),
	},
	"nl": {
		vowels: vowelSet("aeiouyë"),
		// Doubled vowels are long vowels, one nucleus. "aai"/"ooi" merge
		// through pairwise extension: "aa"+"ai", "oo"+"oi".
		diphthongs: pairSet(
			"aa", "ee", "oo", "uu", "ie", "oe", "eu", "ui", "ou", "au",
			"ei", "ai", "oi",
		),
	},
	"es": {
		vowels: vowelSet("aeiouáéíóúü"),
		// Accented strong vowels keep the diphthong ("nación", "después");
		// accented weak vowels (í, ú) are deliberately absent from the
		// pairs, which yields the hiatus ("día", "baúl").
		diphthongs: pairSet(
			"ai", "au", "ei", "eu", "oi", "ou",
			"ia", "ie", "io", "iu", "ua", "ue", "ui", "uo",
			"iá", "ié", "ió", "uá", "ué", "uó", "ái", "éi", "ói", "áu", "éu",
		),
	},
	"it": {
		vowels: vowelSet("aeiouàèéìòóù"),
		diphthongs: pairSet(
			"ia", "ie", "io", "iu", "ua", "ue", "uo", "ui",
			"ai", "ei", "oi", "au", "eu",
			"ià", "iè", "iò", "iù", "uà", "uè", "uò",
		),
	},
	"fr": {
		vowels:         vowelSet("aeiouyàâéèêëîïôûùüœ"),
		mergeVowelRuns: true,
		silentFinalE:   true,
	},
}

// buildSyllabifier constructs the rule-based hyphenation capability for an
// internal locale identifier.
func buildSyllabifier(locale string) (Hyphenator, error) {
	rules, ok := localeRules[locale]
	if !ok {
		return nil, fmt.Errorf("no syllabification rules for locale %q", locale)
	}
	return rules.split, nil
}

// split divides word into syllable-like segments. Nuclei are located first
// (vowels, with diphthong merging per the rule set); each consonant cluster
// between two nuclei is then split before its last consonant, approximating
// onset maximization. The concatenation of the returned segments equals the
// lowercased input.
func (r *syllableRules) split(word string) []string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return nil
	}

	// nucleus end positions (exclusive) in rune offsets.
	type nucleus struct{ start, end int }
	var nuclei []nucleus

	for i := 0; i < len(runes); {
		if !r.vowels[runes[i]] {
			i++
			continue
		}
		start := i
		i++
		if r.mergeVowelRuns {
			for i < len(runes) && r.vowels[runes[i]] {
				i++
			}
		} else {
			// Greedily extend the nucleus while the current pair forms a
			// diphthong ("aai" in Dutch consumes two extensions).
			for i < len(runes) && r.vowels[runes[i]] &&
				r.diphthongs[string(runes[i-1:i+1])] {
				i++
			}
		}
		nuclei = append(nuclei, nucleus{start: start, end: i})
	}

	if r.silentFinalE && len(nuclei) > 1 {
		last := nuclei[len(nuclei)-1]
		if last.end-last.start == 1 && runes[last.start] == 'e' && last.end == len(runes) {
			nuclei = nuclei[:len(nuclei)-1]
		}
	}

	if len(nuclei) == 0 {
		return []string{string(runes)}
	}

	// Place one boundary inside each inter-nucleus gap: before the last
	// consonant when the gap has any, otherwise between the two vowels.
	segments := make([]string, 0, len(nuclei))
	segStart := 0
	for i := 0; i < len(nuclei)-1; i++ {
		gapStart := nuclei[i].end
		gapEnd := nuclei[i+1].start
		boundary := gapEnd
		if gapEnd > gapStart {
			boundary = gapEnd - 1
			if !unicode.IsLetter(runes[boundary]) {
				boundary = gapEnd
			}
		}
		segments = append(segments, string(runes[segStart:boundary]))
		segStart = boundary
	}
	segments = append(segments, string(runes[segStart:]))
	return segments
}

func vowelSet(vowels string) map[rune]bool {
	set := make(map[rune]bool, len(vowels))
	for _, r := range vowels {
		set[r] = true
	}
	return set
}

func pairSet(pairs ...string) map[string]bool {
	set := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		set[p] = true
	}
	return set
}
