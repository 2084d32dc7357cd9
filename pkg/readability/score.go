package readability

// ScoreCoefficients holds the per-language weights of the unified
// readability formula:
//
//	score = 100
//	        - WordsPerSentence   * (words / sentences)
//	        - SyllablesPerWord   * (syllables / words)
//	        - SyllablesPer100Words * (100 * syllables / words)
//	        + Intercept
//
// clamped to [0, 100]. Each language uses exactly one of the two
// syllable-related weights; the unused weight is zero, which contributes
// nothing to the formula rather than being an error.
//
// The numeric values reproduce each language's established reading-ease
// convention. They are calibration data, not algorithmic decisions, and are
// the place to tune when validating against a reference corpus.
type ScoreCoefficients struct {
	Intercept            float64
	WordsPerSentence     float64
	SyllablesPerWord     float64
	SyllablesPer100Words float64
}

// scoreCoefficients is the static per-language coefficient table, defined
// once at initialization and read-only thereafter.
var scoreCoefficients = map[string]ScoreCoefficients{
	// Flesch Reading Ease: 206.835 - 1.015*(w/s) - 84.6*(syll/w)
	LanguageEnglish: {Intercept: 106.835, WordsPerSentence: 1.015, SyllablesPerWord: 84.6},
	// Amstad: 180 - (w/s) - 58.5*(syll/w)
	LanguageGerman: {Intercept: 80, WordsPerSentence: 1, SyllablesPerWord: 58.5},
	// Fernandez-Huerta: 206.84 - 1.02*(w/s) - 0.60*(syll per 100 words)
	LanguageSpanish: {Intercept: 106.84, WordsPerSentence: 1.02, SyllablesPer100Words: 0.60},
	// Flesch-Vacca: 217 - 1.3*(w/s) - 0.60*(syll per 100 words)
	LanguageItalian: {Intercept: 117, WordsPerSentence: 1.3, SyllablesPer100Words: 0.60},
	// Kandel-Moles: 207 - 1.015*(w/s) - 73.6*(syll/w)
	LanguageFrench: {Intercept: 107, WordsPerSentence: 1.015, SyllablesPerWord: 73.6},
	// Douma: 206.84 - 0.93*(w/s) - 77*(syll/w)
	LanguageDutch: {Intercept: 106.84, WordsPerSentence: 0.93, SyllablesPerWord: 77},
}

// Coefficients returns the formula coefficients for a normalized language
// name. Unsupported languages default to the English coefficient set.
func Coefficients(language string) ScoreCoefficients {
	if c, ok := scoreCoefficients[NormalizeLanguage(language)]; ok {
		return c
	}
	return scoreCoefficients[LanguageEnglish]
}

// calculateScore applies the unified formula and clamps the result to
// [0, 100]. Callers must short-circuit degenerate input beforehand:
// sentences and words are both expected to be positive here.
func calculateScore(language string, sentences, words, syllables int) float64 {
	c, ok := scoreCoefficients[language]
	if !ok {
		c = scoreCoefficients[LanguageEnglish]
	}

	wordsPerSentence := float64(words) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(words)

	score := 100 -
		c.WordsPerSentence*wordsPerSentence -
		c.SyllablesPerWord*syllablesPerWord -
		c.SyllablesPer100Words*(100*syllablesPerWord) +
		c.Intercept

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
