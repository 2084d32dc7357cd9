package readability

import (
	"context"
	"strings"
	"testing"
)

const simpleEnglish = "The cat sits on the mat. It is a warm day. Birds sing in the trees."

const complexEnglish = "The implementation necessitates comprehensive understanding of " +
	"multifaceted algorithmic paradigms and sophisticated computational methodologies."

func TestAnalyzeSimpleText(t *testing.T) {
	analyzer := New(DefaultConfig())

	result, err := analyzer.Analyze(context.Background(), simpleEnglish, LanguageEnglish)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if result.Sentences != 3 {
		t.Errorf("Sentences = %d, want 3", result.Sentences)
	}
	if result.Words != 16 {
		t.Errorf("Words = %d, want 16", result.Words)
	}
	if result.Syllables < result.Words {
		t.Errorf("Syllables = %d, want at least one per word (%d)", result.Syllables, result.Words)
	}
	if result.Score <= TargetScore(LanguageEnglish) {
		t.Errorf("simple text scored %v, want > target %v", result.Score, TargetScore(LanguageEnglish))
	}
}

func TestAnalyzeComplexText(t *testing.T) {
	analyzer := New(DefaultConfig())

	result, err := analyzer.Analyze(context.Background(), complexEnglish, LanguageEnglish)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if result.Score >= 50 {
		t.Errorf("complex text scored %v, want < 50", result.Score)
	}
	if result.ComplexWords == 0 {
		t.Error("complex text reported zero complex words")
	}
}

func TestAnalyzeEmptyInputLaw(t *testing.T) {
	analyzer := New(DefaultConfig())
	degenerate := []string{"", "   ", "\n\t", "...", "?!", "12 345 6789", "--- 42 ---"}

	for _, name := range SupportedLanguages() {
		for _, text := range degenerate {
			result, err := analyzer.Analyze(context.Background(), text, name)
			if err != nil {
				t.Fatalf("Analyze(%q, %s) error: %v", text, name, err)
			}
			want := Result{Score: 100}
			if *result != want {
				t.Errorf("Analyze(%q, %s) = %+v, want %+v", text, name, result, want)
			}
		}
	}
}

func TestAnalyzeDeterminism(t *testing.T) {
	analyzer := New(DefaultConfig())
	ctx := context.Background()

	for _, name := range SupportedLanguages() {
		first, err := analyzer.Analyze(ctx, simpleEnglish, name)
		if err != nil {
			t.Fatalf("Analyze error: %v", err)
		}
		for i := 0; i < 3; i++ {
			again, err := analyzer.Analyze(ctx, simpleEnglish, name)
			if err != nil {
				t.Fatalf("Analyze error: %v", err)
			}
			if *again != *first {
				t.Errorf("%s: repeated call diverged: %+v vs %+v", name, again, first)
			}
		}
	}
}

func TestAnalyzeLanguageCaseInsensitivity(t *testing.T) {
	analyzer := New(DefaultConfig())
	ctx := context.Background()

	base, err := analyzer.Score(ctx, simpleEnglish, "english")
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	for _, variant := range []string{"English", "ENGLISH", "eng", "ENG", "  english "} {
		got, err := analyzer.Score(ctx, simpleEnglish, variant)
		if err != nil {
			t.Fatalf("Score(%q) error: %v", variant, err)
		}
		if got != base {
			t.Errorf("Score with language %q = %v, want %v", variant, got, base)
		}
	}
}

func TestAnalyzeEmptyLanguageDefaultsToEnglish(t *testing.T) {
	analyzer := New(DefaultConfig())
	ctx := context.Background()

	got, err := analyzer.Analyze(ctx, simpleEnglish, "")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	want, err := analyzer.Analyze(ctx, simpleEnglish, LanguageEnglish)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if *got != *want {
		t.Errorf("empty language result %+v, want english result %+v", got, want)
	}
}

func TestAnalyzeScoreBounds(t *testing.T) {
	analyzer := New(DefaultConfig())
	ctx := context.Background()

	texts := []string{
		simpleEnglish,
		complexEnglish,
		"Ein Satz. Noch ein Satz mit mehr Wörtern darin.",
		"Una frase corta. Otra frase con algunas palabras más.",
		strings.Repeat("word ", 500) + ".",
	}
	for _, name := range SupportedLanguages() {
		for _, text := range texts {
			score, err := analyzer.Score(ctx, text, name)
			if err != nil {
				t.Fatalf("Score error: %v", err)
			}
			if score < 0 || score > 100 {
				t.Errorf("%s: score %v out of [0, 100] for %.30q", name, score, text)
			}
		}
	}
}

func TestAnalyzeCrossLanguageVariation(t *testing.T) {
	analyzer := New(DefaultConfig())
	ctx := context.Background()

	// A sufficiently non-trivial text must produce at least two distinct
	// scores across the six formulas.
	text := "Die Kraftfahrzeughaftpflichtversicherung ist eine verpflichtende Versicherung " +
		"für alle Fahrzeughalter. Sie übernimmt die Kosten bei Schäden an Dritten."

	distinct := make(map[float64]bool)
	for _, name := range SupportedLanguages() {
		score, err := analyzer.Score(ctx, text, name)
		if err != nil {
			t.Fatalf("Score error: %v", err)
		}
		distinct[score] = true
	}
	if len(distinct) < 2 {
		t.Errorf("identical text scored identically in all six languages: %v", distinct)
	}
}

func TestAnalyzeGermanCompoundSyllables(t *testing.T) {
	analyzer := New(DefaultConfig())

	result, err := analyzer.Analyze(context.Background(), "Kraftfahrzeughaftpflichtversicherung.", LanguageGerman)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if result.Words != 1 {
		t.Fatalf("Words = %d, want 1", result.Words)
	}
	if result.Syllables <= 5 {
		t.Errorf("Syllables = %d, want > 5 via hyphenation-based counting", result.Syllables)
	}
}

func TestAnalyzeUnsupportedLanguageNeverFails(t *testing.T) {
	analyzer := New(DefaultConfig())

	score, err := analyzer.Score(context.Background(), simpleEnglish, "xyz")
	if err != nil {
		t.Fatalf("Score(xyz) error: %v", err)
	}
	if score < 0 || score > 100 {
		t.Errorf("Score(xyz) = %v, want finite in-range score", score)
	}
}

func TestAnalyzeComplexThresholdMonotonicity(t *testing.T) {
	analyzer := New(DefaultConfig())
	ctx := context.Background()

	prev := -1
	for threshold := 1; threshold <= 6; threshold++ {
		result, err := analyzer.Analyze(ctx, complexEnglish, LanguageEnglish,
			WithComplexThreshold(threshold))
		if err != nil {
			t.Fatalf("Analyze error: %v", err)
		}
		if prev >= 0 && result.ComplexWords > prev {
			t.Errorf("threshold %d: ComplexWords %d > %d at lower threshold",
				threshold, result.ComplexWords, prev)
		}
		prev = result.ComplexWords
	}
}

func TestAnalyzeComplexThresholdDoesNotAffectScore(t *testing.T) {
	analyzer := New(DefaultConfig())
	ctx := context.Background()

	base, err := analyzer.Analyze(ctx, complexEnglish, LanguageEnglish)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	strict, err := analyzer.Analyze(ctx, complexEnglish, LanguageEnglish, WithComplexThreshold(5))
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if strict.Score != base.Score {
		t.Errorf("threshold changed score: %v vs %v", strict.Score, base.Score)
	}
	if strict.Syllables != base.Syllables || strict.Words != base.Words || strict.Sentences != base.Sentences {
		t.Error("threshold changed counts other than ComplexWords")
	}
}

func TestAnalyzeFrequencyAwareAggregation(t *testing.T) {
	analyzer := New(DefaultConfig())

	// "banana" (3 syllables) appears three times; the aggregate must count
	// every occurrence, not unique words.
	result, err := analyzer.Analyze(context.Background(), "banana banana banana", LanguageEnglish)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if result.Words != 3 {
		t.Errorf("Words = %d, want 3", result.Words)
	}
	if result.Syllables != 9 {
		t.Errorf("Syllables = %d, want 9", result.Syllables)
	}
	if result.ComplexWords != 3 {
		t.Errorf("ComplexWords = %d, want 3", result.ComplexWords)
	}
}

func TestAnalyzeCancelledContext(t *testing.T) {
	analyzer := New(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := analyzer.Analyze(ctx, simpleEnglish, LanguageEnglish); err == nil {
		t.Error("Analyze with cancelled context succeeded, want context error")
	}
}

func TestPackageLevelFunctionsShareDefaultAnalyzer(t *testing.T) {
	ctx := context.Background()

	result, err := Analyze(ctx, simpleEnglish, LanguageEnglish)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	score, err := Score(ctx, simpleEnglish, LanguageEnglish)
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if score != result.Score {
		t.Errorf("Score = %v, Analyze().Score = %v", score, result.Score)
	}
	if Default() != Default() {
		t.Error("Default() returned different instances")
	}
}

func BenchmarkAnalyzeEnglish(b *testing.B) {
	analyzer := New(DefaultConfig())
	ctx := context.Background()
	text := strings.Repeat(simpleEnglish+" ", 20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := analyzer.Analyze(ctx, text, LanguageEnglish); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAnalyzeGermanCached(b *testing.B) {
	analyzer := New(DefaultConfig())
	ctx := context.Background()
	text := "Die Versicherung übernimmt die Kosten bei Schäden an Dritten. " +
		"Fahrzeughalter müssen sie abschließen."

	// Warm the hyphenator and the syllable cache.
	if _, err := analyzer.Analyze(ctx, text, LanguageGerman); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := analyzer.Analyze(ctx, text, LanguageGerman); err != nil {
			b.Fatal(err)
		}
	}
}
