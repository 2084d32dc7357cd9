package readability

import "testing"

// Both segmenters must satisfy the same contract; most cases run against
// each implementation.
func segmenters() map[string]Segmenter {
	return map[string]Segmenter{
		"unicode":   NewUnicodeSegmenter(),
		"heuristic": NewHeuristicSegmenter(),
	}
}

func TestSegmenterSentences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		language string
		want     int
	}{
		{
			name:     "three simple sentences",
			text:     "The cat sits on the mat. It is a warm day. Birds sing in the trees.",
			language: LanguageEnglish,
			want:     3,
		},
		{
			name:     "no terminator counts as one sentence",
			text:     "a fragment without any terminal punctuation",
			language: LanguageEnglish,
			want:     1,
		},
		{
			name:     "exclamation and question terminators",
			text:     "Stop! Why would you do that? Because.",
			language: LanguageEnglish,
			want:     3,
		},
		{
			name:     "repeated terminators collapse",
			text:     "Really?! I had no idea... Tell me more.",
			language: LanguageEnglish,
			want:     3,
		},
		{
			name:     "collapsed whitespace is transparent",
			text:     "First   sentence.\n\n  Second   sentence.",
			language: LanguageEnglish,
			want:     2,
		},
	}

	for implName, seg := range segmenters() {
		for _, tt := range tests {
			t.Run(implName+"/"+tt.name, func(t *testing.T) {
				got := seg.Sentences(tt.text, tt.language)
				if len(got) != tt.want {
					t.Errorf("Sentences(%q) = %d sentences %q, want %d",
						tt.text, len(got), got, tt.want)
				}
			})
		}
	}
}

func TestSegmenterSentencesEmptyInput(t *testing.T) {
	for implName, seg := range segmenters() {
		t.Run(implName, func(t *testing.T) {
			for _, text := range []string{"", "   ", "\n\t"} {
				if got := seg.Sentences(text, LanguageEnglish); len(got) != 0 {
					t.Errorf("Sentences(%q) = %q, want none", text, got)
				}
			}
		})
	}
}

func TestHeuristicSegmenterAbbreviations(t *testing.T) {
	seg := NewHeuristicSegmenter()

	tests := []struct {
		name     string
		text     string
		language string
		want     int
	}{
		{
			name:     "english title abbreviation",
			text:     "Dr. Smith arrived late. He apologized.",
			language: LanguageEnglish,
			want:     2,
		},
		{
			name:     "single letter initials",
			text:     "J. R. R. Tolkien wrote it. It is long.",
			language: LanguageEnglish,
			want:     2,
		},
		{
			name:     "etc inside a sentence",
			text:     "Bring pens, paper, etc. to the exam. Arrive early.",
			language: LanguageEnglish,
			want:     2,
		},
		{
			name:     "multi part abbreviation",
			text:     "She holds a Ph.D. in physics. Impressive.",
			language: LanguageEnglish,
			want:     2,
		},
		{
			name:     "german abbreviation",
			text:     "Dr. Müller kommt morgen. Er bleibt lange.",
			language: LanguageGerman,
			want:     2,
		},
		{
			name:     "french abbreviation",
			text:     "Mme Dupont est arrivée. Elle attend.",
			language: LanguageFrench,
			want:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seg.Sentences(tt.text, tt.language)
			if len(got) != tt.want {
				t.Errorf("Sentences(%q) = %d sentences %q, want %d",
					tt.text, len(got), got, tt.want)
			}
		})
	}
}

func TestSegmenterWords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		language string
		want     int
	}{
		{
			name:     "plain words",
			text:     "The cat sits on the mat",
			language: LanguageEnglish,
			want:     6,
		},
		{
			name:     "punctuation is not a word",
			text:     "Wait -- what?! ...",
			language: LanguageEnglish,
			want:     2,
		},
		{
			name:     "digit-only tokens are not words",
			text:     "In 2024 we audited 1500 pages",
			language: LanguageEnglish,
			want:     4,
		},
		{
			name:     "accented letters are word characters",
			text:     "Der Bär läuft über die Straße",
			language: LanguageGerman,
			want:     6,
		},
		{
			name:     "cedillas and accents",
			text:     "El niño comió mañana façade",
			language: LanguageSpanish,
			want:     5,
		},
		{
			name:     "extra whitespace is transparent",
			text:     "  one \t two \n three  ",
			language: LanguageEnglish,
			want:     3,
		},
		{
			name:     "empty text",
			text:     "",
			language: LanguageEnglish,
			want:     0,
		},
	}

	for implName, seg := range segmenters() {
		for _, tt := range tests {
			t.Run(implName+"/"+tt.name, func(t *testing.T) {
				got := seg.Words(tt.text, tt.language)
				if len(got) != tt.want {
					t.Errorf("Words(%q) = %d words %q, want %d",
						tt.text, len(got), got, tt.want)
				}
			})
		}
	}
}

func TestHeuristicSegmenterWordsKeepApostrophesAndHyphens(t *testing.T) {
	seg := NewHeuristicSegmenter()

	got := seg.Words("It's a well-known l'été story", LanguageEnglish)
	want := []string{"It's", "a", "well-known", "l'été", "story"}
	if len(got) != len(want) {
		t.Fatalf("Words() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Words()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
