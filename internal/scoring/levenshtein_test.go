package scoring

import (
	"testing"

	"github.com/antzucaro/matchr"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"بسم", "بسم", 0},
		{"بسم الله", "بسم", 5},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

// Cross-check our DP implementation against the matchr reference over a
// mixed Latin/Arabic vector set.
func TestDistance_MatchesReference(t *testing.T) {
	vectors := []string{
		"", "a", "ab", "abc", "kitten", "sitting",
		"بسم الله الرحمن الرحيم", "بسم الله", "الحمد لله رب العالمين", "قل هو الله احد",
	}

	for _, a := range vectors {
		for _, b := range vectors {
			want := matchr.Levenshtein(a, b)
			if got := Distance(a, b); got != want {
				t.Errorf("Distance(%q, %q) = %d, reference = %d", a, b, got, want)
			}
		}
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name        string
		transcribed string
		expected    string
		want        float64
	}{
		{"both empty", "", "", 100},
		{"identical", "بسم الله", "بسم الله", 100},
		{"diacritics only difference", "بسم الله", "بِسْمِ اللَّهِ", 100},
		{"empty transcript", "", "بسم", 0},
		{"whitespace-only transcript", "   ", "   ", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Accuracy(tt.transcribed, tt.expected); got != tt.want {
				t.Fatalf("Accuracy(%q, %q) = %v, want %v", tt.transcribed, tt.expected, got, tt.want)
			}
		})
	}
}

// Normalization strips diacritics but never folds hamza forms, so a bare
// alef in the transcript counts as one substitution.
func TestAccuracy_HamzaNotFolded(t *testing.T) {
	transcribed := "قل هو الله احد"
	expected := "قُلْ هُوَ اللَّهُ أَحَدٌ"

	want := (1 - 1.0/14.0) * 100
	if got := Accuracy(transcribed, expected); got != want {
		t.Fatalf("Accuracy(%q, %q) = %v, want %v", transcribed, expected, got, want)
	}
}

func TestAccuracy_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"abc", "xyz"},
		{"a", "aaaaaaaaaaaaaaaa"},
		{"بسم الله", "قل هو الله احد"},
		{"completely different words here", "بسم الله الرحمن الرحيم"},
	}
	for _, p := range pairs {
		got := Accuracy(p[0], p[1])
		if got < 0 || got > 100 {
			t.Errorf("Accuracy(%q, %q) = %v, outside [0, 100]", p[0], p[1], got)
		}
	}
}
