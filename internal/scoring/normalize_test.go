package scoring

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \t\n ", ""},
		{"collapse whitespace", "a  b\t c", "a b c"},
		{"trim", "  بسم الله  ", "بسم الله"},
		{"strip diacritics", "بِسْمِ اللَّهِ", "بسم الله"},
		{"strip tatweel", "بـــسم", "بسم"},
		{"strip superscript alef", "الرحمٰن", "الرحمن"},
		{"plain latin untouched", "kitten sitting", "kitten sitting"},
		{"hamza forms preserved", "أَحَدٌ", "أحد"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ",
		"  a  b  ",
		"الْحَمْدُ لِلَّهِ رَبِّ الْعَالَمِينَ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestCountArabicLetters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"bismillah with diacritics", "بِسْمِ اللَّهِ", 7},
		{"spaces and punctuation ignored", "بسم الله.", 7},
		{"latin ignored", "hello", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountArabicLetters(tt.in); got != tt.want {
				t.Fatalf("CountArabicLetters(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
