// Package scoring implements the recitation scoring pipeline: transcript
// normalization, edit-distance accuracy, positional word-error classification,
// timing/fluency analysis, weighted score aggregation and feedback generation.
//
// Every function in this package is pure and total over well-formed inputs.
// The pipeline holds no state, so concurrent scoring needs no coordination.
package scoring

import "strings"

// isIgnorable reports whether a rune is stripped during normalization:
// the Arabic diacritic range U+064B..U+0652, the superscript alef U+0670
// and the tatweel (kashida) U+0640.
func isIgnorable(r rune) bool {
	if r >= 0x064B && r <= 0x0652 {
		return true
	}
	return r == 0x0670 || r == 0x0640
}

// Normalize strips Arabic diacritics and tatweel from text, collapses runs of
// whitespace to single spaces and trims the result. It is idempotent and
// never fails; an empty string normalizes to an empty string.
func Normalize(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if isIgnorable(r) {
			return -1
		}
		return r
	}, text)

	return strings.Join(strings.Fields(stripped), " ")
}

// CountArabicLetters counts codepoints in the Arabic letter block
// U+0627..U+064A. Diacritics, spaces and punctuation are not counted.
func CountArabicLetters(text string) int {
	count := 0
	for _, r := range text {
		if r >= 0x0627 && r <= 0x064A {
			count++
		}
	}
	return count
}
