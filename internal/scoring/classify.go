package scoring

import (
	"strings"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

// Classify performs a positional word-by-word diff between the normalized
// transcribed and expected texts and reports each discrepancy as an omission,
// insertion or substitution.
//
// The comparison is strictly positional: after an omission or insertion
// shifts the sequences out of phase, following words are compared at their
// new offsets without re-synchronization. Callers relying on observable
// scores depend on this behavior.
func Classify(normTranscribed, normExpected string) []domain.RecitationError {
	transcribed := strings.Fields(normTranscribed)
	expected := strings.Fields(normExpected)

	limit := len(transcribed)
	if len(expected) > limit {
		limit = len(expected)
	}

	var errs []domain.RecitationError
	for pos := 0; pos < limit; pos++ {
		switch {
		case pos >= len(transcribed):
			errs = append(errs, domain.NewOmission(expected[pos], pos))
		case pos >= len(expected):
			errs = append(errs, domain.NewInsertion(transcribed[pos], pos))
		case transcribed[pos] != expected[pos]:
			errs = append(errs, domain.NewSubstitution(transcribed[pos], expected[pos], pos))
		}
	}

	return errs
}
