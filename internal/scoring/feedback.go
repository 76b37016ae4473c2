package scoring

import (
	"strings"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

// FeedbackMessage builds a human-readable feedback string from the computed
// scores and error categories. The rule cascade is deterministic: identical
// inputs always produce the identical message.
func FeedbackMessage(accuracy float64, metrics domain.TimingMetrics, errs []domain.RecitationError) string {
	var parts []string

	switch {
	case accuracy >= 90:
		parts = append(parts, "Excellent recitation! Your pronunciation is very accurate.")
	case accuracy >= 75:
		parts = append(parts, "Good recitation! Keep practicing to improve further.")
	case accuracy >= 60:
		parts = append(parts, "Fair recitation. Focus on correcting the mistakes shown.")
	default:
		parts = append(parts, "Keep practicing. Listen to the verse and try again slowly.")
	}

	if metrics.FluencyScore >= 80 {
		parts = append(parts, "Your recitation flows smoothly.")
	} else if metrics.LongPauses > 3 {
		parts = append(parts, "Try to reduce the long pauses between words.")
	}

	hasOmission := false
	hasSubstitution := false
	for _, e := range errs {
		switch e.Kind {
		case domain.ErrorOmission:
			hasOmission = true
		case domain.ErrorSubstitution:
			hasSubstitution = true
		case domain.ErrorInsertion:
			// Insertions are already reflected in the accuracy score.
		}
	}
	if hasOmission {
		parts = append(parts, "Pay attention to the words you missed.")
	}
	if hasSubstitution {
		parts = append(parts, "Double-check the pronunciation of the highlighted words.")
	}

	return strings.Join(parts, " ")
}
