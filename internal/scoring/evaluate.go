package scoring

import (
	"math"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

// Evaluate runs the full scoring pipeline for one recitation: normalization,
// accuracy, error classification, timing analysis, aggregation, reward and
// feedback. A missing transcript is scored as an empty string rather than
// rejected; accuracy degrades naturally through the edit distance.
func Evaluate(expectedText, ayahID string, tr domain.Transcription) domain.RecitationFeedback {
	normTranscribed := Normalize(tr.Text)
	normExpected := Normalize(expectedText)

	accuracy := Accuracy(tr.Text, expectedText)
	errs := Classify(normTranscribed, normExpected)
	metrics := AnalyzeTiming(tr.Words)

	overall := Aggregate(accuracy, metrics.TimingScore, metrics.FluencyScore)

	return domain.RecitationFeedback{
		OverallScore: overall,
		Accuracy:     math.Round(accuracy*100) / 100,
		TimingScore:  metrics.TimingScore,
		FluencyScore: metrics.FluencyScore,
		Hasanat:      HasanatPoints(expectedText, overall),
		LetterCount:  CountArabicLetters(expectedText),
		Errors:       errs,
		Message:      FeedbackMessage(accuracy, metrics, errs),
		Timing:       metrics,

		Transcript:   tr.Text,
		ExpectedText: expectedText,
		AyahID:       ayahID,
		Words:        tr.Words,
		Duration:     tr.Duration,
	}
}
