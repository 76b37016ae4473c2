package scoring

import (
	"strings"
	"testing"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

// The canonical end-to-end scenario: the expected text carries diacritics,
// the transcript does not. Normalization makes them identical, so accuracy
// is perfect and no errors are reported.
func TestEvaluate_Bismillah(t *testing.T) {
	tr := domain.Transcription{
		Text: "بسم الله",
		Words: []domain.WordTimestamp{
			{Word: "بسم", Start: 0, End: 0.6},
			{Word: "الله", Start: 0.6, End: 1.2},
		},
		Duration: 1.2,
	}

	fb := Evaluate("بِسْمِ اللَّهِ", "001001", tr)

	if fb.Accuracy != 100 {
		t.Errorf("Accuracy = %v, want 100", fb.Accuracy)
	}
	if len(fb.Errors) != 0 {
		t.Errorf("Errors = %+v, want none", fb.Errors)
	}
	if fb.LetterCount != 7 {
		t.Errorf("LetterCount = %d, want 7", fb.LetterCount)
	}
	if fb.OverallScore < 0 || fb.OverallScore > 100 {
		t.Errorf("OverallScore = %d, outside [0, 100]", fb.OverallScore)
	}
	if fb.Hasanat != HasanatPoints("بِسْمِ اللَّهِ", fb.OverallScore) {
		t.Errorf("Hasanat = %d, inconsistent with overall score %d", fb.Hasanat, fb.OverallScore)
	}
	if !strings.HasPrefix(fb.Message, "Excellent recitation") {
		t.Errorf("Message = %q, want excellent tier", fb.Message)
	}

	// Pass-through fields are carried, not computed.
	if fb.Transcript != tr.Text || fb.ExpectedText != "بِسْمِ اللَّهِ" || fb.AyahID != "001001" {
		t.Errorf("pass-through fields not carried: %+v", fb)
	}
	if fb.Duration != 1.2 || len(fb.Words) != 2 {
		t.Errorf("timing pass-through not carried: duration=%v words=%d", fb.Duration, len(fb.Words))
	}
}

// An empty transcript still produces a feedback value; accuracy bottoms out
// through the edit distance and every expected word becomes an omission.
func TestEvaluate_EmptyTranscript(t *testing.T) {
	fb := Evaluate("بِسْمِ اللَّهِ", "", domain.Transcription{})

	if fb.Accuracy != 0 {
		t.Errorf("Accuracy = %v, want 0", fb.Accuracy)
	}
	if len(fb.Errors) != 2 {
		t.Fatalf("Errors = %+v, want 2 omissions", fb.Errors)
	}
	for _, e := range fb.Errors {
		if e.Kind != domain.ErrorOmission {
			t.Errorf("error kind = %s, want omission", e.Kind)
		}
	}
	// Timing falls back to the neutral default without timestamps.
	if fb.TimingScore != 70 || fb.FluencyScore != 70 {
		t.Errorf("timing=%d fluency=%d, want neutral 70/70", fb.TimingScore, fb.FluencyScore)
	}
}

func TestEvaluate_BothEmpty(t *testing.T) {
	fb := Evaluate("", "", domain.Transcription{})

	if fb.Accuracy != 100 {
		t.Errorf("Accuracy = %v, want 100 for empty comparands", fb.Accuracy)
	}
	if fb.Hasanat != 0 {
		t.Errorf("Hasanat = %d, want 0 with no letters", fb.Hasanat)
	}
}
