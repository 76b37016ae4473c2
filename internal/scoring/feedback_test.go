package scoring

import (
	"strings"
	"testing"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

func TestFeedbackMessage_AccuracyTiers(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     string
	}{
		{95, "Excellent recitation"},
		{90, "Excellent recitation"},
		{80, "Good recitation"},
		{65, "Fair recitation"},
		{30, "Keep practicing"},
	}

	for _, tt := range tests {
		got := FeedbackMessage(tt.accuracy, domain.TimingMetrics{}, nil)
		if !strings.HasPrefix(got, tt.want) {
			t.Errorf("FeedbackMessage(%v) = %q, want prefix %q", tt.accuracy, got, tt.want)
		}
	}
}

func TestFeedbackMessage_FluencyAndPauses(t *testing.T) {
	smooth := FeedbackMessage(95, domain.TimingMetrics{FluencyScore: 85}, nil)
	if !strings.Contains(smooth, "flows smoothly") {
		t.Errorf("high fluency message = %q, want smooth-flow note", smooth)
	}

	choppy := FeedbackMessage(95, domain.TimingMetrics{FluencyScore: 50, LongPauses: 4}, nil)
	if !strings.Contains(choppy, "reduce the long pauses") {
		t.Errorf("many-pauses message = %q, want pause note", choppy)
	}

	// Few pauses with mediocre fluency: neither note applies.
	neutral := FeedbackMessage(95, domain.TimingMetrics{FluencyScore: 50, LongPauses: 2}, nil)
	if strings.Contains(neutral, "flows smoothly") || strings.Contains(neutral, "reduce the long pauses") {
		t.Errorf("neutral message = %q, want no flow notes", neutral)
	}
}

func TestFeedbackMessage_ErrorNotes(t *testing.T) {
	errs := []domain.RecitationError{
		domain.NewOmission("الله", 1),
		domain.NewSubstitution("بصر", "بسم", 0),
	}

	got := FeedbackMessage(70, domain.TimingMetrics{}, errs)
	if !strings.Contains(got, "words you missed") {
		t.Errorf("message %q missing omission note", got)
	}
	if !strings.Contains(got, "pronunciation of the highlighted words") {
		t.Errorf("message %q missing substitution note", got)
	}
}

func TestFeedbackMessage_Deterministic(t *testing.T) {
	metrics := domain.TimingMetrics{FluencyScore: 85, LongPauses: 1}
	errs := []domain.RecitationError{domain.NewInsertion("extra", 3)}

	first := FeedbackMessage(88, metrics, errs)
	for i := 0; i < 10; i++ {
		if got := FeedbackMessage(88, metrics, errs); got != first {
			t.Fatalf("FeedbackMessage not deterministic: %q != %q", got, first)
		}
	}
}
