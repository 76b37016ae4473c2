package scoring

import (
	"testing"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

func TestAnalyzeTiming_EmptyFallback(t *testing.T) {
	got := AnalyzeTiming(nil)

	if got.TimingScore != 70 || got.FluencyScore != 70 || got.AvgPause != 0 {
		t.Fatalf("AnalyzeTiming(nil) = %+v, want timing=70 fluency=70 avgPause=0", got)
	}
}

func TestAnalyzeTiming_IdealPace(t *testing.T) {
	// Five back-to-back words spanning 3.0 s: exactly 100 WPM, no pauses.
	var words []domain.WordTimestamp
	for i := 0; i < 5; i++ {
		start := float64(i) * 0.6
		words = append(words, domain.WordTimestamp{Word: "w", Start: start, End: start + 0.6})
	}

	got := AnalyzeTiming(words)

	if got.WordsPerMinute != 100 {
		t.Errorf("WordsPerMinute = %v, want 100", got.WordsPerMinute)
	}
	if got.TimingScore != 100 {
		t.Errorf("TimingScore = %d, want 100", got.TimingScore)
	}
	if got.FluencyScore != 100 {
		t.Errorf("FluencyScore = %d, want 100", got.FluencyScore)
	}
	if got.AvgPause != 0 {
		t.Errorf("AvgPause = %v, want 0", got.AvgPause)
	}
}

func TestAnalyzeTiming_LongPauses(t *testing.T) {
	words := []domain.WordTimestamp{
		{Word: "a", Start: 0, End: 0.5},
		{Word: "b", Start: 2.0, End: 2.5}, // 1.5 s gap, counts as a long pause
		{Word: "c", Start: 3.0, End: 3.5}, // 0.5 s gap
	}

	got := AnalyzeTiming(words)

	if got.LongPauses != 1 {
		t.Errorf("LongPauses = %d, want 1", got.LongPauses)
	}
	if got.AvgPause != 1.0 {
		t.Errorf("AvgPause = %v, want 1.0", got.AvgPause)
	}
	if got.TimingScore != 90 {
		t.Errorf("TimingScore = %d, want 90", got.TimingScore)
	}
	if got.FluencyScore != 46 {
		t.Errorf("FluencyScore = %d, want 46", got.FluencyScore)
	}
}

func TestAnalyzeTiming_ZeroDurationFallback(t *testing.T) {
	// One word with zero extent: duration falls back to 1 s instead of
	// dividing by zero.
	got := AnalyzeTiming([]domain.WordTimestamp{{Word: "a", Start: 1.0, End: 1.0}})

	if got.WordsPerMinute != 60 {
		t.Errorf("WordsPerMinute = %v, want 60", got.WordsPerMinute)
	}
	if got.TimingScore != 100 {
		t.Errorf("TimingScore = %d, want 100", got.TimingScore)
	}
	if got.FluencyScore != 60 {
		t.Errorf("FluencyScore = %d, want 60", got.FluencyScore)
	}
}
