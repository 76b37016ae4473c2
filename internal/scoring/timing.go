package scoring

import (
	"math"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

const (
	// longPauseThreshold is the inter-word gap, in seconds, beyond which a
	// pause counts against the timing score.
	longPauseThreshold = 1.0

	// idealWPM is the ideal recitation pace in words per minute.
	idealWPM = 100

	// neutralScore is the fallback timing/fluency score when the transcriber
	// provides no word timestamps.
	neutralScore = 70
)

// AnalyzeTiming derives pause statistics and pacing scores from word-level
// timestamps. An empty sequence yields a fixed neutral result rather than an
// error, so submissions score even when the transcriber has no timing data.
func AnalyzeTiming(words []domain.WordTimestamp) domain.TimingMetrics {
	if len(words) == 0 {
		return domain.TimingMetrics{
			TimingScore:  neutralScore,
			FluencyScore: neutralScore,
		}
	}

	var pauseSum float64
	longPauses := 0
	for i := 1; i < len(words); i++ {
		pause := words[i].Start - words[i-1].End
		pauseSum += pause
		if pause > longPauseThreshold {
			longPauses++
		}
	}

	avgPause := 0.0
	if len(words) > 1 {
		avgPause = pauseSum / float64(len(words)-1)
	}

	totalDuration := words[len(words)-1].End - words[0].Start
	if totalDuration == 0 {
		totalDuration = 1
	}
	wpm := float64(len(words)) / totalDuration * 60

	wpmScore := 100 - math.Abs(wpm-idealWPM)*2
	if wpmScore < 0 {
		wpmScore = 0
	}

	timingScore := 100 - longPauses*10
	if timingScore < 0 {
		timingScore = 0
	}

	return domain.TimingMetrics{
		AvgPause:       math.Round(avgPause*1000) / 1000,
		LongPauses:     longPauses,
		WordsPerMinute: wpm,
		TimingScore:    timingScore,
		FluencyScore:   int(math.Round((wpmScore + float64(timingScore)) / 2)),
	}
}
