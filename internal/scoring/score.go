package scoring

import "math"

// Scoring weights: accuracy dominates, timing and fluency refine.
const (
	weightAccuracy = 0.6
	weightTiming   = 0.2
	weightFluency  = 0.2

	hasanatPerLetter = 10
)

// Aggregate combines the accuracy percentage with the timing and fluency
// sub-scores into the weighted overall score, rounded and clamped to [0, 100].
func Aggregate(accuracy float64, timingScore, fluencyScore int) int {
	weighted := accuracy*weightAccuracy +
		float64(timingScore)*weightTiming +
		float64(fluencyScore)*weightFluency

	return clampScore(int(math.Round(weighted)))
}

// HasanatPoints converts an overall score into reward points, proportional to
// the number of Arabic letters in the expected text. Never negative.
func HasanatPoints(expectedText string, overallScore int) int {
	letters := CountArabicLetters(expectedText)
	points := int(math.Round(float64(letters) * hasanatPerLetter * float64(overallScore) / 100))
	if points < 0 {
		return 0
	}
	return points
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
