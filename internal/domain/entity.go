package domain

import "time"

// Surah represents a chapter in the Quran
type Surah struct {
	Number int
	Name   string
	Ayahs  int
}

// Ayah represents a verse in the Quran
type Ayah struct {
	SurahNumber int
	AyahNumber  int
}

// AyahID returns the formatted ayah ID (XXXYYY format)
func (a Ayah) AyahID() string {
	return FormatAyahID(a.SurahNumber, a.AyahNumber)
}

// Recitation is a scored recitation submission
type Recitation struct {
	ID           string
	LearnerID    string
	AyahID       string
	ExpectedText string
	Status       RecitationStatus
	Feedback     *RecitationFeedback
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type RecitationStatus string

const (
	StatusDone   RecitationStatus = "done"
	StatusFailed RecitationStatus = "failed"
)

// WordTimestamp is a single word from the transcriber with its time bounds
// in seconds. Start <= End; the sequence is ordered by time.
type WordTimestamp struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transcription is the output of the speech-to-text boundary.
type Transcription struct {
	Text     string          `json:"text"`
	Words    []WordTimestamp `json:"words"`
	Duration float64         `json:"duration"`
}

// TimingMetrics holds pause and pacing statistics derived from word timestamps.
type TimingMetrics struct {
	AvgPause       float64 `json:"avg_pause"`
	LongPauses     int     `json:"long_pauses"`
	WordsPerMinute float64 `json:"words_per_minute"`
	TimingScore    int     `json:"timing_score"`
	FluencyScore   int     `json:"fluency_score"`
}

// ErrorKind discriminates the closed set of recitation error variants.
type ErrorKind string

const (
	ErrorOmission     ErrorKind = "omission"
	ErrorInsertion    ErrorKind = "insertion"
	ErrorSubstitution ErrorKind = "substitution"
)

// RecitationError is one word-level discrepancy between the transcribed and
// expected text. Position is the zero-based index in the word-aligned sequence.
// Expected is empty for insertions; Transcribed is empty for omissions.
type RecitationError struct {
	Kind        ErrorKind `json:"kind"`
	Expected    string    `json:"expected,omitempty"`
	Transcribed string    `json:"transcribed,omitempty"`
	Position    int       `json:"position"`
}

func NewOmission(expected string, position int) RecitationError {
	return RecitationError{Kind: ErrorOmission, Expected: expected, Position: position}
}

func NewInsertion(transcribed string, position int) RecitationError {
	return RecitationError{Kind: ErrorInsertion, Transcribed: transcribed, Position: position}
}

func NewSubstitution(transcribed, expected string, position int) RecitationError {
	return RecitationError{Kind: ErrorSubstitution, Expected: expected, Transcribed: transcribed, Position: position}
}

// RecitationFeedback is the aggregate result of scoring one recitation.
// It is constructed once by the scoring pipeline and never mutated.
type RecitationFeedback struct {
	OverallScore int               `json:"overall_score"`
	Accuracy     float64           `json:"accuracy"`
	TimingScore  int               `json:"timing_score"`
	FluencyScore int               `json:"fluency_score"`
	Hasanat      int               `json:"hasanat"`
	LetterCount  int               `json:"letter_count"`
	Errors       []RecitationError `json:"errors"`
	Message      string            `json:"message"`
	Timing       TimingMetrics     `json:"timing"`

	// Pass-through fields carried for the caller's convenience.
	Transcript   string          `json:"transcript"`
	ExpectedText string          `json:"expected_text"`
	AyahID       string          `json:"ayah_id,omitempty"`
	Words        []WordTimestamp `json:"words,omitempty"`
	Duration     float64         `json:"duration,omitempty"`
}

// Progress tracks a learner's accumulated reward and recitation streak.
type Progress struct {
	LearnerID   string    `json:"learner_id"`
	Hasanat     int64     `json:"hasanat"`
	Streak      int       `json:"streak"`
	Recitations int64     `json:"recitations"`
	LastRecited time.Time `json:"last_recited"`
}

// Language represents supported languages
type Language string

const (
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
	LangRussian Language = "ru"
)
