package domain

import (
	"context"
	"io"
)

// Transcriber defines the interface for the external speech-to-text boundary.
// Any engine producing a transcript plus word-level timestamps is acceptable.
type Transcriber interface {
	// Transcribe converts an audio recording into text with word timestamps.
	// language is a BCP-47 code; this service always passes "ar".
	Transcribe(ctx context.Context, audio io.Reader, language string) (*Transcription, error)
}

// VersePort defines the interface for fetching canonical ayah text.
type VersePort interface {
	// GetAyahText returns the Arabic text of the given ayah, with diacritics.
	GetAyahText(ctx context.Context, surahNumber, ayahNumber int) (string, error)
}

// RecitationStore defines the interface for recitation history persistence.
type RecitationStore interface {
	// Save persists a scored recitation.
	Save(ctx context.Context, recitation *Recitation) error

	// Get retrieves a recitation by ID, scoped to a learner.
	Get(ctx context.Context, learnerID, recitationID string) (*Recitation, error)

	// List retrieves the most recent recitations for a learner, newest first.
	List(ctx context.Context, learnerID string, limit int) ([]*Recitation, error)
}

// ProgressStore defines the interface for learner progress tracking.
type ProgressStore interface {
	// RecordRecitation adds hasanat points for a learner and advances the
	// daily streak. It returns the updated progress.
	RecordRecitation(ctx context.Context, learnerID string, hasanat int) (*Progress, error)

	// GetProgress returns the learner's accumulated progress.
	GetProgress(ctx context.Context, learnerID string) (*Progress, error)
}

// FSMPort defines the interface for finite state machine storage
type FSMPort interface {
	// SetState sets the current state for a user
	SetState(ctx context.Context, userID string, state State) error

	// GetState gets the current state for a user
	GetState(ctx context.Context, userID string) (State, error)

	// DeleteState deletes the state for a user
	DeleteState(ctx context.Context, userID string) error

	// SetData sets temporary data for a user's current session
	SetData(ctx context.Context, userID, key, value string) error

	// GetData gets temporary data for a user's current session
	GetData(ctx context.Context, userID, key string) (string, error)

	// DeleteData deletes temporary data for a user
	DeleteData(ctx context.Context, userID, key string) error
}

// I18nPort defines the interface for internationalization
type I18nPort interface {
	// Get retrieves a translated message
	Get(lang Language, key string, args ...interface{}) string

	// GetSurahName retrieves the localized name of a Surah
	GetSurahName(lang Language, surahNumber int) string
}

// BotPort defines the interface for the bot adapter
type BotPort interface {
	// Start starts the bot
	Start(ctx context.Context) error

	// Stop stops the bot
	Stop() error
}

// State represents the FSM states
type State string

const (
	StateStart         State = "start"
	StateSelectSurah   State = "select_surah"
	StateEnterAyah     State = "enter_ayah"
	StateWaitRecording State = "wait_recording"
)

// SessionData keys
const (
	SessionKeySurah     = "surah"
	SessionKeyAyah      = "ayah"
	SessionKeyAyahInput = "ayah_input" // Accumulated digit input for ayah number
	SessionKeyLanguage  = "language"
)
