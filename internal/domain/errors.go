package domain

import "errors"

var (
	// ErrNotFound is returned when a recitation does not exist for the learner.
	ErrNotFound = errors.New("recitation not found")

	// ErrEmptyAudio is returned when a submission carries no audio payload.
	ErrEmptyAudio = errors.New("audio payload is empty")

	// ErrEmptyExpectedText is returned when a submission carries no expected text.
	ErrEmptyExpectedText = errors.New("expected text is empty")

	// ErrTranscriberUnavailable is returned when no transcription backend is configured.
	ErrTranscriberUnavailable = errors.New("transcription backend not configured")
)
