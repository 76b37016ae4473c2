// Package mock provides a canned transcriber for tests and local development.
package mock

import (
	"context"
	"io"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

type Transcriber struct {
	result *domain.Transcription
	err    error
}

// New returns a transcriber that reports an empty transcript. Use WithResult
// or WithError to shape its behavior.
func New() *Transcriber {
	return &Transcriber{result: &domain.Transcription{}}
}

// WithResult makes the transcriber return the given transcription.
func (t *Transcriber) WithResult(result *domain.Transcription) *Transcriber {
	t.result = result
	return t
}

// WithError makes the transcriber fail with the given error.
func (t *Transcriber) WithError(err error) *Transcriber {
	t.err = err
	return t
}

func (t *Transcriber) Transcribe(_ context.Context, audio io.Reader, _ string) (*domain.Transcription, error) {
	if t.err != nil {
		return nil, t.err
	}
	// Drain the payload the way a real backend would.
	_, _ = io.Copy(io.Discard, audio)
	return t.result, nil
}
