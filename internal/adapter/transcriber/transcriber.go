// Package transcriber selects and constructs the speech-to-text backend used
// by the recitation service. The concrete engines live in subpackages; any
// backend producing a transcript plus word-level timestamps satisfies the
// domain.Transcriber port.
package transcriber

import (
	"fmt"

	"github.com/escalopa/quran-recite-api/internal/adapter/transcriber/elevenlabs"
	"github.com/escalopa/quran-recite-api/internal/adapter/transcriber/mock"
	"github.com/escalopa/quran-recite-api/internal/adapter/transcriber/whispercli"
	"github.com/escalopa/quran-recite-api/internal/config"
	"github.com/escalopa/quran-recite-api/internal/domain"
)

// New builds the transcriber named by cfg.Provider.
func New(cfg config.TranscriberConfig) (domain.Transcriber, error) {
	switch cfg.Provider {
	case "elevenlabs":
		return elevenlabs.New(cfg.ElevenLabs.BaseURL, cfg.ElevenLabs.APIKey), nil
	case "whisper":
		return whispercli.New(cfg.Whisper.Command, cfg.Whisper.ModelPath)
	case "mock":
		return mock.New(), nil
	default:
		return nil, fmt.Errorf("unknown transcriber provider: %s", cfg.Provider)
	}
}
