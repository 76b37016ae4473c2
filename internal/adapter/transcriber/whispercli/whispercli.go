// Package whispercli implements the transcriber port by shelling out to a
// whisper-style CLI that prints a JSON transcript with word timings to stdout.
package whispercli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/escalopa/quran-recite-api/internal/adapter/audio"
	"github.com/escalopa/quran-recite-api/internal/domain"
)

type Transcriber struct {
	cmd       []string
	modelPath string
}

// New parses the configured command line once at construction so a malformed
// command fails at startup, not per request.
func New(command, modelPath string) (*Transcriber, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse whisper command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("whisper command is empty")
	}
	return &Transcriber{cmd: args, modelPath: modelPath}, nil
}

type cliWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type cliResult struct {
	Text     string    `json:"text"`
	Words    []cliWord `json:"words"`
	Duration float64   `json:"duration"`
}

func (t *Transcriber) Transcribe(ctx context.Context, audioReader io.Reader, language string) (*domain.Transcription, error) {
	payload, err := io.ReadAll(audioReader)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	file, err := os.CreateTemp("", "recite_stt_*.wav")
	if err != nil {
		return nil, fmt.Errorf("temp file: %w", err)
	}
	defer os.Remove(file.Name())
	defer file.Close()

	if _, err := file.Write(payload); err != nil {
		return nil, fmt.Errorf("write audio: %w", err)
	}
	if err := file.Sync(); err != nil {
		return nil, fmt.Errorf("flush audio: %w", err)
	}

	args := append([]string{}, t.cmd[1:]...)
	args = append(args, "--audio", file.Name(), "--output-json")
	if t.modelPath != "" {
		args = append(args, "--model", t.modelPath)
	}
	if language != "" {
		args = append(args, "--language", language)
	}

	command := exec.CommandContext(ctx, t.cmd[0], args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return nil, fmt.Errorf("whisper command failed: %w: %s", err, stderr.String())
	}

	var resp cliResult
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("decode whisper response: %w", err)
	}

	tr := &domain.Transcription{Text: resp.Text, Duration: resp.Duration}
	for _, w := range resp.Words {
		tr.Words = append(tr.Words, domain.WordTimestamp{Word: w.Word, Start: w.Start, End: w.End})
	}
	if tr.Duration == 0 && len(tr.Words) > 0 {
		tr.Duration = tr.Words[len(tr.Words)-1].End
	}
	if tr.Duration == 0 {
		if seconds, err := audio.WAVDuration(payload); err == nil {
			tr.Duration = seconds
		}
	}
	return tr, nil
}
