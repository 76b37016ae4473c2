// Package audio converts voice recordings into the 16kHz mono WAV that
// speech-to-text backends expect.
package audio

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// ConvertToWAV converts compressed audio (OGG/Opus from Telegram voice notes)
// to 16kHz mono WAV using ffmpeg.
func ConvertToWAV(data []byte) ([]byte, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found: %w", err)
	}

	inFile, err := os.CreateTemp("", "recitation-*.ogg")
	if err != nil {
		return nil, fmt.Errorf("create temp input file: %w", err)
	}
	inPath := inFile.Name()

	outFile, err := os.CreateTemp("", "recitation-*.wav")
	if err != nil {
		inFile.Close()
		os.Remove(inPath)
		return nil, fmt.Errorf("create temp output file: %w", err)
	}
	outPath := outFile.Name()
	outFile.Close() // ffmpeg writes to it

	defer func() {
		os.Remove(inPath)
		os.Remove(outPath)
	}()

	if _, err := inFile.Write(data); err != nil {
		inFile.Close()
		return nil, fmt.Errorf("write input data: %w", err)
	}
	if err := inFile.Close(); err != nil {
		return nil, fmt.Errorf("close input file: %w", err)
	}

	// 16kHz mono is what speech models expect.
	cmd := exec.Command("ffmpeg",
		"-i", inPath,
		"-ar", "16000",
		"-ac", "1",
		"-y",
		outPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg conversion failed: %w (%s)", err, stderr.String())
	}

	wavData, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read converted file: %w", err)
	}

	return wavData, nil
}
