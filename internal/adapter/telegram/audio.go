package telegram

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/escalopa/quran-recite-api/internal/adapter/audio"
)

// downloadFile downloads a file from Telegram
func (b *Bot) downloadFile(fileURL string) ([]byte, error) {
	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// processVoiceMessage downloads and converts a Telegram voice message to WAV
func (b *Bot) processVoiceMessage(fileID string) (io.Reader, error) {
	// Get file info from Telegram
	fileConfig := tgbotapi.FileConfig{FileID: fileID}
	file, err := b.api.GetFile(fileConfig)
	if err != nil {
		return nil, fmt.Errorf("get file info: %w", err)
	}

	// Download OGG file
	fileURL := file.Link(b.api.Token)
	oggData, err := b.downloadFile(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}

	// Convert to WAV
	wavData, err := audio.ConvertToWAV(oggData)
	if err != nil {
		return nil, fmt.Errorf("convert audio: %w", err)
	}

	return bytes.NewReader(wavData), nil
}
