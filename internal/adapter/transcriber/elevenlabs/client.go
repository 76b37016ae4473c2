// Package elevenlabs implements the transcriber port on top of the ElevenLabs
// speech-to-text API, which returns word-level timestamps alongside the
// transcript text.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io/v1/speech-to-text"
	modelID        = "scribe_v1"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type wordResponse struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Type  string  `json:"type"`
}

type transcriptionResponse struct {
	Text         string         `json:"text"`
	LanguageCode string         `json:"language_code"`
	Words        []wordResponse `json:"words"`
}

// Transcribe uploads the audio as a multipart form and maps the response to
// the domain transcription shape. Timestamps are returned in seconds.
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, language string) (*domain.Transcription, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "recording.wav")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("copy audio: %w", err)
	}

	if err := writer.WriteField("model_id", modelID); err != nil {
		return nil, fmt.Errorf("write model_id field: %w", err)
	}
	if language != "" {
		if err := writer.WriteField("language_code", language); err != nil {
			return nil, fmt.Errorf("write language_code field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return mapTranscription(&result), nil
}

func mapTranscription(r *transcriptionResponse) *domain.Transcription {
	tr := &domain.Transcription{Text: r.Text}

	for _, w := range r.Words {
		// The API interleaves spacing and audio-event entries with words.
		if w.Type != "" && w.Type != "word" {
			continue
		}
		tr.Words = append(tr.Words, domain.WordTimestamp{
			Word:  w.Text,
			Start: w.Start,
			End:   w.End,
		})
	}

	if n := len(tr.Words); n > 0 {
		tr.Duration = tr.Words[n-1].End
	}

	return tr
}
