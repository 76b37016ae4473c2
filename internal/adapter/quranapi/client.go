// Package quranapi fetches canonical ayah text from the alquran.cloud API.
package quranapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const defaultBaseURL = "https://api.alquran.cloud/v1"

// Client retrieves ayah text with diacritics. Fetched ayahs are cached in
// memory; the canonical text never changes.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	cache map[string]string
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: make(map[string]string),
	}
}

// GetAyahText returns the Arabic text of the given ayah.
func (c *Client) GetAyahText(ctx context.Context, surahNumber, ayahNumber int) (string, error) {
	key := fmt.Sprintf("%d:%d", surahNumber, ayahNumber)

	c.mu.RLock()
	text, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return text, nil
	}

	url := fmt.Sprintf("%s/ayah/%d:%d", c.baseURL, surahNumber, ayahNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data struct {
			Text string `json:"text"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if result.Data.Text == "" {
		return "", fmt.Errorf("empty ayah text for %s", key)
	}

	c.mu.Lock()
	c.cache[key] = result.Data.Text
	c.mu.Unlock()

	return result.Data.Text, nil
}
