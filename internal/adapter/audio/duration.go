package audio

import (
	"bytes"
	"fmt"

	"github.com/go-audio/wav"
)

// WAVDuration returns the playback length of a WAV payload in seconds.
// Used as a fallback when the transcriber reports no duration.
func WAVDuration(data []byte) (float64, error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))
	if !decoder.IsValidFile() {
		return 0, fmt.Errorf("not a valid wav file")
	}

	d, err := decoder.Duration()
	if err != nil {
		return 0, fmt.Errorf("read wav duration: %w", err)
	}

	return d.Seconds(), nil
}
