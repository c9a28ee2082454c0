// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for all audio encoders
package encode

import "github.com/khanhsoen/Gemini-voice-studio/pkg/audio"

// Encoder serializes normalized float buffers to encoded audio bytes
type Encoder interface {
	// Encode converts per-channel samples to encoded audio data
	Encode(buf *audio.Buffer) ([]byte, error)

	// Close releases encoder resources
	Close() error
}
