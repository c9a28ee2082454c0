// ABOUTME: Decoder interface definition and codec dispatch
// ABOUTME: Common interface for all audio payload decoders
package decode

import (
	"fmt"

	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio"
)

// Decoder decodes a complete audio payload to normalized float samples
type Decoder interface {
	// Decode converts encoded audio data to per-channel samples
	Decode(data []byte) (*audio.Buffer, error)

	// Close releases decoder resources
	Close() error
}

// New creates a decoder for the format's codec
func New(format audio.Format) (Decoder, error) {
	switch format.Codec {
	case audio.CodecPCM16:
		return NewPCM(format)
	case audio.CodecMP3:
		return NewMP3(format)
	case audio.CodecOpus:
		return NewOpus(format)
	case audio.CodecFLAC:
		return NewFLAC(format)
	default:
		return nil, fmt.Errorf("unsupported codec: %s", format.Codec)
	}
}
