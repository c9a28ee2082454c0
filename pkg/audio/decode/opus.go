// ABOUTME: Opus audio decoder
// ABOUTME: Decodes Ogg Opus payloads to normalized float buffers
package decode

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/hraban/opus.v2"

	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio"
)

// OpusDecoder decodes Ogg-encapsulated Opus payloads
type OpusDecoder struct {
	format audio.Format
}

// NewOpus creates a new Opus decoder
func NewOpus(format audio.Format) (Decoder, error) {
	if format.Codec != audio.CodecOpus {
		return nil, fmt.Errorf("invalid codec for Opus decoder: %s", format.Codec)
	}

	if format.Channels != 1 && format.Channels != 2 {
		return nil, fmt.Errorf("unsupported channel count: %d (supported: 1, 2)", format.Channels)
	}

	return &OpusDecoder{format: format}, nil
}

// Decode converts an Ogg Opus payload to float samples. Opus always
// decodes at 48kHz; the stream reader yields interleaved int16 frames.
func (d *OpusDecoder) Decode(data []byte) (*audio.Buffer, error) {
	stream, err := opus.NewStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open opus stream: %w", err)
	}
	defer stream.Close()

	channels := d.format.Channels
	pcm := make([]int16, 5760*channels) // max frame size per channel
	perChannel := make([][]float32, channels)

	for {
		n, err := stream.Read(pcm)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("opus decode failed: %w", err)
		}

		for f := 0; f < n; f++ {
			for ch := 0; ch < channels; ch++ {
				sample := pcm[f*channels+ch]
				perChannel[ch] = append(perChannel[ch], audio.SampleToFloat(sample))
			}
		}
	}

	return &audio.Buffer{Data: perChannel, SampleRate: 48000}, nil
}

// Close releases decoder resources
func (d *OpusDecoder) Close() error {
	return nil
}
