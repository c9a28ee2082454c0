// ABOUTME: PCM audio encoder
// ABOUTME: Encodes float buffers to interleaved 16-bit PCM bytes
package encode

import (
	"encoding/binary"
	"fmt"

	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio"
)

// PCMEncoder encodes interleaved signed 16-bit little-endian PCM
type PCMEncoder struct{}

// NewPCM creates a new PCM encoder
func NewPCM(format audio.Format) (Encoder, error) {
	if format.Codec != audio.CodecPCM16 {
		return nil, fmt.Errorf("invalid codec for PCM encoder: %s", format.Codec)
	}

	return &PCMEncoder{}, nil
}

// Encode converts per-channel float samples to interleaved PCM bytes.
// Samples clamp to [-1.0, 1.0] before quantization.
func (e *PCMEncoder) Encode(buf *audio.Buffer) ([]byte, error) {
	if buf == nil {
		return []byte{}, nil
	}

	channels := buf.Channels()
	frames := buf.SampleCount()
	output := make([]byte, frames*channels*2)
	for f := 0; f < frames; f++ {
		base := f * channels * 2
		for ch := 0; ch < channels; ch++ {
			sample := audio.SampleFromFloat(buf.Data[ch][f])
			binary.LittleEndian.PutUint16(output[base+ch*2:], uint16(sample))
		}
	}

	return output, nil
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}
