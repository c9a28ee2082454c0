// ABOUTME: PCM audio decoder
// ABOUTME: Decodes interleaved 16-bit PCM payloads to normalized float buffers
package decode

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio"
)

// ErrMalformedAudioData reports a payload whose byte length does not
// divide into whole frames.
var ErrMalformedAudioData = errors.New("malformed audio data")

// PCMDecoder decodes interleaved signed 16-bit little-endian PCM
type PCMDecoder struct {
	sampleRate int
	channels   int
}

// NewPCM creates a new PCM decoder
func NewPCM(format audio.Format) (Decoder, error) {
	if format.Codec != audio.CodecPCM16 {
		return nil, fmt.Errorf("invalid codec for PCM decoder: %s", format.Codec)
	}

	if format.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", format.SampleRate)
	}

	if format.Channels < 1 {
		return nil, fmt.Errorf("invalid channel count: %d", format.Channels)
	}

	return &PCMDecoder{
		sampleRate: format.SampleRate,
		channels:   format.Channels,
	}, nil
}

// Decode converts interleaved PCM bytes to per-channel float samples.
// The payload must contain whole frames: len(data) divisible by
// channels * 2 bytes. Frame f channel c lands at Data[c][f], preserving
// sample order within each channel.
func (d *PCMDecoder) Decode(data []byte) (*audio.Buffer, error) {
	frameSize := d.channels * 2
	if len(data)%frameSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes not divisible by frame size %d",
			ErrMalformedAudioData, len(data), frameSize)
	}

	frames := len(data) / frameSize
	buf := audio.NewBuffer(d.channels, frames, d.sampleRate)
	for f := 0; f < frames; f++ {
		base := f * frameSize
		for ch := 0; ch < d.channels; ch++ {
			sample := int16(binary.LittleEndian.Uint16(data[base+ch*2:]))
			buf.Data[ch][f] = audio.SampleToFloat(sample)
		}
	}

	return buf, nil
}

// Close releases resources
func (d *PCMDecoder) Close() error {
	return nil
}
