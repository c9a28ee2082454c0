// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes complete FLAC payloads to normalized float buffers
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio"
)

// FLACDecoder decodes FLAC payloads
type FLACDecoder struct{}

// NewFLAC creates a new FLAC decoder
func NewFLAC(format audio.Format) (Decoder, error) {
	if format.Codec != audio.CodecFLAC {
		return nil, fmt.Errorf("invalid codec for FLAC decoder: %s", format.Codec)
	}

	return &FLACDecoder{}, nil
}

// Decode converts a complete FLAC payload to float samples. Format
// parameters come from the stream info block, not the caller: FLAC
// carries its own rate, channel count, and bit depth.
func (d *FLACDecoder) Decode(data []byte) (*audio.Buffer, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open flac stream: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	scale := float64(int64(1) << (info.BitsPerSample - 1))

	perChannel := make([][]float32, channels)
	if info.NSamples > 0 {
		for ch := range perChannel {
			perChannel[ch] = make([]float32, 0, info.NSamples)
		}
	}

	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac decode failed: %w", err)
		}

		for i := 0; i < int(frame.BlockSize); i++ {
			for ch := 0; ch < channels; ch++ {
				sample := frame.Subframes[ch].Samples[i]
				perChannel[ch] = append(perChannel[ch], float32(float64(sample)/scale))
			}
		}
	}

	return &audio.Buffer{Data: perChannel, SampleRate: int(info.SampleRate)}, nil
}

// Close releases decoder resources
func (d *FLACDecoder) Close() error {
	return nil
}
