// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes complete MP3 payloads to normalized float buffers
package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"

	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio"
)

// MP3Decoder decodes MP3 payloads
type MP3Decoder struct{}

// NewMP3 creates a new MP3 decoder
func NewMP3(format audio.Format) (Decoder, error) {
	if format.Codec != audio.CodecMP3 {
		return nil, fmt.Errorf("invalid codec for MP3 decoder: %s", format.Codec)
	}

	return &MP3Decoder{}, nil
}

// Decode converts a complete MP3 payload to float samples. The decoder
// outputs stereo 16-bit PCM at the stream's native rate regardless of
// the source channel layout.
func (d *MP3Decoder) Decode(data []byte) (*audio.Buffer, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	const channels = 2 // go-mp3 always outputs stereo
	frameSize := channels * 2
	frames := len(pcm) / frameSize
	buf := audio.NewBuffer(channels, frames, dec.SampleRate())
	for f := 0; f < frames; f++ {
		base := f * frameSize
		for ch := 0; ch < channels; ch++ {
			sample := int16(binary.LittleEndian.Uint16(pcm[base+ch*2:]))
			buf.Data[ch][f] = audio.SampleToFloat(sample)
		}
	}

	return buf, nil
}

// Close releases decoder resources
func (d *MP3Decoder) Close() error {
	return nil
}
