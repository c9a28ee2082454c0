// ABOUTME: WAV file encoder
// ABOUTME: Serializes float buffers to canonical RIFF/WAVE files with 16-bit PCM data
package encode

import (
	"encoding/binary"
	"errors"

	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio"
)

// ErrEmptyBuffer reports an export attempt on a buffer with no samples.
var ErrEmptyBuffer = errors.New("empty audio buffer")

// EncodeWAV serializes a buffer to a complete WAV file: a canonical
// 44-byte header followed by interleaved 16-bit little-endian PCM.
// The header carries the buffer's own sample rate and channel count,
// so the total size is always 44 + frames*channels*2 bytes.
func EncodeWAV(buf *audio.Buffer) ([]byte, error) {
	if buf == nil || buf.Channels() == 0 || buf.SampleCount() == 0 {
		return nil, ErrEmptyBuffer
	}

	channels := buf.Channels()
	frames := buf.SampleCount()
	blockAlign := channels * 2
	byteRate := buf.SampleRate * blockAlign
	dataSize := frames * blockAlign

	pcm, err := NewPCM(audio.Format{
		Codec:      audio.CodecPCM16,
		SampleRate: buf.SampleRate,
		Channels:   channels,
	})
	if err != nil {
		return nil, err
	}
	defer pcm.Close()

	body, err := pcm.Encode(buf)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 44, 44+dataSize)
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+dataSize))
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(out[20:22], 1)  // PCM format tag
	binary.LittleEndian.PutUint16(out[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(buf.SampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], 16) // bits per sample

	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(dataSize))

	return append(out, body...), nil
}
