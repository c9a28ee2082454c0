// ABOUTME: Per-session source node feeding the output pull chain
// ABOUTME: Serializes float samples to s16le with analyser tap and gain
package graph

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio/analysis"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio/resample"
)

// source is the per-session node at the head of the signal path. The
// output stream pulls from it; each read taps the analyser with the
// mono mix of the samples it is about to emit (pre-gain, so volume
// changes do not move the spectrum) and then serializes them as
// little-endian 16-bit PCM scaled by the gain stage.
type source struct {
	mu       sync.Mutex
	data     [][]float32
	channels int
	pos      int
	gain     float64
	analyser *analysis.Analyser
}

func newSource(buf *audio.Buffer, analyser *analysis.Analyser, gain float64) *source {
	return &source{
		data:     buf.Data,
		channels: buf.Channels(),
		gain:     gain,
		analyser: analyser,
	}
}

func (s *source) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.data[0])
	if s.pos >= total {
		return 0, io.EOF
	}

	frameSize := s.channels * 2
	n := total - s.pos
	if max := len(p) / frameSize; n > max {
		n = max
	}
	if n == 0 {
		return 0, nil
	}

	mono := make([]float32, n)
	for i := 0; i < n; i++ {
		var sum float32
		for ch := 0; ch < s.channels; ch++ {
			sum += s.data[ch][s.pos+i]
		}
		mono[i] = sum / float32(s.channels)
	}
	s.analyser.Push(mono)

	for i := 0; i < n; i++ {
		base := i * frameSize
		for ch := 0; ch < s.channels; ch++ {
			scaled := float32(float64(s.data[ch][s.pos+i]) * s.gain)
			sample := audio.SampleFromFloat(scaled)
			binary.LittleEndian.PutUint16(p[base+ch*2:], uint16(sample))
		}
	}

	s.pos += n
	return n * frameSize, nil
}

// exhausted reports whether every sample has been read.
func (s *source) exhausted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos >= len(s.data[0])
}

// setGain adjusts the gain applied to subsequent reads.
func (s *source) setGain(gain float64) {
	s.mu.Lock()
	s.gain = gain
	s.mu.Unlock()
}

// conform adapts a buffer to the output device format: resampling when
// the rates differ and remapping the channel layout when the counts
// differ (mono is duplicated outward, extra channels are mixed down).
func conform(buf *audio.Buffer, sampleRate, channels int) *audio.Buffer {
	out := resample.Buffer(buf, sampleRate)
	if out.Channels() == channels || channels < 1 {
		return out
	}

	mapped := audio.NewBuffer(channels, out.SampleCount(), out.SampleRate)
	switch {
	case out.Channels() == 1:
		for ch := 0; ch < channels; ch++ {
			copy(mapped.Data[ch], out.Data[0])
		}
	case channels == 1:
		for i := 0; i < out.SampleCount(); i++ {
			var sum float32
			for ch := 0; ch < out.Channels(); ch++ {
				sum += out.Data[ch][i]
			}
			mapped.Data[0][i] = sum / float32(out.Channels())
		}
	default:
		for ch := 0; ch < channels; ch++ {
			copy(mapped.Data[ch], out.Data[ch%out.Channels()])
		}
	}

	return mapped
}
