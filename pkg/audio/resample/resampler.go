// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Converts whole buffers between sample rates using linear interpolation
package resample

import "github.com/khanhsoen/Gemini-voice-studio/pkg/audio"

// Buffer resamples a whole buffer to the target rate using linear
// interpolation. Buffers already at the target rate return unchanged,
// sharing the underlying sample data.
func Buffer(buf *audio.Buffer, targetRate int) *audio.Buffer {
	if buf.SampleRate == targetRate || buf.SampleRate <= 0 || targetRate <= 0 {
		return buf
	}

	channels := buf.Channels()
	frames := buf.SampleCount()
	if channels == 0 || frames == 0 {
		return &audio.Buffer{Data: buf.Data, SampleRate: targetRate}
	}

	ratio := float64(buf.SampleRate) / float64(targetRate)
	outFrames := int(float64(frames)*float64(targetRate)/float64(buf.SampleRate) + 0.5)
	out := audio.NewBuffer(channels, outFrames, targetRate)

	for ch := 0; ch < channels; ch++ {
		src := buf.Data[ch]
		dst := out.Data[ch]
		for i := 0; i < outFrames; i++ {
			pos := float64(i) * ratio
			idx := int(pos)

			if idx >= frames-1 {
				dst[i] = src[frames-1]
				continue
			}

			frac := float32(pos - float64(idx))
			dst[i] = src[idx]*(1.0-frac) + src[idx+1]*frac
		}
	}

	return out
}
