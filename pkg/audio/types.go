// ABOUTME: Audio type definitions
// ABOUTME: Defines stream formats and normalized sample buffers
package audio

import (
	"math"
	"time"
)

// Codec identifiers for audio payloads as reported by TTS providers.
const (
	CodecPCM16 = "pcm16"
	CodecMP3   = "mp3"
	CodecOpus  = "opus"
	CodecFLAC  = "flac"
)

// Format describes an audio stream format
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
}

// Buffer represents decoded audio as normalized float samples.
// Data holds one slice per channel, all of equal length; samples are
// in [-1.0, 1.0]. A Buffer is never mutated after creation: playback
// and encoding share it read-only.
type Buffer struct {
	Data       [][]float32
	SampleRate int
}

// NewBuffer allocates a buffer with the given channel count and
// per-channel sample count.
func NewBuffer(channels, samples, sampleRate int) *Buffer {
	data := make([][]float32, channels)
	for ch := range data {
		data[ch] = make([]float32, samples)
	}
	return &Buffer{Data: data, SampleRate: sampleRate}
}

// Channels returns the number of channels
func (b *Buffer) Channels() int {
	return len(b.Data)
}

// SampleCount returns the number of samples per channel
func (b *Buffer) SampleCount() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Duration returns the playback duration derived from sample count and rate
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	seconds := float64(b.SampleCount()) / float64(b.SampleRate)
	return time.Duration(seconds * float64(time.Second))
}

// SampleToFloat converts a signed 16-bit sample to a normalized float.
// The full int16 range divides by 32768, so -32768 maps to exactly -1.0
// and 32767 falls just short of 1.0.
func SampleToFloat(sample int16) float32 {
	return float32(sample) / 32768.0
}

// SampleFromFloat converts a normalized float back to a signed 16-bit
// sample. Values are clamped to [-1.0, 1.0] first; negative values scale
// by 32768 and non-negative by 32767. The split keeps -1.0 at -32768 and
// 1.0 at 32767 without overflow, matching the decode scaling within one
// quantization step.
func SampleFromFloat(sample float32) int16 {
	if sample < -1.0 {
		sample = -1.0
	}
	if sample > 1.0 {
		sample = 1.0
	}
	if sample < 0 {
		return int16(math.Round(float64(sample) * 32768.0))
	}
	return int16(math.Round(float64(sample) * 32767.0))
}
