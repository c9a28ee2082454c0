// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Buffer types and sample conversion functions
// Package audio provides fundamental audio types and utilities for the
// voice studio pipeline.
//
// This package defines core types used throughout the library:
//   - Format: Describes an audio stream (codec, sample rate, channels)
//   - Buffer: Decoded audio as normalized per-channel float samples
//
// It also provides the int16 ↔ float conversions shared by the decoder
// and the WAV encoder. The scaling is intentionally asymmetric: decoding
// divides by 32768 while encoding splits 32768/32767 between negative and
// non-negative values, which keeps exported bytes compatible with the
// reference behavior.
//
// Example:
//
//	buf := audio.NewBuffer(1, 24000, 24000) // one second of mono silence
//	d := buf.Duration()                      // 1s
package audio
