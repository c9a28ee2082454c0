// ABOUTME: Audio encoder package for playback and export serialization
// ABOUTME: Provides Encoder interface, PCM byte encoding, and WAV file export
// Package encode serializes normalized float buffers to audio bytes.
//
// Supports: interleaved 16-bit PCM and complete WAV files.
//
// The PCM encoder produces the raw byte stream consumed by playback
// devices and the streaming provider; EncodeWAV wraps the same sample
// layout in a canonical RIFF/WAVE container for export.
//
// Example:
//
//	encoder, err := encode.NewPCM(format)
//	data, err := encoder.Encode(buf)
//	wav, err := encode.EncodeWAV(buf)
package encode
