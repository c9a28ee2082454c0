// ABOUTME: Audio decoder package for multiple codec support
// ABOUTME: Provides Decoder interface and implementations for PCM, MP3, Opus, FLAC
// Package decode provides audio payload decoders for various codecs.
//
// Supports: PCM (16-bit interleaved), MP3, Ogg Opus, FLAC
//
// All decoders implement the Decoder interface and output normalized
// float buffers with one slice per channel, ready for the playback
// graph and the WAV exporter.
//
// Example:
//
//	decoder, err := decode.New(format)
//	buf, err := decoder.Decode(payload)
package decode
