// ABOUTME: Audio output package abstracting playback devices
// ABOUTME: Provides the Sink interface with oto and PortAudio backends
// Package output abstracts the audio playback device behind the Sink
// interface. A sink is acquired lazily with a fixed sample format and
// then starts streams that pull little-endian 16-bit PCM from an
// io.Reader until it is exhausted.
//
// The default backend wraps oto, which owns a single process-wide
// audio context: the format passed to the first Acquire call is locked
// for the lifetime of the process and later calls with a different
// format are ignored with a warning. A PortAudio backend is available
// behind the portaudio build tag.
//
// Example:
//
//	sink := output.NewOto()
//	err := sink.Acquire(24000, 1)
//	stream, err := sink.Start(pcmReader)
package output
