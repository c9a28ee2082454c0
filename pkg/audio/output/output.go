// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends
package output

import (
	"errors"
	"io"
)

// ErrDeviceUnavailable reports that the output device could not be
// created or resumed. Playback degrades to a no-op when this surfaces;
// the process keeps running.
var ErrDeviceUnavailable = errors.New("audio device unavailable")

// Sink is a playback output device. Implementations are process-scoped:
// the first successful Acquire fixes the output format for the process
// lifetime, and later calls reuse the device regardless of the format
// they ask for. Callers resample to SampleRate()/Channels() instead.
type Sink interface {
	// Acquire lazily initializes the device. Safe to call repeatedly.
	Acquire(sampleRate, channels int) error

	// SampleRate returns the locked output rate, 0 before first Acquire
	SampleRate() int

	// Channels returns the locked channel count, 0 before first Acquire
	Channels() int

	// Resume wakes the device from a suspended power state
	Resume() error

	// Suspend puts the device into a low-power state between sessions
	Suspend() error

	// Start begins consuming the reader's interleaved 16-bit PCM stream
	Start(r io.Reader) (Stream, error)
}

// Stream is one playing byte stream on a sink.
type Stream interface {
	// Pause halts consumption immediately
	Pause()

	// Playing reports whether the device is still consuming the stream
	Playing() bool

	// Buffered returns bytes queued on the device but not yet played
	Buffered() int

	// Close releases the stream
	Close() error
}
