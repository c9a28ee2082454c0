// ABOUTME: Oto-based audio output implementation
// ABOUTME: Wraps the process-wide oto context and its stream players
package output

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Oto is the default output backend. oto allows exactly one context per
// process, so only one Oto sink should exist; the first Acquire creates
// the context and locks its format.
type Oto struct {
	mu         sync.Mutex
	ctx        *oto.Context
	sampleRate int
	channels   int
}

// NewOto creates a new oto output sink
func NewOto() Sink {
	return &Oto{}
}

// Acquire initializes the oto context on first call. Later calls reuse
// the existing context: oto cannot reinitialize, so a differing format
// is logged and ignored.
func (o *Oto) Acquire(sampleRate, channels int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ctx != nil {
		if o.sampleRate != sampleRate || o.channels != channels {
			log.Printf("Audio output format locked at %dHz %dch; ignoring request for %dHz %dch",
				o.sampleRate, o.channels, sampleRate, channels)
		}
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("%w: failed to create oto context: %v", ErrDeviceUnavailable, err)
	}

	<-readyChan

	o.ctx = ctx
	o.sampleRate = sampleRate
	o.channels = channels

	log.Printf("Audio output initialized: %dHz, %d channels", sampleRate, channels)

	return nil
}

// SampleRate returns the locked output rate
func (o *Oto) SampleRate() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sampleRate
}

// Channels returns the locked channel count
func (o *Oto) Channels() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.channels
}

// Resume wakes the device
func (o *Oto) Resume() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ctx == nil {
		return fmt.Errorf("%w: not acquired", ErrDeviceUnavailable)
	}

	if err := o.ctx.Resume(); err != nil {
		return fmt.Errorf("%w: resume failed: %v", ErrDeviceUnavailable, err)
	}

	return nil
}

// Suspend puts the device into a low-power state
func (o *Oto) Suspend() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ctx == nil {
		return nil
	}

	return o.ctx.Suspend()
}

// Start attaches a player to the reader and begins playback
func (o *Oto) Start(r io.Reader) (Stream, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ctx == nil {
		return nil, fmt.Errorf("%w: not acquired", ErrDeviceUnavailable)
	}

	player := o.ctx.NewPlayer(r)
	player.Play()

	return &otoStream{player: player}, nil
}

// otoStream wraps one oto player
type otoStream struct {
	player *oto.Player
}

func (s *otoStream) Pause() {
	s.player.Pause()
}

func (s *otoStream) Playing() bool {
	return s.player.IsPlaying()
}

func (s *otoStream) Buffered() int {
	return s.player.BufferedSize()
}

func (s *otoStream) Close() error {
	return s.player.Close()
}
