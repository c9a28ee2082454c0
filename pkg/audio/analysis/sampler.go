// ABOUTME: Spectrum sampler pulling analyser frames at a bounded cadence
// ABOUTME: Cancellable ticker goroutine feeding a non-blocking frame channel
package analysis

import (
	"context"
	"sync"
	"time"
)

// DefaultFrameRate is the sampling cadence when none is configured.
const DefaultFrameRate = 30

// Sampler pulls spectrum frames from an Analyser at a bounded cadence
// while playback is active. Frames fan out through a small channel with
// drop-on-full semantics: a slow consumer never stalls the tick loop.
//
// HoldLastFrame controls what Stop leaves behind: by default the
// analyser resets and a flat frame is emitted; when set, the final
// spectrum stays on screen.
type Sampler struct {
	HoldLastFrame bool

	analyser *Analyser
	interval time.Duration
	frames   chan Frame

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSampler creates a sampler reading from the analyser at the given
// frame rate. Rates below 1 fall back to DefaultFrameRate.
func NewSampler(analyser *Analyser, frameRate int) *Sampler {
	if frameRate < 1 {
		frameRate = DefaultFrameRate
	}

	return &Sampler{
		analyser: analyser,
		interval: time.Second / time.Duration(frameRate),
		frames:   make(chan Frame, 1),
	}
}

// Frames returns the channel spectrum frames arrive on.
func (s *Sampler) Frames() <-chan Frame {
	return s.frames
}

// Start begins the sampling loop. Starting an already running sampler
// is a no-op.
func (s *Sampler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop cancels the sampling loop. Unless HoldLastFrame is set, the
// analyser resets and a single flat frame is emitted so consumers see
// the spectrum clear. Stopping an idle sampler is a no-op.
func (s *Sampler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel == nil {
		return
	}

	s.cancel()
	s.cancel = nil
	s.wg.Wait()

	if s.HoldLastFrame {
		return
	}

	s.analyser.Reset()

	// Replace any pending frame with the flat one
	select {
	case <-s.frames:
	default:
	}
	select {
	case s.frames <- s.analyser.ByteFrequencyData():
	default:
	}
}

func (s *Sampler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			frame := s.analyser.ByteFrequencyData()
			select {
			case s.frames <- frame:
			default:
			}
		case <-ctx.Done():
			return
		}
	}
}
