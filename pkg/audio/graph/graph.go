// ABOUTME: Playback graph enforcing single-active-session semantics
// ABOUTME: Wires source through analyser and gain into the output sink
package graph

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio/analysis"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio/output"
)

// Graph owns the signal path source -> analyser -> gain -> sink. The
// analyser, gain and sink segment is stable for the process lifetime;
// only the source node is replaced between sessions, and at most one
// session holds the active slot at a time.
type Graph struct {
	mu       sync.Mutex
	sink     output.Sink
	analyser *analysis.Analyser
	active   *Session
	volume   int
	acquired bool
}

// NewGraph creates a playback graph over the given output sink.
func NewGraph(sink output.Sink) *Graph {
	return &Graph{
		sink:     sink,
		analyser: analysis.NewDefaultAnalyser(),
		volume:   100,
	}
}

// Analyser returns the graph's analysis node for spectrum sampling.
func (g *Graph) Analyser() *analysis.Analyser {
	return g.analyser
}

// Active returns the session currently holding the output, or nil.
func (g *Graph) Active() *Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// Start plays a buffer. Any active session is torn down synchronously
// before the new source connects, so two sources are never routed to
// the sink at once. The output device is acquired lazily on the first
// start, locked to that buffer's format, and resumed before every
// start; later buffers are conformed to the locked format.
func (g *Graph) Start(buf *audio.Buffer) (*Session, error) {
	if buf == nil || buf.Channels() == 0 || buf.SampleCount() == 0 {
		return nil, fmt.Errorf("cannot play empty buffer")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.stopLocked(EndSuperseded)

	if !g.acquired {
		if err := g.sink.Acquire(buf.SampleRate, buf.Channels()); err != nil {
			return nil, fmt.Errorf("failed to acquire output device: %w", err)
		}
		g.acquired = true
	}

	if err := g.sink.Resume(); err != nil {
		return nil, fmt.Errorf("failed to resume output device: %w", err)
	}

	conformed := conform(buf, g.sink.SampleRate(), g.sink.Channels())
	src := newSource(conformed, g.analyser, float64(g.volume)/100.0)

	stream, err := g.sink.Start(src)
	if err != nil {
		return nil, fmt.Errorf("failed to start playback: %w", err)
	}

	session := &Session{
		id:     uuid.New().String(),
		buffer: buf,
		state:  StatePlaying,
		done:   make(chan struct{}),
		source: src,
		stream: stream,
	}
	g.active = session

	go g.watch(session)

	log.Printf("Playback started: session=%s (%d samples at %dHz, %d channels)",
		session.id, buf.SampleCount(), buf.SampleRate, buf.Channels())

	return session, nil
}

// Stop halts the session if it is the active one. Stale handles are a
// benign race against natural completion, not an error: stopping an
// already-stopped or superseded session is a no-op.
func (g *Graph) Stop(s *Session) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if s == nil || g.active != s {
		return
	}
	g.active = nil
	s.halt(EndStopped)

	log.Printf("Playback stopped: session=%s", s.id)
}

// Toggle stops the session if it is active, otherwise starts its
// buffer again as a new session. Returns the new session, or nil when
// the call stopped playback.
func (g *Graph) Toggle(s *Session) (*Session, error) {
	if s == nil {
		return nil, fmt.Errorf("cannot toggle nil session")
	}

	g.mu.Lock()
	active := g.active == s
	g.mu.Unlock()

	if active {
		g.Stop(s)
		return nil, nil
	}
	return g.Start(s.Buffer())
}

// SetVolume sets the gain stage level (0-100). Takes effect on the
// active session immediately.
func (g *Graph) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}

	g.mu.Lock()
	g.volume = volume
	if g.active != nil {
		g.active.source.setGain(float64(volume) / 100.0)
	}
	g.mu.Unlock()

	log.Printf("Volume set to %d", volume)
}

// Volume returns the current gain stage level.
func (g *Graph) Volume() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.volume
}

// Close stops any active session and suspends the output device.
func (g *Graph) Close() error {
	g.mu.Lock()
	if g.active != nil {
		s := g.active
		g.active = nil
		s.halt(EndStopped)
	}
	g.mu.Unlock()

	return g.sink.Suspend()
}

// stopLocked tears down the active session. Caller holds g.mu.
func (g *Graph) stopLocked(reason EndReason) {
	s := g.active
	if s == nil {
		return
	}
	g.active = nil
	s.halt(reason)
}

// watch waits for the session's source to play through and fires the
// natural-end transition. It exits as soon as the session stops for
// any other reason.
func (g *Graph) watch(s *Session) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.Done():
			return
		case <-ticker.C:
			if !s.source.exhausted() || s.stream.Playing() {
				continue
			}

			g.mu.Lock()
			if g.active == s {
				g.active = nil
			}
			g.mu.Unlock()

			if s.finish(EndNatural) {
				s.stream.Close()
				log.Printf("Playback finished: session=%s", s.id)
			}
			return
		}
	}
}
