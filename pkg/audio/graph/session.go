// ABOUTME: Playback session handle with terminal state tracking
// ABOUTME: One session per started buffer; Done resolves exactly once
package graph

import (
	"sync"

	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio/output"
)

// State is a session's lifecycle phase.
type State string

const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
	StateStopped State = "stopped"
)

// EndReason records how a stopped session ended.
type EndReason string

const (
	// EndNatural means the source played through to the end.
	EndNatural EndReason = "natural"
	// EndStopped means the session was halted by an explicit stop.
	EndStopped EndReason = "stopped"
	// EndSuperseded means a newer start displaced the session.
	EndSuperseded EndReason = "superseded"
)

// Session is the handle for one playback of one buffer. Sessions move
// Idle -> Playing -> Stopped and never leave Stopped; starting the same
// buffer again creates a new session.
type Session struct {
	id     string
	buffer *audio.Buffer

	mu        sync.Mutex
	state     State
	endReason EndReason
	done      chan struct{}

	source *source
	stream output.Stream
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Buffer returns the audio this session plays.
func (s *Session) Buffer() *audio.Buffer {
	return s.buffer
}

// State returns the session's current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Playing reports whether the session currently holds the output.
func (s *Session) Playing() bool {
	return s.State() == StatePlaying
}

// Done returns a channel closed exactly once when the session stops,
// whether it ends naturally, is stopped, or is superseded.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// EndReason returns how the session ended; empty until stopped.
func (s *Session) EndReason() EndReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endReason
}

// finish moves the session to Stopped and closes done. It reports
// whether this call performed the transition; later calls are no-ops.
func (s *Session) finish(reason EndReason) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateStopped {
		return false
	}
	s.state = StateStopped
	s.endReason = reason
	close(s.done)
	return true
}

// halt finishes the session and releases its output stream.
func (s *Session) halt(reason EndReason) {
	if !s.finish(reason) {
		return
	}
	if s.stream != nil {
		s.stream.Close()
	}
}
