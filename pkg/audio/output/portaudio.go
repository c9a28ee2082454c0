//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Cross-platform audio output using PortAudio
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// PortAudio output implementation
type PortAudio struct {
	mu         sync.Mutex
	sampleRate int
	channels   int
	ready      bool
}

// NewPortAudio creates a new PortAudio output sink
func NewPortAudio() Sink {
	return &PortAudio{}
}

// Acquire initializes PortAudio on first call
func (p *PortAudio) Acquire(sampleRate, channels int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: failed to initialize portaudio: %v", ErrDeviceUnavailable, err)
	}

	p.sampleRate = sampleRate
	p.channels = channels
	p.ready = true
	return nil
}

// SampleRate returns the locked output rate
func (p *PortAudio) SampleRate() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sampleRate
}

// Channels returns the locked channel count
func (p *PortAudio) Channels() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channels
}

// Resume is a no-op: PortAudio streams have no suspended power state
func (p *PortAudio) Resume() error {
	return nil
}

// Suspend is a no-op for PortAudio
func (p *PortAudio) Suspend() error {
	return nil
}

// Start opens a callback stream pulling PCM bytes from the reader
func (p *PortAudio) Start(r io.Reader) (Stream, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return nil, fmt.Errorf("%w: not acquired", ErrDeviceUnavailable)
	}

	s := &paStream{r: r, playing: true}

	stream, err := portaudio.OpenDefaultStream(0, p.channels, float64(p.sampleRate), 0, s.fill)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open stream: %v", ErrDeviceUnavailable, err)
	}
	s.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("%w: failed to start stream: %v", ErrDeviceUnavailable, err)
	}

	return s, nil
}

// paStream is one playing PortAudio callback stream
type paStream struct {
	mu      sync.Mutex
	stream  *portaudio.Stream
	r       io.Reader
	playing bool
}

// fill is the PortAudio callback: it pulls bytes from the reader and
// pads with silence once the source is exhausted.
func (s *paStream) fill(out []int16) {
	buf := make([]byte, len(out)*2)
	n, err := io.ReadFull(s.r, buf)

	for i := 0; i < n/2; i++ {
		out[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
	}
	for i := n / 2; i < len(out); i++ {
		out[i] = 0
	}

	if err != nil {
		s.mu.Lock()
		s.playing = false
		s.mu.Unlock()
	}
}

func (s *paStream) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playing {
		s.stream.Stop()
		s.playing = false
	}
}

func (s *paStream) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *paStream) Buffered() int {
	return 0
}

func (s *paStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.playing = false
	return s.stream.Close()
}
