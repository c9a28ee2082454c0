//go:build !portaudio

// ABOUTME: PortAudio stub for builds without PortAudio support
// ABOUTME: Returns errors when PortAudio output is requested
package output

import (
	"fmt"
	"io"
)

// PortAudio stub when built without portaudio tag
type PortAudio struct{}

// NewPortAudio creates a stub that always fails
func NewPortAudio() Sink {
	return &PortAudio{}
}

func (p *PortAudio) Acquire(sampleRate, channels int) error {
	return fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}

func (p *PortAudio) SampleRate() int {
	return 0
}

func (p *PortAudio) Channels() int {
	return 0
}

func (p *PortAudio) Resume() error {
	return fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}

func (p *PortAudio) Suspend() error {
	return fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}

func (p *PortAudio) Start(r io.Reader) (Stream, error) {
	return nil, fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}
