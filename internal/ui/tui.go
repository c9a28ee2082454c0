// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program and pumps spectrum frames into it
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/khanhsoen/Gemini-voice-studio/internal/studio"
)

// Run starts the studio TUI and blocks until the user quits. Spectrum
// frames from the studio sampler are pumped into the program so the
// display updates while audio plays.
func Run(s *studio.Studio) error {
	p := tea.NewProgram(New(s), tea.WithAltScreen())

	quit := make(chan struct{})
	go func() {
		for {
			select {
			case frame := <-s.Frames():
				p.Send(frameMsg(frame))
			case <-quit:
				return
			}
		}
	}()

	_, err := p.Run()
	close(quit)
	return err
}
