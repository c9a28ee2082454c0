// ABOUTME: Bubbletea model for the voice studio TUI
// ABOUTME: Text input, voice selection, spectrum display and history controls
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/khanhsoen/Gemini-voice-studio/internal/studio"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio/analysis"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio/graph"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/tts"
)

const (
	historyRows   = 8
	spectrumWidth = 64
	generateLimit = 2 * time.Minute
)

// focusArea tracks which pane receives plain keystrokes.
type focusArea int

const (
	focusInput focusArea = iota
	focusHistory
)

// Model represents the TUI state
type Model struct {
	studio *studio.Studio

	// Components
	textarea textarea.Model
	spinner  spinner.Model

	// Focus and lifecycle
	focus      focusArea
	generating bool
	quitting   bool

	// Voice selection
	voices     []tts.Voice
	voiceIndex int

	// History
	entries  []*studio.Generation
	selected int

	// Playback
	playingID string
	volume    int

	// Spectrum
	frame analysis.Frame

	// Transient notice shown above the help line
	status string

	// Dimensions
	width  int
	height int
}

// frameMsg carries one spectrum frame from the sampler pump.
type frameMsg analysis.Frame

// generationMsg reports a finished synthesis call.
type generationMsg struct {
	gen *studio.Generation
	err error
}

// playbackEndedMsg reports that a playback session closed.
type playbackEndedMsg struct {
	id string
}

// New creates the studio TUI model.
func New(s *studio.Studio) Model {
	ta := textarea.New()
	ta.Placeholder = "Type something to speak, then press enter..."
	ta.Focus()
	ta.CharLimit = 2000
	ta.SetWidth(spectrumWidth)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	voices := s.Voices()
	voiceIndex := 0
	for i, v := range voices {
		if v.Name == s.Voice() {
			voiceIndex = i
			break
		}
	}

	return Model{
		studio:     s,
		textarea:   ta,
		spinner:    sp,
		focus:      focusInput,
		voices:     voices,
		voiceIndex: voiceIndex,
		entries:    s.History().Items(),
		volume:     s.Volume(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width - 4
		if w > spectrumWidth {
			w = spectrumWidth
		}
		if w > 0 {
			m.textarea.SetWidth(w)
		}

	case frameMsg:
		m.frame = analysis.Frame(msg)

	case generationMsg:
		return m.applyGeneration(msg)

	case playbackEndedMsg:
		if m.playingID == msg.id {
			m.playingID = ""
		}

	case spinner.TickMsg:
		if m.generating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		return m.toggleFocus()
	case "ctrl+o":
		m.cycleVoice()
		return m, nil
	}

	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleHistoryKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.startGeneration()
	case "esc":
		return m.toggleFocus()
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "i", "esc":
		return m.toggleFocus()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.entries)-1 {
			m.selected++
		}
	case "enter", " ", "p":
		return m.toggleSelected()
	case "e":
		m.exportSelected()
	case "s":
		m.studio.Stop()
		m.playingID = ""
	case "v":
		m.cycleVoice()
	case "+", "=":
		if m.volume < 100 {
			m.volume += 5
			if m.volume > 100 {
				m.volume = 100
			}
		}
		m.studio.SetVolume(m.volume)
	case "-", "_":
		if m.volume > 0 {
			m.volume -= 5
			if m.volume < 0 {
				m.volume = 0
			}
		}
		m.studio.SetVolume(m.volume)
	}

	return m, nil
}

func (m Model) toggleFocus() (Model, tea.Cmd) {
	if m.focus == focusInput {
		m.focus = focusHistory
		m.textarea.Blur()
		return m, nil
	}

	m.focus = focusInput
	m.textarea.Focus()
	return m, textarea.Blink
}

func (m *Model) cycleVoice() {
	if len(m.voices) == 0 {
		return
	}
	m.voiceIndex = (m.voiceIndex + 1) % len(m.voices)
	if err := m.studio.SetVoice(m.voices[m.voiceIndex].Name); err != nil {
		m.status = err.Error()
	}
}

// startGeneration kicks off synthesis for the textarea contents.
func (m Model) startGeneration() (Model, tea.Cmd) {
	if m.generating {
		return m, nil
	}

	text := strings.TrimSpace(m.textarea.Value())
	if text == "" {
		return m, nil
	}

	m.generating = true
	m.status = ""
	m.textarea.Reset()

	s := m.studio
	generate := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateLimit)
		defer cancel()

		gen, err := s.Generate(ctx, text)
		return generationMsg{gen: gen, err: err}
	}

	return m, tea.Batch(m.spinner.Tick, generate)
}

// applyGeneration records the result and auto-plays successful audio.
func (m Model) applyGeneration(msg generationMsg) (Model, tea.Cmd) {
	m.generating = false
	m.entries = m.studio.History().Items()
	m.selected = 0

	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}

	m.status = fmt.Sprintf("Generated %.1fs of audio (%s)",
		msg.gen.Duration().Seconds(), msg.gen.Voice)

	session, err := m.studio.Play(msg.gen)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	m.playingID = msg.gen.ID
	return m, waitForEnd(session, msg.gen.ID)
}

// toggleSelected plays the selected entry, or stops it if already playing.
func (m Model) toggleSelected() (Model, tea.Cmd) {
	if m.selected >= len(m.entries) {
		return m, nil
	}
	gen := m.entries[m.selected]

	session, err := m.studio.Toggle(gen)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	if session == nil {
		m.playingID = ""
		return m, nil
	}

	m.playingID = gen.ID
	return m, waitForEnd(session, gen.ID)
}

func (m *Model) exportSelected() {
	if m.selected >= len(m.entries) {
		return
	}

	path, err := m.studio.Export(m.entries[m.selected])
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("Exported %s", path)
}

// waitForEnd resolves once the playback session closes.
func waitForEnd(session *graph.Session, id string) tea.Cmd {
	return func() tea.Msg {
		<-session.Done()
		return playbackEndedMsg{id: id}
	}
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	noticeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	helpStyle := lipgloss.NewStyle().Faint(true)

	var b strings.Builder

	b.WriteString(titleStyle.Render("Voice Studio"))
	b.WriteString("\n\n")

	voice := m.voices[m.voiceIndex]
	b.WriteString(labelStyle.Render("Voice:  "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%s (%s)", voice.Name, voice.Description)))
	b.WriteString("    ")
	b.WriteString(labelStyle.Render("Volume: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("[%s] %d%%", renderBar(m.volume, 100, 10), m.volume)))
	b.WriteString("\n\n")

	b.WriteString(renderSpectrum(m.frame, spectrumWidth))
	b.WriteString("\n\n")

	if m.generating {
		b.WriteString(m.spinner.View())
		b.WriteString(" Generating...")
		b.WriteString("\n")
	} else {
		b.WriteString(m.textarea.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("History"))
	b.WriteString("\n")
	b.WriteString(m.renderHistory())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(noticeStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.helpLine()))
	b.WriteString("\n")

	return b.String()
}

// renderHistory renders recent generations, newest first
func (m Model) renderHistory() string {
	if len(m.entries) == 0 {
		return "  (nothing generated yet)\n"
	}

	s := ""
	for i, gen := range m.entries {
		if i >= historyRows {
			s += fmt.Sprintf("  ... %d more\n", len(m.entries)-historyRows)
			break
		}

		cursor := "  "
		if m.focus == focusHistory && i == m.selected {
			cursor = "> "
		}

		marker := " "
		switch {
		case gen.Failed():
			marker = "✗"
		case gen.ID == m.playingID:
			marker = "▶"
		}

		s += fmt.Sprintf("%s%s %-8s %5.1fs  %s\n",
			cursor, marker, gen.Voice, gen.Duration().Seconds(), truncate(gen.Text, 40))
	}

	return s
}

// helpLine renders keyboard shortcuts for the focused pane
func (m Model) helpLine() string {
	if m.focus == focusInput {
		return "enter: generate  tab: history  ctrl+o: voice  ctrl+c: quit"
	}
	return "↑/↓: select  enter: play/stop  e: export  s: stop  v: voice  +/-: volume  tab: input  q: quit"
}

// Utility functions
var spectrumGlyphs = []rune("▁▂▃▄▅▆▇█")

// renderSpectrum downsamples a frame onto width columns, one glyph per
// column holding the peak of its bin range.
func renderSpectrum(frame analysis.Frame, width int) string {
	if width < 1 {
		width = 1
	}
	if len(frame) == 0 {
		return strings.Repeat(string(spectrumGlyphs[0]), width)
	}

	bars := make([]rune, width)
	for i := range bars {
		lo := i * len(frame) / width
		hi := (i + 1) * len(frame) / width
		if hi <= lo {
			hi = lo + 1
		}

		peak := byte(0)
		for _, v := range frame[lo:hi] {
			if v > peak {
				peak = v
			}
		}
		bars[i] = spectrumGlyphs[int(peak)*(len(spectrumGlyphs)-1)/255]
	}

	return string(bars)
}

func renderBar(value, max, width int) string {
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
