// ABOUTME: Tests for TUI model state transitions and rendering helpers
// ABOUTME: Drives Update and handleKey directly, no terminal required
package ui

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/khanhsoen/Gemini-voice-studio/internal/studio"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio/analysis"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio/output"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/tts"
)

type fakeSynth struct {
	payload *tts.Payload
	err     error
}

func (f *fakeSynth) Synthesize(ctx context.Context, req tts.Request) (*tts.Payload, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

type fakeSink struct {
	mu         sync.Mutex
	sampleRate int
	channels   int
}

func (f *fakeSink) Acquire(sampleRate, channels int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sampleRate == 0 {
		f.sampleRate = sampleRate
		f.channels = channels
	}
	return nil
}

func (f *fakeSink) SampleRate() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sampleRate
}

func (f *fakeSink) Channels() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.channels
}

func (f *fakeSink) Resume() error  { return nil }
func (f *fakeSink) Suspend() error { return nil }

func (f *fakeSink) Start(r io.Reader) (output.Stream, error) {
	return &fakeStream{playing: true}, nil
}

type fakeStream struct {
	mu      sync.Mutex
	playing bool
}

func (s *fakeStream) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
}

func (s *fakeStream) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *fakeStream) Buffered() int { return 0 }

func (s *fakeStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
	return nil
}

func pcmPayload(samples []int16, rate int) *tts.Payload {
	raw := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(s))
	}
	return &tts.Payload{
		AudioBase64: base64.StdEncoding.EncodeToString(raw),
		MIMEType:    fmt.Sprintf("audio/L16;codec=pcm;rate=%d", rate),
		SampleRate:  rate,
		Channels:    1,
	}
}

func newTestModel(t *testing.T, synth tts.Synthesizer) Model {
	t.Helper()

	s, err := studio.New(studio.Config{
		Synthesizer: synth,
		Sink:        &fakeSink{},
		ExportDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("failed to create studio: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return New(s)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// generateOne types text, presses enter and feeds the resulting
// generation message back through Update.
func generateOne(t *testing.T, m Model, text string) Model {
	t.Helper()

	m.textarea.SetValue(text)
	next, cmd := m.handleKey(keyMsg("enter"))
	if !next.generating {
		t.Fatalf("expected generating state after enter")
	}
	if cmd == nil {
		t.Fatalf("expected generation command")
	}

	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected batch command, got %T", msg)
	}

	var result tea.Msg
	for _, c := range batch {
		if gm, ok := c().(generationMsg); ok {
			result = gm
		}
	}
	if result == nil {
		t.Fatalf("batch did not produce a generation result")
	}

	updated, _ := next.Update(result)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", updated)
	}
	return model
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t, &fakeSynth{payload: pcmPayload([]int16{0}, 24000)})

	if m.focus != focusInput {
		t.Error("expected input focus initially")
	}
	if !m.textarea.Focused() {
		t.Error("expected textarea to be focused")
	}
	if m.generating {
		t.Error("expected generating to be false initially")
	}
	if m.volume != 100 {
		t.Errorf("expected default volume 100, got %d", m.volume)
	}
	if len(m.voices) == 0 {
		t.Fatal("expected voice catalog to be populated")
	}
	if m.voices[m.voiceIndex].Name != tts.DefaultVoice {
		t.Errorf("expected initial voice %s, got %s", tts.DefaultVoice, m.voices[m.voiceIndex].Name)
	}
}

func TestTabSwitchesFocus(t *testing.T) {
	m := newTestModel(t, &fakeSynth{payload: pcmPayload([]int16{0}, 24000)})

	m2, _ := m.handleKey(keyMsg("tab"))
	if m2.focus != focusHistory {
		t.Error("expected history focus after tab")
	}
	if m2.textarea.Focused() {
		t.Error("expected textarea to be blurred in history focus")
	}

	m3, cmd := m2.handleKey(keyMsg("tab"))
	if m3.focus != focusInput {
		t.Error("expected input focus after second tab")
	}
	if !m3.textarea.Focused() {
		t.Error("expected textarea to regain focus")
	}
	if cmd == nil {
		t.Error("expected blink command when refocusing input")
	}
}

func TestGenerateFlow(t *testing.T) {
	synth := &fakeSynth{payload: pcmPayload([]int16{1000, -1000, 500, -500}, 24000)}
	m := newTestModel(t, synth)

	m = generateOne(t, m, "hello world")

	if m.generating {
		t.Error("expected generating to clear after completion")
	}
	if len(m.entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(m.entries))
	}
	if m.entries[0].Text != "hello world" {
		t.Errorf("expected entry text 'hello world', got %q", m.entries[0].Text)
	}
	if m.playingID != m.entries[0].ID {
		t.Error("expected generation to auto-play")
	}
	if !m.studio.Playing() {
		t.Error("expected studio to report active playback")
	}
	if !strings.Contains(m.status, "Generated") {
		t.Errorf("expected status notice, got %q", m.status)
	}
	if m.textarea.Value() != "" {
		t.Error("expected textarea to reset after generating")
	}
}

func TestGenerateEmptyInputIgnored(t *testing.T) {
	m := newTestModel(t, &fakeSynth{payload: pcmPayload([]int16{0}, 24000)})

	m.textarea.SetValue("   ")
	m2, cmd := m.handleKey(keyMsg("enter"))
	if m2.generating {
		t.Error("expected no generation for blank input")
	}
	if cmd != nil {
		t.Error("expected no command for blank input")
	}
}

func TestGenerateWhileGeneratingIgnored(t *testing.T) {
	m := newTestModel(t, &fakeSynth{payload: pcmPayload([]int16{0}, 24000)})

	m.generating = true
	m.textarea.SetValue("queued")
	m2, cmd := m.handleKey(keyMsg("enter"))
	if cmd != nil {
		t.Error("expected enter to be ignored while generating")
	}
	if m2.textarea.Value() != "queued" {
		t.Error("expected textarea contents to survive")
	}
}

func TestGenerateErrorRecordsFailure(t *testing.T) {
	m := newTestModel(t, &fakeSynth{err: fmt.Errorf("quota exceeded")})

	m.textarea.SetValue("hello")
	next, cmd := m.handleKey(keyMsg("enter"))

	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected batch command, got %T", msg)
	}
	var result tea.Msg
	for _, c := range batch {
		if gm, ok := c().(generationMsg); ok {
			result = gm
		}
	}

	updated, _ := next.Update(result)
	m2 := updated.(Model)

	if m2.generating {
		t.Error("expected generating to clear after failure")
	}
	if !strings.Contains(m2.status, "quota exceeded") {
		t.Errorf("expected failure notice, got %q", m2.status)
	}
	if len(m2.entries) != 1 {
		t.Fatalf("expected failed entry in history, got %d", len(m2.entries))
	}
	if !m2.entries[0].Failed() {
		t.Error("expected history entry to be marked failed")
	}
	if m2.playingID != "" {
		t.Error("expected no playback after failure")
	}
}

func TestToggleSelected(t *testing.T) {
	synth := &fakeSynth{payload: pcmPayload([]int16{1000, -1000}, 24000)}
	m := newTestModel(t, synth)
	m = generateOne(t, m, "toggle me")

	m2, _ := m.handleKey(keyMsg("tab"))

	// Auto-play is live, so enter stops it
	m3, _ := m2.handleKey(keyMsg("enter"))
	if m3.playingID != "" {
		t.Error("expected toggle to stop the playing entry")
	}
	if m3.studio.Playing() {
		t.Error("expected studio playback to stop")
	}

	// And enter starts it again
	m4, cmd := m3.handleKey(keyMsg("enter"))
	if m4.playingID != m4.entries[0].ID {
		t.Error("expected toggle to restart playback")
	}
	if cmd == nil {
		t.Error("expected session watch command")
	}
	if !m4.studio.Playing() {
		t.Error("expected studio to report active playback")
	}
}

func TestStopKey(t *testing.T) {
	synth := &fakeSynth{payload: pcmPayload([]int16{1000}, 24000)}
	m := newTestModel(t, synth)
	m = generateOne(t, m, "stop me")

	m2, _ := m.handleKey(keyMsg("tab"))
	m3, _ := m2.handleKey(keyMsg("s"))

	if m3.playingID != "" {
		t.Error("expected stop to clear playing entry")
	}
	if m3.studio.Playing() {
		t.Error("expected studio playback to stop")
	}
}

func TestHistoryNavigation(t *testing.T) {
	synth := &fakeSynth{payload: pcmPayload([]int16{1000}, 24000)}
	m := newTestModel(t, synth)
	m = generateOne(t, m, "first")
	m = generateOne(t, m, "second")

	if len(m.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m.entries))
	}

	m2, _ := m.handleKey(keyMsg("tab"))
	if m2.selected != 0 {
		t.Fatalf("expected selection at top, got %d", m2.selected)
	}

	m3, _ := m2.handleKey(keyMsg("down"))
	if m3.selected != 1 {
		t.Errorf("expected selection 1 after down, got %d", m3.selected)
	}

	m4, _ := m3.handleKey(keyMsg("down"))
	if m4.selected != 1 {
		t.Errorf("expected selection to clamp at end, got %d", m4.selected)
	}

	m5, _ := m4.handleKey(keyMsg("up"))
	if m5.selected != 0 {
		t.Errorf("expected selection 0 after up, got %d", m5.selected)
	}

	m6, _ := m5.handleKey(keyMsg("up"))
	if m6.selected != 0 {
		t.Errorf("expected selection to clamp at top, got %d", m6.selected)
	}
}

func TestVoiceCycleKeys(t *testing.T) {
	m := newTestModel(t, &fakeSynth{payload: pcmPayload([]int16{0}, 24000)})

	start := m.voiceIndex
	next := (start + 1) % len(m.voices)

	// ctrl+o cycles from any focus
	m2, _ := m.handleKey(keyMsg("ctrl+o"))
	if m2.voiceIndex != next {
		t.Errorf("expected voice index %d, got %d", next, m2.voiceIndex)
	}
	if m2.studio.Voice() != m2.voices[next].Name {
		t.Errorf("expected studio voice %s, got %s", m2.voices[next].Name, m2.studio.Voice())
	}

	// v cycles in history focus
	m3, _ := m2.handleKey(keyMsg("tab"))
	m4, _ := m3.handleKey(keyMsg("v"))
	want := (next + 1) % len(m4.voices)
	if m4.voiceIndex != want {
		t.Errorf("expected voice index %d, got %d", want, m4.voiceIndex)
	}
}

func TestVolumeKeys(t *testing.T) {
	m := newTestModel(t, &fakeSynth{payload: pcmPayload([]int16{0}, 24000)})
	m2, _ := m.handleKey(keyMsg("tab"))

	m3, _ := m2.handleKey(keyMsg("-"))
	if m3.volume != 95 {
		t.Errorf("expected volume 95, got %d", m3.volume)
	}
	if m3.studio.Volume() != 95 {
		t.Errorf("expected studio volume 95, got %d", m3.studio.Volume())
	}

	m4, _ := m3.handleKey(keyMsg("+"))
	if m4.volume != 100 {
		t.Errorf("expected volume 100, got %d", m4.volume)
	}

	m5, _ := m4.handleKey(keyMsg("+"))
	if m5.volume != 100 {
		t.Errorf("expected volume to clamp at 100, got %d", m5.volume)
	}
}

func TestExportKey(t *testing.T) {
	synth := &fakeSynth{payload: pcmPayload([]int16{1000, -1000}, 24000)}
	m := newTestModel(t, synth)
	m = generateOne(t, m, "export me")

	m2, _ := m.handleKey(keyMsg("tab"))
	m3, _ := m2.handleKey(keyMsg("e"))

	if !strings.HasPrefix(m3.status, "Exported ") {
		t.Fatalf("expected export notice, got %q", m3.status)
	}

	path := strings.TrimPrefix(m3.status, "Exported ")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected exported file at %s: %v", path, err)
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, &fakeSynth{payload: pcmPayload([]int16{0}, 24000)})

	m2, cmd := m.handleKey(keyMsg("ctrl+c"))
	if !m2.quitting {
		t.Error("expected quitting state after ctrl+c")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit message from command")
	}

	m3, _ := m.handleKey(keyMsg("tab"))
	m4, cmd := m3.handleKey(keyMsg("q"))
	if !m4.quitting {
		t.Error("expected quitting state after q")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestFrameMsgUpdatesSpectrum(t *testing.T) {
	m := newTestModel(t, &fakeSynth{payload: pcmPayload([]int16{0}, 24000)})

	updated, _ := m.Update(frameMsg(analysis.Frame{1, 2, 3}))
	m2 := updated.(Model)

	if len(m2.frame) != 3 {
		t.Errorf("expected frame with 3 bins, got %d", len(m2.frame))
	}
}

func TestPlaybackEndedMsg(t *testing.T) {
	m := newTestModel(t, &fakeSynth{payload: pcmPayload([]int16{0}, 24000)})

	m.playingID = "abc"
	updated, _ := m.Update(playbackEndedMsg{id: "abc"})
	m2 := updated.(Model)
	if m2.playingID != "" {
		t.Error("expected playing entry to clear when session ends")
	}

	m.playingID = "abc"
	updated, _ = m.Update(playbackEndedMsg{id: "stale"})
	m3 := updated.(Model)
	if m3.playingID != "abc" {
		t.Error("expected stale end message to be ignored")
	}
}

func TestViewRendering(t *testing.T) {
	m := newTestModel(t, &fakeSynth{payload: pcmPayload([]int16{0}, 24000)})

	if m.View() != "Loading..." {
		t.Error("expected loading placeholder before first resize")
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m2 := updated.(Model)

	view := m2.View()
	if !strings.Contains(view, "Voice Studio") {
		t.Error("expected title in view")
	}
	if !strings.Contains(view, "History") {
		t.Error("expected history section in view")
	}
	if !strings.Contains(view, tts.DefaultVoice) {
		t.Error("expected current voice in view")
	}
	if !strings.Contains(view, "nothing generated yet") {
		t.Error("expected empty history placeholder")
	}

	m2.generating = true
	if !strings.Contains(m2.View(), "Generating") {
		t.Error("expected generating notice in view")
	}
}

func TestRenderSpectrum(t *testing.T) {
	tests := []struct {
		name     string
		frame    analysis.Frame
		width    int
		expected string
	}{
		{"empty frame", nil, 8, "▁▁▁▁▁▁▁▁"},
		{"silence", analysis.Frame{0, 0, 0, 0}, 4, "▁▁▁▁"},
		{"full scale", analysis.Frame{255, 255, 255, 255}, 4, "████"},
		{"peak in first column", analysis.Frame{255, 0, 0, 0}, 2, "█▁"},
		{"mid level", analysis.Frame{0, 0, 127, 0}, 2, "▁▄"},
		{"upsampled", analysis.Frame{255}, 3, "███"},
	}

	for _, tt := range tests {
		result := renderSpectrum(tt.frame, tt.width)
		if result != tt.expected {
			t.Errorf("%s: renderSpectrum = %q, expected %q", tt.name, result, tt.expected)
		}
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		value    int
		expected string
	}{
		{0, "░░░░░░░░░░"},
		{50, "█████░░░░░"},
		{100, "██████████"},
	}

	for _, tt := range tests {
		result := renderBar(tt.value, 100, 10)
		if result != tt.expected {
			t.Errorf("renderBar(%d) = %q, expected %q", tt.value, result, tt.expected)
		}
	}
}

func TestTruncateFunction(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"this is longer than allowed", 10, "this is..."},
		{"", 10, ""},
		{"abcd", 4, "abcd"},
		{"abcde", 4, "a..."},
	}

	for _, tt := range tests {
		result := truncate(tt.input, tt.maxLen)
		if result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q",
				tt.input, tt.maxLen, result, tt.expected)
		}
	}
}
