// ABOUTME: Studio orchestrator wiring synthesis, decoding, playback and export
// ABOUTME: Owns the audio graph, spectrum sampler and generation history
package studio

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio/analysis"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio/decode"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio/encode"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio/graph"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio/output"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/tts"
)

// Config holds the studio dependencies and initial settings.
type Config struct {
	Synthesizer tts.Synthesizer
	Sink        output.Sink

	// Voice is the initial voice name; empty selects tts.DefaultVoice.
	Voice string

	// Volume is the initial playback volume 0-100; zero keeps the
	// graph default of 100.
	Volume int

	// ExportDir is where WAV exports land; empty means the current
	// directory.
	ExportDir string

	// FrameRate bounds the spectrum sampling cadence; values below 1
	// fall back to analysis.DefaultFrameRate.
	FrameRate int

	// HoldLastFrame keeps the final spectrum on screen after playback
	// ends instead of clearing it.
	HoldLastFrame bool
}

// Studio coordinates a synthesis session: it turns text into decoded
// audio buffers, records them in history, plays them through the audio
// graph and exports them as WAV files.
type Studio struct {
	synth     tts.Synthesizer
	graph     *graph.Graph
	sampler   *analysis.Sampler
	history   *History
	exportDir string

	mu    sync.Mutex
	voice string
}

// New creates a studio from the given configuration.
func New(cfg Config) (*Studio, error) {
	if cfg.Synthesizer == nil {
		return nil, fmt.Errorf("synthesizer is required")
	}
	if cfg.Sink == nil {
		return nil, fmt.Errorf("output sink is required")
	}

	voice := cfg.Voice
	if voice == "" {
		voice = tts.DefaultVoice
	}
	if _, ok := tts.VoiceByName(voice); !ok {
		return nil, fmt.Errorf("unknown voice: %s", voice)
	}

	g := graph.NewGraph(cfg.Sink)
	if cfg.Volume > 0 {
		g.SetVolume(cfg.Volume)
	}

	sampler := analysis.NewSampler(g.Analyser(), cfg.FrameRate)
	sampler.HoldLastFrame = cfg.HoldLastFrame

	exportDir := cfg.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	return &Studio{
		synth:     cfg.Synthesizer,
		graph:     g,
		sampler:   sampler,
		history:   NewHistory(),
		exportDir: exportDir,
		voice:     voice,
	}, nil
}

// Generate synthesizes text with the current voice and records the
// result in history. Provider and decode failures are recorded too,
// as failed generations with no buffer.
func (s *Studio) Generate(ctx context.Context, text string) (*Generation, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("cannot generate empty text")
	}

	gen := &Generation{
		ID:        uuid.New().String(),
		Text:      text,
		Voice:     s.Voice(),
		CreatedAt: time.Now(),
	}

	payload, err := s.synth.Synthesize(ctx, tts.Request{Text: text, Voice: gen.Voice})
	if err != nil {
		gen.Err = fmt.Errorf("synthesis failed: %w", err)
		s.history.Add(gen)
		return nil, gen.Err
	}

	buf, err := decodePayload(payload)
	if err != nil {
		gen.Err = err
		s.history.Add(gen)
		return nil, gen.Err
	}

	gen.Buffer = buf
	s.history.Add(gen)
	log.Printf("Generated %s: %d samples at %dHz (voice %s)",
		gen.ID[:8], buf.SampleCount(), buf.SampleRate, gen.Voice)
	return gen, nil
}

func decodePayload(payload *tts.Payload) (*audio.Buffer, error) {
	raw, err := payload.Bytes()
	if err != nil {
		return nil, err
	}

	format := payload.Format()
	decoder, err := decode.New(format)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	buf, err := decoder.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s audio: %w", format.Codec, err)
	}
	return buf, nil
}

// Play starts playback of a generation, replacing whatever was
// playing. The spectrum sampler runs while the session is live and
// stops once no session remains active.
func (s *Studio) Play(gen *Generation) (*graph.Session, error) {
	if gen == nil || gen.Buffer == nil {
		return nil, fmt.Errorf("generation has no audio to play")
	}

	session, err := s.graph.Start(gen.Buffer)
	if err != nil {
		return nil, err
	}

	s.sampler.Start()
	go s.watchSession(session)
	return session, nil
}

// watchSession stops the sampler when the session ends, unless a newer
// session took over playback in the meantime.
func (s *Studio) watchSession(session *graph.Session) {
	<-session.Done()
	if s.graph.Active() == nil {
		s.sampler.Stop()
	}
}

// Toggle stops the generation if it is the one playing, otherwise
// starts it. A stop returns (nil, nil).
func (s *Studio) Toggle(gen *Generation) (*graph.Session, error) {
	if gen == nil || gen.Buffer == nil {
		return nil, fmt.Errorf("generation has no audio to play")
	}

	if active := s.graph.Active(); active != nil && active.Buffer() == gen.Buffer {
		s.graph.Stop(active)
		return nil, nil
	}
	return s.Play(gen)
}

// Stop halts the active session, if any.
func (s *Studio) Stop() {
	if active := s.graph.Active(); active != nil {
		s.graph.Stop(active)
	}
}

// Playing reports whether a session is currently active.
func (s *Studio) Playing() bool {
	return s.graph.Active() != nil
}

// ExportFilename returns the canonical export name for a generation.
func ExportFilename(gen *Generation) string {
	return fmt.Sprintf("voice-studio-%s-%s.wav", strings.ToLower(gen.Voice), gen.ID)
}

// Export writes a generation to the export directory as a WAV file
// and returns the written path.
func (s *Studio) Export(gen *Generation) (string, error) {
	if gen == nil || gen.Buffer == nil {
		return "", fmt.Errorf("generation has no audio to export")
	}

	data, err := encode.EncodeWAV(gen.Buffer)
	if err != nil {
		return "", fmt.Errorf("failed to encode WAV: %w", err)
	}

	if err := os.MkdirAll(s.exportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(s.exportDir, ExportFilename(gen))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write WAV file: %w", err)
	}

	log.Printf("Exported %s (%d bytes)", path, len(data))
	return path, nil
}

// Voice returns the current voice name.
func (s *Studio) Voice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voice
}

// SetVoice switches the voice used for subsequent generations.
func (s *Studio) SetVoice(name string) error {
	if _, ok := tts.VoiceByName(name); !ok {
		return fmt.Errorf("unknown voice: %s", name)
	}

	s.mu.Lock()
	s.voice = name
	s.mu.Unlock()
	return nil
}

// Voices lists the selectable voices.
func (s *Studio) Voices() []tts.Voice {
	return tts.Catalog
}

// SetVolume adjusts playback volume (0-100).
func (s *Studio) SetVolume(volume int) {
	s.graph.SetVolume(volume)
}

// Volume returns the current playback volume.
func (s *Studio) Volume() int {
	return s.graph.Volume()
}

// Frames returns the spectrum frame channel for visualization.
func (s *Studio) Frames() <-chan analysis.Frame {
	return s.sampler.Frames()
}

// History returns the generation history.
func (s *Studio) History() *History {
	return s.history
}

// Close stops sampling and playback and releases the output device.
func (s *Studio) Close() error {
	s.sampler.Stop()
	return s.graph.Close()
}
