// ABOUTME: Entry point for the voice studio
// ABOUTME: Parses CLI flags, wires the provider and starts the TUI
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/khanhsoen/Gemini-voice-studio/internal/config"
	"github.com/khanhsoen/Gemini-voice-studio/internal/studio"
	"github.com/khanhsoen/Gemini-voice-studio/internal/ui"
	"github.com/khanhsoen/Gemini-voice-studio/internal/version"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio/output"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/discovery"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/tts"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/tts/gemini"
)

var (
	configPath = flag.String("config", "", "Path to TOML config file")
	provider   = flag.String("provider", "", "Speech provider: gemini or server")
	serverAddr = flag.String("server", "", "Dev server address host:port (skip mDNS)")
	voiceName  = flag.String("voice", "", "Initial voice name")
	exportDir  = flag.String("export-dir", "", "Directory for WAV exports")
	oneShot    = flag.String("text", "", "Generate this text, export it and exit")
	logFile    = flag.String("log-file", "voice-studio.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, speak stdin lines instead")
)

func main() {
	flag.Parse()

	useTUI := !*noTUI && *oneShot == ""

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Streaming logs mode: log to both stdout and file
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override file and environment values
	if *provider != "" {
		cfg.Provider.Kind = *provider
	}
	if *serverAddr != "" {
		cfg.Provider.ServerAddr = *serverAddr
	}
	if *voiceName != "" {
		cfg.Studio.Voice = *voiceName
	}
	if *exportDir != "" {
		cfg.Studio.ExportDir = *exportDir
	}

	synth, err := newSynthesizer(cfg.Provider)
	if err != nil {
		log.Fatalf("Failed to create provider: %v", err)
	}

	s, err := studio.New(studio.Config{
		Synthesizer:   synth,
		Sink:          output.NewOto(),
		Voice:         cfg.Studio.Voice,
		Volume:        cfg.Studio.Volume,
		ExportDir:     cfg.Studio.ExportDir,
		FrameRate:     cfg.Studio.FrameRate,
		HoldLastFrame: cfg.Studio.HoldLastFrame,
	})
	if err != nil {
		log.Fatalf("Failed to create studio: %v", err)
	}
	defer func() { _ = s.Close() }()

	log.Printf("%s v%s starting (provider: %s, voice: %s)",
		version.Product, version.Version, cfg.Provider.Kind, s.Voice())

	if *oneShot != "" {
		if err := generateOnce(s, *oneShot); err != nil {
			log.Fatalf("Generation failed: %v", err)
		}
		return
	}

	if useTUI {
		if err := ui.Run(s); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}
		log.Printf("Studio stopped")
		return
	}

	speakLines(s)
	log.Printf("Studio stopped")
}

// newSynthesizer builds the configured provider. Server mode with no
// address browses mDNS for one.
func newSynthesizer(cfg config.ProviderConfig) (tts.Synthesizer, error) {
	switch cfg.Kind {
	case config.ProviderGemini:
		return gemini.NewClient(gemini.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})

	case config.ProviderServer:
		addr := cfg.ServerAddr
		if addr == "" {
			found, err := discoverServer()
			if err != nil {
				return nil, err
			}
			addr = found
		}
		return tts.NewStreamClient(addr), nil
	}

	return nil, fmt.Errorf("unknown provider kind: %s", cfg.Kind)
}

// discoverServer browses the local network for a speech provider.
func discoverServer() (string, error) {
	log.Printf("Browsing for speech providers...")

	disc := discovery.NewManager(discovery.Config{})
	defer disc.Stop()
	disc.Browse()

	select {
	case server := <-disc.Servers():
		log.Printf("Using provider %s at %s", server.Name, server.Addr())
		return server.Addr(), nil
	case <-time.After(10 * time.Second):
		return "", fmt.Errorf("no provider found after 10 seconds")
	}
}

// generateOnce synthesizes the text, writes the WAV export and prints
// the written path.
func generateOnce(s *studio.Studio, text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen, err := s.Generate(ctx, text)
	if err != nil {
		return err
	}

	path, err := s.Export(gen)
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

// speakLines generates and plays one line of stdin at a time until EOF
// or a shutdown signal.
func speakLines(s *studio.Studio) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return
			}
			if strings.TrimSpace(line) == "" {
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			gen, err := s.Generate(ctx, line)
			cancel()
			if err != nil {
				log.Printf("Generation failed: %v", err)
				continue
			}

			session, err := s.Play(gen)
			if err != nil {
				log.Printf("Playback failed: %v", err)
				continue
			}

			select {
			case <-session.Done():
			case <-sigChan:
				log.Printf("Shutdown signal received")
				s.Stop()
				return
			}

		case <-sigChan:
			log.Printf("Shutdown signal received")
			return
		}
	}
}
