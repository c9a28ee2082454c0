// ABOUTME: Studio configuration with TOML file and environment overrides
// ABOUTME: Defaults, then config file values, then environment variables
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/tts"
)

// Provider kinds selectable in configuration.
const (
	ProviderGemini = "gemini"
	ProviderServer = "server"
)

// Config is the root studio configuration.
type Config struct {
	Provider ProviderConfig `toml:"provider"`
	Studio   StudioConfig   `toml:"studio"`
	Server   ServerConfig   `toml:"server"`
}

// ProviderConfig selects and configures the speech synthesizer.
type ProviderConfig struct {
	Kind       string `toml:"kind"`        // "gemini" or "server"
	APIKey     string `toml:"api_key"`     // Gemini API key
	Model      string `toml:"model"`       // empty uses the client default
	BaseURL    string `toml:"base_url"`    // empty uses the public endpoint
	ServerAddr string `toml:"server_addr"` // dev server host:port; empty triggers mDNS discovery
}

// StudioConfig holds playback and export settings.
type StudioConfig struct {
	Voice         string `toml:"voice"`
	Volume        int    `toml:"volume"`
	ExportDir     string `toml:"export_dir"`
	FrameRate     int    `toml:"frame_rate"` // spectrum frames per second
	HoldLastFrame bool   `toml:"hold_last_frame"`
}

// ServerConfig configures the dev provider server.
type ServerConfig struct {
	Port      int  `toml:"port"`
	Advertise bool `toml:"advertise"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Provider: ProviderConfig{
			Kind: ProviderGemini,
		},
		Studio: StudioConfig{
			Voice:     tts.DefaultVoice,
			Volume:    100,
			ExportDir: ".",
			FrameRate: 30,
		},
		Server: ServerConfig{
			Port:      8926,
			Advertise: true,
		},
	}
}

// Load builds the configuration: defaults, overlaid with the TOML file
// at path (if any), overlaid with environment variables. An empty path
// skips the file; a missing file at an explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Provider.APIKey = v
	}
	if v := os.Getenv("VOICE_STUDIO_PROVIDER"); v != "" {
		c.Provider.Kind = v
	}
	if v := os.Getenv("VOICE_STUDIO_SERVER"); v != "" {
		c.Provider.ServerAddr = v
	}
	if v := os.Getenv("VOICE_STUDIO_VOICE"); v != "" {
		c.Studio.Voice = v
	}
	if v := os.Getenv("VOICE_STUDIO_EXPORT_DIR"); v != "" {
		c.Studio.ExportDir = v
	}
}

// validate checks values and fills fallbacks for out-of-range settings.
func (c *Config) validate() error {
	switch c.Provider.Kind {
	case ProviderGemini, ProviderServer:
	default:
		return fmt.Errorf("unknown provider kind: %s", c.Provider.Kind)
	}

	if _, ok := tts.VoiceByName(c.Studio.Voice); !ok {
		return fmt.Errorf("unknown voice: %s", c.Studio.Voice)
	}

	if c.Studio.Volume < 0 {
		c.Studio.Volume = 0
	}
	if c.Studio.Volume > 100 {
		c.Studio.Volume = 100
	}
	if c.Studio.FrameRate < 1 || c.Studio.FrameRate > 120 {
		c.Studio.FrameRate = 30
	}
	if c.Studio.ExportDir == "" {
		c.Studio.ExportDir = "."
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		c.Server.Port = 8926
	}

	return nil
}
