// ABOUTME: Text-to-speech provider types and voice catalog
// ABOUTME: Defines the synthesis request/payload wire contract
package tts

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio"
)

// DefaultVoice is used when a request does not name one.
const DefaultVoice = "Kore"

// Voice is one selectable prebuilt speaking voice.
type Voice struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog lists the prebuilt voices offered by the studio.
var Catalog = []Voice{
	{Name: "Zephyr", Description: "Bright"},
	{Name: "Puck", Description: "Upbeat"},
	{Name: "Charon", Description: "Informative"},
	{Name: "Kore", Description: "Firm"},
	{Name: "Fenrir", Description: "Excitable"},
	{Name: "Leda", Description: "Youthful"},
	{Name: "Orus", Description: "Confident"},
	{Name: "Aoede", Description: "Breezy"},
}

// VoiceByName looks up a catalog voice by name.
func VoiceByName(name string) (Voice, bool) {
	for _, v := range Catalog {
		if v.Name == name {
			return v, true
		}
	}
	return Voice{}, false
}

// Request describes one synthesis call.
type Request struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
}

// Payload is a provider's synthesized audio response: transport-encoded
// audio bytes plus the declared format. The declared rate and channel
// count are trusted as given; decoding validates only byte alignment.
type Payload struct {
	AudioBase64 string `json:"encodedAudioBase64"`
	MIMEType    string `json:"mimeType,omitempty"`
	SampleRate  int    `json:"sampleRateHz"`
	Channels    int    `json:"channelCount"`
}

// Bytes decodes the transport encoding into raw audio bytes.
func (p *Payload) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(p.AudioBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio payload: %w", err)
	}
	return data, nil
}

// Format returns the decoder format for this payload. Explicit fields
// win; missing ones fall back to the MIME type and provider defaults
// (24kHz mono PCM).
func (p *Payload) Format() audio.Format {
	rate := p.SampleRate
	if rate == 0 {
		rate = ParseRateFromMIME(p.MIMEType)
	}
	if rate == 0 {
		rate = 24000
	}

	channels := p.Channels
	if channels == 0 {
		channels = 1
	}

	return audio.Format{
		Codec:      CodecFromMIME(p.MIMEType),
		SampleRate: rate,
		Channels:   channels,
	}
}

// ParseRateFromMIME extracts the rate parameter from a MIME type such
// as "audio/L16;codec=pcm;rate=24000". Returns 0 when absent.
func ParseRateFromMIME(mimeType string) int {
	for _, param := range strings.Split(mimeType, ";") {
		param = strings.TrimSpace(param)
		if !strings.HasPrefix(param, "rate=") {
			continue
		}
		rate, err := strconv.Atoi(strings.TrimPrefix(param, "rate="))
		if err != nil || rate < 0 {
			return 0
		}
		return rate
	}
	return 0
}

// CodecFromMIME maps a payload MIME type onto a decoder codec. Raw L16
// PCM is the provider default.
func CodecFromMIME(mimeType string) string {
	mimeType = strings.ToLower(mimeType)
	switch {
	case strings.HasPrefix(mimeType, "audio/mpeg"), strings.HasPrefix(mimeType, "audio/mp3"):
		return audio.CodecMP3
	case strings.HasPrefix(mimeType, "audio/ogg"), strings.HasPrefix(mimeType, "audio/opus"):
		return audio.CodecOpus
	case strings.HasPrefix(mimeType, "audio/flac"):
		return audio.CodecFLAC
	default:
		return audio.CodecPCM16
	}
}

// Synthesizer turns text into audio payloads. Implementations include
// the Gemini REST client, the streaming websocket client and the dev
// server's tone synthesizer.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (*Payload, error)
}
