// ABOUTME: Deterministic tone synthesizer for offline development
// ABOUTME: Maps text runes to sine tones so no TTS API key is needed
package server

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"strings"
	"unicode"

	"github.com/khanhsoen/Gemini-voice-studio/pkg/tts"
)

const (
	toneSampleRate    = 24000
	toneChannels      = 1
	toneBaseFrequency = 220.0 // A3 note

	// samplesPerRune is 60ms of audio per character
	samplesPerRune = toneSampleRate * 60 / 1000
)

// ToneSynthesizer renders text as a sequence of sine tones, one per
// rune, pitched by character and voice. Output is deterministic: the
// same text and voice always produce the same payload.
type ToneSynthesizer struct{}

// NewToneSynthesizer creates a new tone generator.
func NewToneSynthesizer() *ToneSynthesizer {
	return &ToneSynthesizer{}
}

// Synthesize renders the request text as mono 16-bit PCM at 24kHz.
func (s *ToneSynthesizer) Synthesize(_ context.Context, req tts.Request) (*tts.Payload, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("text is required")
	}

	voice := req.Voice
	if voice == "" {
		voice = tts.DefaultVoice
	}
	if _, ok := tts.VoiceByName(voice); !ok {
		return nil, fmt.Errorf("unknown voice: %s", voice)
	}

	runes := []rune(req.Text)
	shift := voiceShift(voice)
	pcm := make([]byte, len(runes)*samplesPerRune*2)

	for idx, r := range runes {
		freq := toneFrequency(r, shift)
		if freq == 0 {
			continue // whitespace stays silent, bytes are already zero
		}

		base := idx * samplesPerRune
		for i := 0; i < samplesPerRune; i++ {
			t := float64(i) / toneSampleRate
			value := math.Sin(2*math.Pi*freq*t) * 0.5 * envelope(i, samplesPerRune)
			sample := int16(value * 32767.0)
			binary.LittleEndian.PutUint16(pcm[(base+i)*2:], uint16(sample))
		}
	}

	log.Printf("Synthesized %d runes as tones (voice %s)", len(runes), voice)

	return &tts.Payload{
		AudioBase64: base64.StdEncoding.EncodeToString(pcm),
		MIMEType:    fmt.Sprintf("audio/L16;codec=pcm;rate=%d", toneSampleRate),
		SampleRate:  toneSampleRate,
		Channels:    toneChannels,
	}, nil
}

// toneFrequency maps a rune to a tone, shifted per voice so voices are
// audibly distinct. Whitespace maps to silence.
func toneFrequency(r rune, shift int) float64 {
	if unicode.IsSpace(r) {
		return 0
	}

	semitone := int(r)%24 + shift
	return toneBaseFrequency * math.Pow(2, float64(semitone)/12.0)
}

// voiceShift derives a semitone offset from the voice name.
func voiceShift(voice string) int {
	sum := 0
	for _, b := range []byte(voice) {
		sum += int(b)
	}
	return sum % 12
}

// envelope fades tone edges to avoid clicks between runes.
func envelope(i, n int) float64 {
	fade := n / 20
	if fade == 0 {
		return 1
	}
	if i < fade {
		return float64(i) / float64(fade)
	}
	if i >= n-fade {
		return float64(n-1-i) / float64(fade)
	}
	return 1
}
