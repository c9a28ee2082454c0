// ABOUTME: File-backed synthesizer for the development server
// ABOUTME: Serves MP3, FLAC or WAV file audio as synthesis payloads
package server

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"

	"github.com/khanhsoen/Gemini-voice-studio/pkg/tts"
)

// FileSynthesizer answers every request with the same audio file. It
// exercises the full client decode pipeline without a TTS key: MP3 and
// FLAC payloads pass through for the client to decode, WAV files are
// unpacked server-side into raw 16-bit PCM.
type FileSynthesizer struct {
	payload *tts.Payload
}

// NewFileSynthesizer loads the audio file and prepares the payload
// served to every request.
func NewFileSynthesizer(path string) (*FileSynthesizer, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var payload *tts.Payload
	switch ext {
	case ".mp3":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read MP3 file: %w", err)
		}
		payload = &tts.Payload{
			AudioBase64: base64.StdEncoding.EncodeToString(data),
			MIMEType:    "audio/mpeg",
		}
		log.Printf("Loaded MP3: %s (%d bytes)", title, len(data))

	case ".flac":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read FLAC file: %w", err)
		}
		payload = &tts.Payload{
			AudioBase64: base64.StdEncoding.EncodeToString(data),
			MIMEType:    "audio/flac",
		}
		log.Printf("Loaded FLAC: %s (%d bytes)", title, len(data))

	case ".wav":
		var err error
		payload, err = loadWAV(path)
		if err != nil {
			return nil, err
		}
		log.Printf("Loaded WAV: %s (sample rate: %d Hz, channels: %d)",
			title, payload.SampleRate, payload.Channels)

	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .flac, .wav)", ext)
	}

	return &FileSynthesizer{payload: payload}, nil
}

// Synthesize returns the prepared file payload. Text is required for
// contract parity with real providers but does not change the audio.
func (s *FileSynthesizer) Synthesize(_ context.Context, req tts.Request) (*tts.Payload, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("text is required")
	}
	return s.payload, nil
}

// loadWAV unpacks a 16-bit WAV file into a raw PCM payload carrying
// the file's own rate and channel count.
func loadWAV(path string) (*tts.Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV data: %w", err)
	}
	if decoder.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported WAV bit depth: %d (supported: 16)", decoder.BitDepth)
	}

	raw := make([]byte, len(pcm.Data)*2)
	for i, sample := range pcm.Data {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(int16(sample)))
	}

	return &tts.Payload{
		AudioBase64: base64.StdEncoding.EncodeToString(raw),
		MIMEType:    fmt.Sprintf("audio/L16;codec=pcm;rate=%d", pcm.Format.SampleRate),
		SampleRate:  pcm.Format.SampleRate,
		Channels:    pcm.Format.NumChannels,
	}, nil
}
