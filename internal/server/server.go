// ABOUTME: Development text-to-speech server
// ABOUTME: Serves synthesis over HTTP and streaming WebSocket with mDNS announcement
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/khanhsoen/Gemini-voice-studio/internal/version"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/discovery"
	"github.com/khanhsoen/Gemini-voice-studio/pkg/tts"
)

// GeneratePath is the HTTP endpoint for one-shot synthesis.
const GeneratePath = "/v1/speech:generate"

// streamChunkBytes is the raw audio slice carried per websocket chunk.
const streamChunkBytes = 8192

const (
	streamReadTimeout  = 30 * time.Second
	streamWriteTimeout = 10 * time.Second
)

// Config holds server configuration
type Config struct {
	Port      int
	Name      string
	Advertise bool

	// AudioFile serves a local MP3, FLAC or WAV file instead of
	// generated tones. Empty uses the tone synthesizer.
	AudioFile string
}

// Server is a local synthesis provider for development. It speaks the
// same request and payload shapes as the hosted providers, backed by a
// tone generator or a local audio file.
type Server struct {
	config   Config
	serverID string
	synth    tts.Synthesizer

	upgrader   websocket.Upgrader
	mux        *http.ServeMux
	httpServer *http.Server

	mdnsManager *discovery.Manager

	stopChan chan struct{}
	stopOnce sync.Once
}

// New creates a server instance. The synthesizer comes from the
// config: a file-backed one when AudioFile is set, tones otherwise.
func New(config Config) (*Server, error) {
	if config.Name == "" {
		config.Name = "voice-studio-dev"
	}

	var synth tts.Synthesizer
	if config.AudioFile != "" {
		fileSynth, err := NewFileSynthesizer(config.AudioFile)
		if err != nil {
			return nil, err
		}
		synth = fileSynth
	} else {
		synth = NewToneSynthesizer()
	}

	s := &Server{
		config:   config,
		serverID: uuid.New().String(),
		synth:    synth,
		mux:      http.NewServeMux(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Development server for trusted local networks
				return true
			},
		},
		stopChan: make(chan struct{}),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc(GeneratePath, s.handleGenerate)
	s.mux.HandleFunc(tts.StreamPath, s.handleStream)
	s.mux.HandleFunc("/v1/voices", s.handleVoices)
	s.mux.HandleFunc("/healthz", s.handleHealth)
}

// Handler exposes the HTTP routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start runs the server until Stop is called or the listener fails.
func (s *Server) Start() error {
	log.Printf("%s server v%s starting: %s (ID: %s)",
		version.Product, version.Version, s.config.Name, s.serverID)

	if s.config.Advertise {
		s.mdnsManager = discovery.NewManager(discovery.Config{
			InstanceName: s.config.Name,
			Port:         s.config.Port,
		})

		if err := s.mdnsManager.Advertise(); err != nil {
			log.Printf("Failed to start mDNS advertisement: %v", err)
		} else {
			log.Printf("mDNS advertisement started")
		}
	}

	addr := fmt.Sprintf(":%d", s.config.Port)
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}

	log.Printf("Listening on %s", addr)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-s.stopChan:
		log.Printf("Server shutting down...")
	case err := <-errChan:
		log.Printf("HTTP server error: %v", err)
		serverErr = err
	}

	if s.mdnsManager != nil {
		s.mdnsManager.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Printf("Server stopped cleanly")

	if serverErr != nil {
		return fmt.Errorf("HTTP server failed: %w", serverErr)
	}
	return nil
}

// Stop stops the server
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

// handleGenerate serves one-shot synthesis: a request in, a complete
// payload out.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req tts.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}

	payload, err := s.synth.Synthesize(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("Generated %d characters for %s", len(req.Text), r.RemoteAddr)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// handleStream serves synthesis over a websocket: one request message
// in, audio chunks out, then a completion marker.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("New streaming connection from %s", r.RemoteAddr)

	conn.SetReadDeadline(time.Now().Add(streamReadTimeout))

	var msg tts.StreamMessage
	if err := conn.ReadJSON(&msg); err != nil {
		log.Printf("Error reading stream request: %v", err)
		return
	}
	if msg.Type != tts.StreamTypeRequest {
		s.streamError(conn, fmt.Sprintf("expected %s, got %s", tts.StreamTypeRequest, msg.Type))
		return
	}

	var req tts.Request
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		s.streamError(conn, fmt.Sprintf("invalid request payload: %v", err))
		return
	}

	payload, err := s.synth.Synthesize(r.Context(), req)
	if err != nil {
		s.streamError(conn, err.Error())
		return
	}

	if err := s.streamPayload(conn, payload); err != nil {
		log.Printf("Error streaming audio: %v", err)
	}
}

// streamPayload splits the payload's raw audio into chunks and sends
// them followed by the completion marker.
func (s *Server) streamPayload(conn *websocket.Conn, payload *tts.Payload) error {
	raw, err := payload.Bytes()
	if err != nil {
		return err
	}

	for offset := 0; offset < len(raw); offset += streamChunkBytes {
		end := offset + streamChunkBytes
		if end > len(raw) {
			end = len(raw)
		}

		chunk := tts.Payload{
			AudioBase64: base64.StdEncoding.EncodeToString(raw[offset:end]),
			MIMEType:    payload.MIMEType,
			SampleRate:  payload.SampleRate,
			Channels:    payload.Channels,
		}
		if err := s.writeStream(conn, tts.StreamTypeChunk, chunk); err != nil {
			return err
		}
	}

	return s.writeStream(conn, tts.StreamTypeComplete, nil)
}

func (s *Server) writeStream(conn *websocket.Conn, msgType string, payload interface{}) error {
	msg := tts.StreamMessage{Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		msg.Payload = data
	}

	conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return conn.WriteJSON(msg)
}

func (s *Server) streamError(conn *websocket.Conn, message string) {
	if err := s.writeStream(conn, tts.StreamTypeError, tts.StreamError{Message: message}); err != nil {
		log.Printf("Error sending stream error: %v", err)
	}
}

// handleVoices lists the voices this server accepts.
func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tts.Catalog); err != nil {
		log.Printf("Error encoding voices: %v", err)
	}
}

// handleHealth reports liveness for discovery probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(struct {
		Status  string `json:"status"`
		Name    string `json:"name"`
		Version string `json:"version"`
	}{"ok", s.config.Name, version.Version})
	if err != nil {
		log.Printf("Error encoding health response: %v", err)
	}
}
