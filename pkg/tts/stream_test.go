// ABOUTME: Tests for the websocket streaming synthesis client
// ABOUTME: Uses an httptest websocket server emitting chunked payloads
package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func newStreamServer(t *testing.T, handler func(*websocket.Conn)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		handler(conn)
	}))
}

func sendChunk(t *testing.T, conn *websocket.Conn, data []byte) {
	t.Helper()
	payload, err := json.Marshal(Payload{
		AudioBase64: base64.StdEncoding.EncodeToString(data),
		MIMEType:    "audio/L16;codec=pcm;rate=24000",
		SampleRate:  24000,
		Channels:    1,
	})
	if err != nil {
		t.Errorf("failed to marshal chunk: %v", err)
		return
	}
	if err := conn.WriteJSON(StreamMessage{Type: StreamTypeChunk, Payload: payload}); err != nil {
		t.Errorf("failed to send chunk: %v", err)
	}
}

func TestStreamSynthesize(t *testing.T) {
	server := newStreamServer(t, func(conn *websocket.Conn) {
		var msg StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Errorf("failed to read request: %v", err)
			return
		}
		if msg.Type != StreamTypeRequest {
			t.Errorf("request type = %q, want %q", msg.Type, StreamTypeRequest)
		}
		var req Request
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			t.Errorf("failed to parse request: %v", err)
		}
		if req.Text != "hello world" {
			t.Errorf("request text = %q, want %q", req.Text, "hello world")
		}

		sendChunk(t, conn, []byte{0x01, 0x02, 0x03})
		sendChunk(t, conn, []byte{0x04, 0x05, 0x06})
		conn.WriteJSON(StreamMessage{Type: StreamTypeComplete})
	})
	defer server.Close()

	client := NewStreamClient(strings.TrimPrefix(server.URL, "http://"))
	payload, err := client.Synthesize(context.Background(), Request{Text: "hello world", Voice: "Kore"})
	if err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}

	raw, err := payload.Bytes()
	if err != nil {
		t.Fatalf("failed to decode combined payload: %v", err)
	}
	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	if !bytes.Equal(raw, want) {
		t.Errorf("combined audio = %v, want %v", raw, want)
	}
	if payload.SampleRate != 24000 {
		t.Errorf("SampleRate = %d, want 24000", payload.SampleRate)
	}
	if payload.Channels != 1 {
		t.Errorf("Channels = %d, want 1", payload.Channels)
	}
}

func TestStreamSynthesize_ServerError(t *testing.T) {
	server := newStreamServer(t, func(conn *websocket.Conn) {
		var msg StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		payload, _ := json.Marshal(StreamError{Message: "unknown voice"})
		conn.WriteJSON(StreamMessage{Type: StreamTypeError, Payload: payload})
	})
	defer server.Close()

	client := NewStreamClient(strings.TrimPrefix(server.URL, "http://"))
	_, err := client.Synthesize(context.Background(), Request{Text: "hi"})
	if err == nil {
		t.Fatal("expected error from server, got nil")
	}
	if !strings.Contains(err.Error(), "unknown voice") {
		t.Errorf("error = %v, want mention of server message", err)
	}
}

func TestStreamSynthesize_EmptyStream(t *testing.T) {
	server := newStreamServer(t, func(conn *websocket.Conn) {
		var msg StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		conn.WriteJSON(StreamMessage{Type: StreamTypeComplete})
	})
	defer server.Close()

	client := NewStreamClient(strings.TrimPrefix(server.URL, "http://"))
	_, err := client.Synthesize(context.Background(), Request{Text: "hi"})
	if err == nil {
		t.Fatal("expected error for empty stream, got nil")
	}
}

func TestStreamSynthesize_DialFailure(t *testing.T) {
	client := NewStreamClient("127.0.0.1:1")
	_, err := client.Synthesize(context.Background(), Request{Text: "hi"})
	if err == nil {
		t.Fatal("expected dial error, got nil")
	}
}
