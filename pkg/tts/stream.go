// ABOUTME: WebSocket streaming synthesis client
// ABOUTME: Collects chunked audio payloads into one complete payload
package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// Streaming message types exchanged over the synthesis socket.
const (
	StreamTypeRequest  = "speech/request"
	StreamTypeChunk    = "speech/chunk"
	StreamTypeComplete = "speech/complete"
	StreamTypeError    = "speech/error"
)

// StreamPath is the websocket endpoint for streaming synthesis.
const StreamPath = "/v1/speech:stream"

const streamReadTimeout = 30 * time.Second

// StreamMessage is the envelope for streaming synthesis messages.
type StreamMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StreamError is the payload of a speech/error message.
type StreamError struct {
	Message string `json:"message"`
}

// StreamClient synthesizes speech over a websocket connection, reading
// audio chunks until the provider marks the stream complete.
type StreamClient struct {
	url string
}

// NewStreamClient creates a streaming client for the given host:port.
func NewStreamClient(serverAddr string) *StreamClient {
	u := url.URL{Scheme: "ws", Host: serverAddr, Path: StreamPath}
	return &StreamClient{url: u.String()}
}

// Synthesize sends the request and concatenates the returned chunks
// into a single payload carrying the format of the first chunk.
func (c *StreamClient) Synthesize(ctx context.Context, req Request) (*Payload, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}
	defer conn.Close()

	reqPayload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	if err := conn.WriteJSON(StreamMessage{Type: StreamTypeRequest, Payload: reqPayload}); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var (
		data  []byte
		first *Payload
	)

	for {
		deadline := time.Now().Add(streamReadTimeout)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}
		conn.SetReadDeadline(deadline)

		var msg StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return nil, fmt.Errorf("read failed: %w", err)
		}

		switch msg.Type {
		case StreamTypeChunk:
			var chunk Payload
			if err := json.Unmarshal(msg.Payload, &chunk); err != nil {
				return nil, fmt.Errorf("failed to parse chunk: %w", err)
			}
			raw, err := chunk.Bytes()
			if err != nil {
				return nil, err
			}
			data = append(data, raw...)
			if first == nil {
				first = &chunk
			}

		case StreamTypeComplete:
			if first == nil {
				return nil, fmt.Errorf("stream completed without audio")
			}
			return &Payload{
				AudioBase64: base64.StdEncoding.EncodeToString(data),
				MIMEType:    first.MIMEType,
				SampleRate:  first.SampleRate,
				Channels:    first.Channels,
			}, nil

		case StreamTypeError:
			var streamErr StreamError
			if err := json.Unmarshal(msg.Payload, &streamErr); err != nil {
				return nil, fmt.Errorf("synthesis failed")
			}
			return nil, fmt.Errorf("synthesis failed: %s", streamErr.Message)

		default:
			log.Printf("Unknown stream message type: %s", msg.Type)
		}
	}
}
