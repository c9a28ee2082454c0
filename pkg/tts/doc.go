// ABOUTME: Text-to-speech provider package defining the synthesis contract
// ABOUTME: Provides payload types, voice catalog, and streaming client
// Package tts defines the text-to-speech provider contract: a
// Synthesizer turns a text request into a Payload of transport-encoded
// audio bytes plus the declared sample format.
//
// Subpackage gemini talks to the Gemini generateContent endpoint;
// StreamClient collects chunked audio from a websocket provider such
// as the dev server.
//
// Example:
//
//	payload, err := client.Synthesize(ctx, tts.Request{Text: "Hello", Voice: "Kore"})
//	raw, err := payload.Bytes()
//	decoder, err := decode.New(payload.Format())
package tts
