// ABOUTME: Gemini speech synthesis provider package
// ABOUTME: REST client for the generateContent AUDIO modality
// Package gemini implements the tts.Synthesizer contract against the
// Gemini generateContent REST endpoint. Requests ask for the AUDIO
// response modality with a prebuilt voice; responses carry base64 PCM
// in an inline data part.
//
// Example:
//
//	client, err := gemini.NewClient(gemini.Config{APIKey: os.Getenv("GEMINI_API_KEY")})
//	payload, err := client.Synthesize(ctx, tts.Request{Text: "Hello", Voice: "Kore"})
package gemini
