// ABOUTME: In-memory generation history for the studio session
// ABOUTME: Ordered store of synthesis results, newest first
package studio

import (
	"sync"
	"time"

	"github.com/khanhsoen/Gemini-voice-studio/pkg/audio"
)

// Generation is one synthesis record. Failed generations carry the
// error and no buffer; they stay in history so the user can see what
// happened, but cannot be played or exported.
type Generation struct {
	ID        string
	Text      string
	Voice     string
	CreatedAt time.Time
	Buffer    *audio.Buffer
	Err       error
}

// Failed reports whether the generation produced no audio.
func (g *Generation) Failed() bool {
	return g.Err != nil
}

// Duration returns the audio length, zero for failed generations.
func (g *Generation) Duration() time.Duration {
	if g.Buffer == nil {
		return 0
	}
	return g.Buffer.Duration()
}

// History is an ordered in-memory store of generations, newest first.
type History struct {
	mu    sync.Mutex
	items []*Generation
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Add records a generation at the front of the list.
func (h *History) Add(gen *Generation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = append([]*Generation{gen}, h.items...)
}

// Items returns a snapshot of the history, newest first.
func (h *History) Items() []*Generation {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Generation(nil), h.items...)
}

// Get looks up a generation by ID.
func (h *History) Get(id string) (*Generation, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, gen := range h.items {
		if gen.ID == id {
			return gen, true
		}
	}
	return nil, false
}

// Len returns the number of stored generations.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Clear removes all generations.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = nil
}
