// ABOUTME: Spectrum analyser node with windowed FFT and byte magnitudes
// ABOUTME: Ring buffer of recent samples producing smoothed frequency frames
package analysis

import (
	"fmt"
	"math"
	"sync"
)

// DefaultFFTSize is the transform size used when none is configured.
const DefaultFFTSize = 256

// Byte frequency mapping range and inter-frame smoothing, matching the
// browser analyser node this mirrors.
const (
	minDecibels           = -100.0
	maxDecibels           = -30.0
	smoothingTimeConstant = 0.8
)

// Frame is one spectrum snapshot: one unsigned magnitude per frequency
// bin, 0 (at or below the floor) to 255 (at or above the ceiling).
type Frame []byte

// Analyser observes the samples flowing through the playback graph and
// produces frequency-domain magnitude snapshots. It never alters the
// audio path: the graph pushes copies of the mono-mixed samples it
// plays, and consumers pull frames at their own cadence.
type Analyser struct {
	mu       sync.Mutex
	fftSize  int
	ring     []float32
	pos      int
	window   []float64
	smoothed []float64
}

// NewAnalyser creates an analyser with the given transform size, which
// must be a power of two of at least 32.
func NewAnalyser(fftSize int) (*Analyser, error) {
	if fftSize < 32 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("invalid fft size: %d (must be a power of two >= 32)", fftSize)
	}
	return newAnalyser(fftSize), nil
}

// NewDefaultAnalyser creates an analyser with DefaultFFTSize.
func NewDefaultAnalyser() *Analyser {
	return newAnalyser(DefaultFFTSize)
}

func newAnalyser(fftSize int) *Analyser {
	a := &Analyser{
		fftSize:  fftSize,
		ring:     make([]float32, fftSize),
		window:   make([]float64, fftSize),
		smoothed: make([]float64, fftSize/2),
	}

	// Blackman window
	for i := range a.window {
		phase := 2 * math.Pi * float64(i) / float64(fftSize)
		a.window[i] = 0.42 - 0.5*math.Cos(phase) + 0.08*math.Cos(2*phase)
	}

	return a
}

// FrequencyBinCount returns the number of bins per frame: fftSize/2.
func (a *Analyser) FrequencyBinCount() int {
	return a.fftSize / 2
}

// Push appends mono samples to the analysis window. Only the most
// recent fftSize samples are retained.
func (a *Analyser) Push(samples []float32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, s := range samples {
		a.ring[a.pos] = s
		a.pos = (a.pos + 1) % a.fftSize
	}
}

// ByteFrequencyData computes a spectrum frame over the current window:
// Blackman-windowed FFT, per-bin magnitude smoothing against the prior
// frame, then decibel mapping onto bytes.
func (a *Analyser) ByteFrequencyData() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := a.fftSize
	x := make([]complex128, n)
	for i := 0; i < n; i++ {
		// Oldest sample first
		s := a.ring[(a.pos+i)%n]
		x[i] = complex(float64(s)*a.window[i], 0)
	}

	fft(x)

	frame := make(Frame, n/2)
	for k := 0; k < n/2; k++ {
		mag := math.Hypot(real(x[k]), imag(x[k])) / float64(n)
		a.smoothed[k] = smoothingTimeConstant*a.smoothed[k] + (1-smoothingTimeConstant)*mag

		db := 20 * math.Log10(a.smoothed[k])
		scaled := 255 * (db - minDecibels) / (maxDecibels - minDecibels)
		switch {
		case scaled < 0 || math.IsNaN(scaled):
			frame[k] = 0
		case scaled > 255:
			frame[k] = 255
		default:
			frame[k] = byte(scaled)
		}
	}

	return frame
}

// Reset clears the sample window and smoothing state so subsequent
// frames are flat until new samples arrive.
func (a *Analyser) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.ring {
		a.ring[i] = 0
	}
	for i := range a.smoothed {
		a.smoothed[i] = 0
	}
	a.pos = 0
}
