// ABOUTME: Spectrum analysis package for live playback visualization
// ABOUTME: Provides the Analyser node, FFT, and the cadence-bounded Sampler
// Package analysis produces frequency-domain snapshots of playing audio.
//
// The Analyser sits beside the playback path as a read-only tap: the
// graph pushes mono-mixed samples into its ring buffer, and each
// ByteFrequencyData call runs a Blackman-windowed FFT over the most
// recent window, smooths magnitudes against the prior frame, and maps
// them onto bytes over a fixed decibel range. Frame width is always
// half the transform size.
//
// The Sampler drives that at display cadence from its own goroutine,
// emitting frames on a drop-on-full channel while a session plays.
//
// Example:
//
//	analyser, err := analysis.NewAnalyser(analysis.DefaultFFTSize)
//	sampler := analysis.NewSampler(analyser, 30)
//	sampler.Start()
//	for frame := range sampler.Frames() { ... }
package analysis
