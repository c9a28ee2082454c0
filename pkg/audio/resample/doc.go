// ABOUTME: Audio resampling package
// ABOUTME: Provides sample rate conversion via linear interpolation
// Package resample converts audio buffers between sample rates.
//
// Playback devices lock to one output rate per process, so buffers
// decoded at a different rate pass through here before reaching the
// graph. Linear interpolation keeps speech quality acceptable without
// pulling in a full DSP dependency.
//
// Example:
//
//	out := resample.Buffer(buf, 48000)
package resample
