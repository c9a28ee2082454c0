// ABOUTME: Playback graph package enforcing single-session semantics
// ABOUTME: Describes the source, analyser, gain and sink node layout
// Package graph routes decoded audio to the output device through a
// fixed signal path: a per-session source node feeds an analyser tap,
// a software gain stage, and finally the platform sink.
//
// At most one session is playing at any instant. Start tears down the
// previous source synchronously before connecting the new one, Stop
// on a stale handle is a no-op, and every session exposes a Done
// channel that closes exactly once however playback ends.
//
// Example:
//
//	g := graph.NewGraph(output.NewOto())
//	session, err := g.Start(buf)
//	<-session.Done()
package graph
