// ABOUTME: Application orchestration package
// ABOUTME: Wires config, device selection, output stream, engine and input capture
// Package app runs the engine sound program.
//
// Startup resolves an output device (listing and prompting when attached to
// a terminal), opens the stream, then blocks in the throttle polling loop
// until the context is cancelled. Audio failures degrade to silence unless
// RequireAudio is set.
package app
