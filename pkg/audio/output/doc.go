// ABOUTME: Audio output stream package
// ABOUTME: Callback-driven streams with mono up-mix and a null fallback
// Package output opens the engine's real-time output stream.
//
// A Producer supplies mono 16-bit samples on demand. Open wires it to a
// backend stream whose callback converts the producer's output, up-mixes it
// into every channel and hands it to the device.
//
// Open never fails. When there is no device, or the backend refuses the
// stream, it returns Null, whose lifecycle methods do nothing. Callers chain
// lifecycle calls without checking which variant they hold:
//
//	stream := output.Open(sel, engine, b, output.Options{}).Start()
//	defer stream.Close()
package output
