// ABOUTME: Engine sound sources
// ABOUTME: Throttle-driven producers for the output stream
// Package engine provides the sound producers the output stream plays.
//
// Each Engine is both an output.Producer (GenAudio runs on the audio
// goroutine) and a control.Consumer (Throttle runs on the polling
// goroutine). The throttle crosses goroutines through an atomic value so
// the audio callback never takes a lock.
package engine
