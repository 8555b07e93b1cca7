// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines the output Format and 16-bit sample conversion helpers
// Package audio provides fundamental audio types and utilities for 16-bit PCM output.
//
// This package defines core types used throughout enginesound:
//   - Format: Describes an output stream format (sample rate, channels, bit depth)
//
// It also provides utilities for converting producer output into samples:
//   - little-endian 16-bit PCM bytes ↔ int16
//   - numeric slices of any common element type → mono int16 (ToMono)
//
// Example:
//
//	mono := make([]int16, frames)
//	n := audio.ToMono(engine.GenAudio(frames), mono)
package audio
