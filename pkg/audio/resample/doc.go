// ABOUTME: Sample rate conversion package
// ABOUTME: Provides linear interpolation resampling over looped mono buffers
// Package resample provides sample rate conversion for mono 16-bit audio.
//
// The Resampler reads a source buffer with linear interpolation and a
// playback ratio that can change between calls. It is used to play a
// recorded sample at the output device rate while its pitch follows the
// throttle.
//
// Example:
//
//	r := resample.New(44100, 48000)
//	r.SetSpeed(1.5)
//	n := r.Loop(source, out)
package resample
