// ABOUTME: Audio backend package wrapping native sound APIs
// ABOUTME: Provides device enumeration and callback-driven output streams
// Package backend adapts native audio libraries to one small interface.
//
// Implementations:
//   - PortAudio: full device enumeration and per-device streams (build with -tags portaudio)
//   - Oto: the system default output only, available without cgo
//   - Dummy: in-memory devices for tests and CI
//
// Device records are normalised into DeviceInfo at this boundary; callers
// never see the native library's types. Streams are callback driven: the
// backend calls a FillFunc on its own goroutine whenever it needs audio.
//
// Example:
//
//	b, err := backend.Open(backend.Auto)
//	devices, err := b.Devices()
//	stream, err := b.OpenOutput(backend.Params{DeviceIndex: 0, SampleRate: 48000, Channels: 2}, fill)
//	err = stream.Start()
package backend
