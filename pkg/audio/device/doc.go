// ABOUTME: Output device discovery and selection package
// ABOUTME: Catalogs backend devices and resolves which one to open
// Package device decides which output device the engine plays through.
//
// A Catalog takes an immutable Snapshot of the backend's devices. Select
// then walks a fixed chain over that snapshot:
//
//  1. explicit override (numeric index or case-insensitive name substring)
//  2. preferred sound server device (e.g. "pipewire")
//  3. the backend's default output
//  4. the first output-capable device
//
// Select is a pure function: the same snapshot and Config always give the
// same Selection. A nil Selection means no device matched and the caller
// should fall back to a null stream.
//
// Example:
//
//	cat := device.NewCatalog(b, "pipewire")
//	snap, err := cat.Snapshot()
//	sel := device.Select(snap, device.Config{PreferBackend: true, Channels: 2, SampleRate: 44100})
package device
