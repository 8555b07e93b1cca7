//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package backend

// NewPortAudio reports that PortAudio was compiled out
func NewPortAudio() (Backend, error) {
	return nil, ErrNotEnabled
}
