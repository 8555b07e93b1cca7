// ABOUTME: Audio backend interface definition
// ABOUTME: Common interface and device records for all native backends
package backend

import (
	"errors"
	"fmt"
	"log/slog"
)

// Backend names accepted by Open
const (
	Auto      = "auto"
	PortAudio = "portaudio"
	Oto       = "oto"
	Dummy     = "dummy"
)

var (
	// ErrNoBackend is returned when no native backend could be initialised
	ErrNoBackend = errors.New("no audio backend available")

	// ErrNoDefaultDevice is returned when the backend reports no default output
	ErrNoDefaultDevice = errors.New("backend reports no default output device")

	// ErrDeviceNotFound is returned for an index outside the enumeration
	ErrDeviceNotFound = errors.New("device index not found")

	// ErrNotEnabled is returned by backends compiled out of this build
	ErrNotEnabled = errors.New("PortAudio support not enabled (build with -tags portaudio)")
)

// DeviceInfo is a backend device normalised at the enumeration boundary
type DeviceInfo struct {
	Name              string
	HostAPI           string
	MaxInputChannels  int
	MaxOutputChannels int
	// DefaultSampleRate is 0 when the backend does not report one
	DefaultSampleRate float64
}

// Params describes an output stream request
type Params struct {
	DeviceIndex     int
	SampleRate      int
	Channels        int
	FramesPerBuffer int
}

// FillFunc fills out with interleaved 16-bit frames.
// It runs on the backend's real-time goroutine and must not block.
type FillFunc func(out []int16)

// Stream is a native output stream
type Stream interface {
	// Start begins invoking the fill function; it does not block
	Start() error

	// Stop halts callbacks
	Stop() error

	// Close releases native resources
	Close() error
}

// Querier enumerates devices
type Querier interface {
	// Devices returns every device in enumeration order; a device's index is its position
	Devices() ([]DeviceInfo, error)

	// DefaultOutput returns the index of the system default output device
	DefaultOutput() (int, error)
}

// Opener opens output streams
type Opener interface {
	// OpenOutput opens a 16-bit output stream on the given device
	OpenOutput(p Params, fill FillFunc) (Stream, error)
}

// Backend represents a native audio library
type Backend interface {
	Querier
	Opener

	// Name identifies the backend in logs
	Name() string

	// Terminate releases the library
	Terminate() error
}

// Open initialises the named backend.
// Auto tries PortAudio first and falls back to Oto.
func Open(name string) (Backend, error) {
	switch name {
	case "", Auto:
		b, err := NewPortAudio()
		if err == nil {
			return b, nil
		}
		slog.Debug("portaudio unavailable, trying oto", "error", err)
		return NewOto(), nil
	case PortAudio:
		b, err := NewPortAudio()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoBackend, err)
		}
		return b, nil
	case Oto:
		return NewOto(), nil
	case Dummy:
		return NewDummy(DefaultDummyDevices(), 0), nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q", name)
	}
}
