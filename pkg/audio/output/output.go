// ABOUTME: Output stream interface definition
// ABOUTME: Producer contract, stream handle and null stream variant
package output

import "errors"

// ErrDeviceOpen wraps a backend's refusal to open the selected device
var ErrDeviceOpen = errors.New("failed to open output device")

// Producer generates mono audio.
// GenAudio returns frames samples as little-endian 16-bit bytes or as a
// numeric slice. It runs on the audio goroutine and must not block.
type Producer interface {
	GenAudio(frames int) any
}

// ProducerFunc adapts a function to Producer
type ProducerFunc func(frames int) any

// GenAudio calls f
func (f ProducerFunc) GenAudio(frames int) any {
	return f(frames)
}

// Stream is a handle over either a live backend stream or Null
type Stream interface {
	// Start begins playback and returns the handle to use from now on
	Start() Stream

	// Stop pauses playback
	Stop() Stream

	// Close releases the stream; further calls are no-ops
	Close() error

	// Live reports whether real audio is being produced
	Live() bool
}

// Observer receives stream events; implementations must be cheap and non-blocking
type Observer interface {
	Callback(frames int)
	ProducerPanic()
	NullStream(reason string)
}

type nopObserver struct{}

func (nopObserver) Callback(int)      {}
func (nopObserver) ProducerPanic()    {}
func (nopObserver) NullStream(string) {}

// Null is the stream used when no audio device is usable
type Null struct{}

// NewNull returns a null stream
func NewNull() Null {
	return Null{}
}

// Start does nothing
func (n Null) Start() Stream { return n }

// Stop does nothing
func (n Null) Stop() Stream { return n }

// Close does nothing
func (n Null) Close() error { return nil }

// Live returns false
func (n Null) Live() bool { return false }
