// ABOUTME: In-memory audio backend
// ABOUTME: Fake devices and manually pumped streams for tests and CI
package backend

import (
	"fmt"
	"sync"
)

// DummyBackend is a backend with a fixed device table.
// Streams never run on their own; call Pump to drive the fill function.
type DummyBackend struct {
	mu sync.Mutex

	devices    []DeviceInfo
	defaultIdx int

	// DevicesErr, when set, is returned by Devices
	DevicesErr error
	// OpenErr, when set, is returned by OpenOutput
	OpenErr error

	streams    []*DummyStream
	terminated bool
}

// NewDummy creates a dummy backend; defaultIdx < 0 means no default device
func NewDummy(devices []DeviceInfo, defaultIdx int) *DummyBackend {
	return &DummyBackend{
		devices:    devices,
		defaultIdx: defaultIdx,
	}
}

// DefaultDummyDevices returns a small table resembling a Linux desktop
func DefaultDummyDevices() []DeviceInfo {
	return []DeviceInfo{
		{Name: "HDA Intel PCH: ALC3246 Analog (hw:0,0)", HostAPI: "ALSA", MaxInputChannels: 2, MaxOutputChannels: 2, DefaultSampleRate: 44100},
		{Name: "USB Microphone", HostAPI: "ALSA", MaxInputChannels: 1, DefaultSampleRate: 48000},
		{Name: "pipewire", HostAPI: "ALSA", MaxInputChannels: 64, MaxOutputChannels: 64, DefaultSampleRate: 48000},
		{Name: "default", HostAPI: "ALSA", MaxInputChannels: 64, MaxOutputChannels: 64, DefaultSampleRate: 48000},
	}
}

// Name returns "dummy"
func (d *DummyBackend) Name() string {
	return Dummy
}

// Devices returns a copy of the device table
func (d *DummyBackend) Devices() ([]DeviceInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.DevicesErr != nil {
		return nil, d.DevicesErr
	}
	out := make([]DeviceInfo, len(d.devices))
	copy(out, d.devices)
	return out, nil
}

// DefaultOutput returns the configured default index
func (d *DummyBackend) DefaultOutput() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.defaultIdx < 0 || d.defaultIdx >= len(d.devices) {
		return -1, ErrNoDefaultDevice
	}
	return d.defaultIdx, nil
}

// OpenOutput records the request and returns a pumpable stream
func (d *DummyBackend) OpenOutput(p Params, fill FillFunc) (Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.OpenErr != nil {
		return nil, d.OpenErr
	}
	if p.DeviceIndex < 0 || p.DeviceIndex >= len(d.devices) {
		return nil, fmt.Errorf("%w: %d", ErrDeviceNotFound, p.DeviceIndex)
	}
	if outs := d.devices[p.DeviceIndex].MaxOutputChannels; p.Channels < 1 || p.Channels > outs {
		return nil, fmt.Errorf("invalid channel count %d for device with %d outputs", p.Channels, outs)
	}

	s := &DummyStream{Params: p, fill: fill}
	d.streams = append(d.streams, s)
	return s, nil
}

// Streams returns every stream opened so far
func (d *DummyBackend) Streams() []*DummyStream {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*DummyStream(nil), d.streams...)
}

// Terminate marks the backend terminated
func (d *DummyBackend) Terminate() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.terminated = true
	return nil
}

// Terminated reports whether Terminate was called
func (d *DummyBackend) Terminated() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.terminated
}

// DummyStream is a stream driven by Pump
type DummyStream struct {
	Params Params

	mu      sync.Mutex
	fill    FillFunc
	running bool
	closed  bool
	closes  int
}

func (s *DummyStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("stream closed")
	}
	s.running = true
	return nil
}

func (s *DummyStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	return nil
}

func (s *DummyStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.closed = true
	s.closes++
	return nil
}

// Running reports whether the stream is started
func (s *DummyStream) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// CloseCount reports how many times Close reached the native stream
func (s *DummyStream) CloseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

// Pump runs one callback for frames frames and returns the interleaved output.
// It returns nil if the stream is not running.
func (s *DummyStream) Pump(frames int) []int16 {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		return nil
	}

	out := make([]int16, frames*s.Params.Channels)
	s.fill(out)
	return out
}
