//go:build portaudio

// ABOUTME: PortAudio backend implementation
// ABOUTME: Enumerates devices and opens callback streams using PortAudio
package backend

import (
	"fmt"
	"os"

	"github.com/gordonklaus/portaudio"
)

// PortAudioBackend wraps an initialised PortAudio library
type PortAudioBackend struct {
	devices []*portaudio.DeviceInfo
}

// NewPortAudio initialises PortAudio
func NewPortAudio() (Backend, error) {
	// Never let PortAudio's JACK host API spawn a server as a side effect
	if _, ok := os.LookupEnv("JACK_NO_START_SERVER"); !ok {
		os.Setenv("JACK_NO_START_SERVER", "1")
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	return &PortAudioBackend{}, nil
}

// Name returns "portaudio"
func (p *PortAudioBackend) Name() string {
	return PortAudio
}

func (p *PortAudioBackend) refresh() ([]*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	p.devices = devices
	return devices, nil
}

// Devices returns all devices in PortAudio enumeration order
func (p *PortAudioBackend) Devices() ([]DeviceInfo, error) {
	raw, err := p.refresh()
	if err != nil {
		return nil, err
	}

	devices := make([]DeviceInfo, len(raw))
	for i, info := range raw {
		devices[i] = DeviceInfo{
			Name:              info.Name,
			MaxInputChannels:  info.MaxInputChannels,
			MaxOutputChannels: info.MaxOutputChannels,
			DefaultSampleRate: info.DefaultSampleRate,
		}
		if info.HostApi != nil {
			devices[i].HostAPI = info.HostApi.Name
		}
	}
	return devices, nil
}

// DefaultOutput returns the enumeration position of PortAudio's default output
func (p *PortAudioBackend) DefaultOutput() (int, error) {
	def, err := portaudio.DefaultOutputDevice()
	if err != nil || def == nil {
		return -1, ErrNoDefaultDevice
	}

	raw, err := p.refresh()
	if err != nil {
		return -1, err
	}
	for i, info := range raw {
		if info == def || sameDevice(info, def) {
			return i, nil
		}
	}
	return -1, ErrNoDefaultDevice
}

func sameDevice(a, b *portaudio.DeviceInfo) bool {
	if a.Name != b.Name {
		return false
	}
	if a.HostApi == nil || b.HostApi == nil {
		return a.HostApi == b.HostApi
	}
	return a.HostApi.Name == b.HostApi.Name
}

// OpenOutput opens a 16-bit output-only stream on the indexed device
func (p *PortAudioBackend) OpenOutput(params Params, fill FillFunc) (Stream, error) {
	raw := p.devices
	if raw == nil {
		var err error
		if raw, err = p.refresh(); err != nil {
			return nil, err
		}
	}
	if params.DeviceIndex < 0 || params.DeviceIndex >= len(raw) {
		return nil, fmt.Errorf("%w: %d", ErrDeviceNotFound, params.DeviceIndex)
	}

	sp := portaudio.HighLatencyParameters(nil, raw[params.DeviceIndex])
	sp.Output.Channels = params.Channels
	sp.SampleRate = float64(params.SampleRate)
	sp.FramesPerBuffer = params.FramesPerBuffer

	stream, err := portaudio.OpenStream(sp, func(out []int16) {
		fill(out)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open stream: %w", err)
	}

	return &portAudioStream{stream: stream}, nil
}

// Terminate releases PortAudio
func (p *PortAudioBackend) Terminate() error {
	return portaudio.Terminate()
}

type portAudioStream struct {
	stream *portaudio.Stream
}

func (s *portAudioStream) Start() error {
	return s.stream.Start()
}

func (s *portAudioStream) Stop() error {
	return s.stream.Stop()
}

func (s *portAudioStream) Close() error {
	return s.stream.Close()
}
