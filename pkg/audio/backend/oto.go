// ABOUTME: Oto-based audio backend implementation
// ABOUTME: Drives the system default output through a pull-based oto player
package backend

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Resonate-Protocol/enginesound-go/pkg/audio"
	"github.com/ebitengine/oto/v3"
)

// OtoDeviceName is the single device the oto backend exposes
const OtoDeviceName = "system default (oto)"

// OtoBackend exposes the platform default output as a single stereo device.
// oto allows one context per process, so the first opened format sticks.
type OtoBackend struct {
	mu         sync.Mutex
	otoCtx     *oto.Context
	sampleRate int
	channels   int
}

// NewOto creates a new oto backend; the native context is created lazily
func NewOto() Backend {
	return &OtoBackend{}
}

// Name returns "oto"
func (o *OtoBackend) Name() string {
	return Oto
}

// Devices returns the single default device
func (o *OtoBackend) Devices() ([]DeviceInfo, error) {
	return []DeviceInfo{{
		Name:              OtoDeviceName,
		HostAPI:           Oto,
		MaxOutputChannels: 2,
	}}, nil
}

// DefaultOutput always returns 0
func (o *OtoBackend) DefaultOutput() (int, error) {
	return 0, nil
}

// OpenOutput creates (or reuses) the oto context and a player pulling from fill
func (o *OtoBackend) OpenOutput(p Params, fill FillFunc) (Stream, error) {
	if p.DeviceIndex != 0 {
		return nil, fmt.Errorf("%w: %d", ErrDeviceNotFound, p.DeviceIndex)
	}

	ctx, err := o.context(p)
	if err != nil {
		return nil, err
	}

	reader := &fillReader{fill: fill, format: audio.NewFormat(p.SampleRate, p.Channels)}
	player := ctx.NewPlayer(reader)
	return &otoStream{player: player}, nil
}

func (o *OtoBackend) context(p Params) (*oto.Context, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// If already initialized with same format, reuse the existing context
	if o.otoCtx != nil {
		if o.sampleRate != p.SampleRate || o.channels != p.Channels {
			return nil, fmt.Errorf("oto context already initialized at %dHz %dch, cannot open %dHz %dch",
				o.sampleRate, o.channels, p.SampleRate, p.Channels)
		}
		return o.otoCtx, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   p.SampleRate,
		ChannelCount: p.Channels,
		Format:       oto.FormatSignedInt16LE,
	}
	if p.FramesPerBuffer > 0 && p.SampleRate > 0 {
		op.BufferSize = time.Duration(p.FramesPerBuffer) * time.Second / time.Duration(p.SampleRate)
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = p.SampleRate
	o.channels = p.Channels

	slog.Debug("oto context initialized", "format", audio.NewFormat(p.SampleRate, p.Channels))
	return ctx, nil
}

// Terminate suspends the oto context
func (o *OtoBackend) Terminate() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.otoCtx != nil {
		return o.otoCtx.Suspend()
	}
	return nil
}

// fillReader adapts a FillFunc to the io.Reader oto pulls from
type fillReader struct {
	fill    FillFunc
	format  audio.Format
	samples []int16
}

func (r *fillReader) Read(p []byte) (int, error) {
	frames := len(p) / r.format.FrameBytes()
	if frames == 0 {
		return 0, nil
	}

	n := frames * r.format.Channels
	if cap(r.samples) < n {
		r.samples = make([]int16, n)
	}
	samples := r.samples[:n]

	r.fill(samples)
	return audio.EncodePCM16(samples, p), nil
}

type otoStream struct {
	player *oto.Player
}

func (s *otoStream) Start() error {
	s.player.Play()
	return nil
}

func (s *otoStream) Stop() error {
	s.player.Pause()
	return nil
}

func (s *otoStream) Close() error {
	return s.player.Close()
}
