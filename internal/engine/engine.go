// ABOUTME: Engine abstraction and factory
// ABOUTME: Chooses a synthesized tone or a recorded sample loop
package engine

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/decode"
	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/output"
	"github.com/Resonate-Protocol/enginesound-go/pkg/control"
)

// Engine produces audio whose character follows the throttle
type Engine interface {
	output.Producer
	control.Consumer

	// RPM returns the current smoothed engine speed
	RPM() float64
	// Name describes the engine in logs
	Name() string
}

// Config selects and tunes an engine
type Config struct {
	// SampleRate is the output stream rate
	SampleRate int
	// SampleFile, when set, loops a recorded MP3 instead of synthesizing
	SampleFile string
}

// New creates an engine for the output rate.
// An empty SampleFile gives the synthesized tone.
func New(cfg Config) (Engine, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", cfg.SampleRate)
	}

	if cfg.SampleFile == "" {
		return NewTone(cfg.SampleRate), nil
	}

	clip, err := decode.LoadMP3File(cfg.SampleFile)
	if err != nil {
		return nil, err
	}
	slog.Info("engine sample loaded", "file", cfg.SampleFile, "rate", clip.SampleRate, "duration", clip.Duration())
	return NewSampleLoop(clip, cfg.SampleRate), nil
}

// throttle is a float64 shared between goroutines without locks
type throttle struct {
	bits atomic.Uint64
}

// Store clamps v into [0, 1]
func (t *throttle) Store(v float64) {
	if math.IsNaN(v) || v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	t.bits.Store(math.Float64bits(v))
}

func (t *throttle) Load() float64 {
	return math.Float64frombits(t.bits.Load())
}

// rpmFollower eases engine speed toward the throttle target
// rise and fall are the fraction of the gap closed per second.
type rpmFollower struct {
	idle    float64
	redline float64
	rise    float64
	fall    float64
	rpm     float64
}

func newRPMFollower(idle, redline float64) rpmFollower {
	return rpmFollower{idle: idle, redline: redline, rise: 3.0, fall: 1.5, rpm: idle}
}

// advance moves rpm toward the target for the throttle over dt seconds
func (f *rpmFollower) advance(throttle, dt float64) float64 {
	target := f.idle + throttle*(f.redline-f.idle)
	rate := f.fall
	if target > f.rpm {
		rate = f.rise
	}
	k := math.Min(1, rate*dt)
	f.rpm += (target - f.rpm) * k
	return f.rpm
}
