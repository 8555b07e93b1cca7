// ABOUTME: Synthesized engine tone
// ABOUTME: Generates a firing-frequency harmonic series that follows engine speed
package engine

import (
	"math"
	"sync/atomic"

	"github.com/Resonate-Protocol/enginesound-go/pkg/audio"
)

const (
	idleRPM    = 850.0
	redlineRPM = 7000.0
	cylinders  = 4
)

// harmonics are relative amplitudes of multiples of the firing frequency
var harmonics = []float64{1.0, 0.55, 0.3, 0.18, 0.1}

// Tone is a four-stroke engine approximated by a harmonic series
type Tone struct {
	sampleRate int
	throttle   throttle
	rpm        atomic.Uint64

	// audio goroutine state
	follower rpmFollower
	phase    float64
	gain     float64
	buf      []int16
}

// NewTone creates a tone engine for the output rate
func NewTone(sampleRate int) *Tone {
	t := &Tone{
		sampleRate: sampleRate,
		follower:   newRPMFollower(idleRPM, redlineRPM),
		gain:       0.35,
	}
	t.rpm.Store(math.Float64bits(idleRPM))
	return t
}

// Name returns "tone"
func (t *Tone) Name() string {
	return "tone"
}

// Throttle sets the pedal position
func (t *Tone) Throttle(value float64) {
	t.throttle.Store(value)
}

// RPM returns the current engine speed
func (t *Tone) RPM() float64 {
	return math.Float64frombits(t.rpm.Load())
}

// FiringFrequency is the combustion rate in Hz at rpm
func FiringFrequency(rpm float64) float64 {
	// Each cylinder fires once every two revolutions
	return rpm / 60.0 * cylinders / 2.0
}

// GenAudio returns frames mono samples
func (t *Tone) GenAudio(frames int) any {
	if cap(t.buf) < frames {
		t.buf = make([]int16, frames)
	}
	samples := t.buf[:frames]

	dt := float64(frames) / float64(t.sampleRate)
	rpm := t.follower.advance(t.throttle.Load(), dt)
	t.rpm.Store(math.Float64bits(rpm))

	freq := FiringFrequency(rpm)
	step := 2 * math.Pi * freq / float64(t.sampleRate)
	// Louder and brighter under load
	load := 0.6 + 0.4*t.throttle.Load()

	for i := range samples {
		var v float64
		for h, amp := range harmonics {
			v += amp * math.Sin(float64(h+1)*t.phase)
		}
		samples[i] = audio.ClampInt16(v / 2.1 * audio.MaxInt16 * t.gain * load)

		// Keep phase bounded to avoid precision loss
		t.phase += step
		if t.phase > 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}

	return samples
}
