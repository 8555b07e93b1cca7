// ABOUTME: Recorded engine sample loop
// ABOUTME: Plays a decoded clip with pitch following the throttle
package engine

import (
	"math"
	"sync/atomic"

	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/decode"
	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/resample"
)

// maxSpeed is the playback speed at redline relative to the recording
const maxSpeed = 2.5

// SampleLoop loops a recording of an idling engine, speeding it up with the throttle
type SampleLoop struct {
	clip       *decode.Clip
	outputRate int
	throttle   throttle
	rpm        atomic.Uint64
	follower   rpmFollower
	resampler  *resample.Resampler
	buf        []int16
}

// NewSampleLoop plays clip at the output rate
func NewSampleLoop(clip *decode.Clip, outputRate int) *SampleLoop {
	s := &SampleLoop{
		clip:       clip,
		outputRate: outputRate,
		follower:   newRPMFollower(idleRPM, idleRPM*maxSpeed),
		resampler:  resample.New(clip.SampleRate, outputRate),
	}
	s.rpm.Store(math.Float64bits(idleRPM))
	return s
}

// Name returns "sample"
func (s *SampleLoop) Name() string {
	return "sample"
}

// Throttle sets the pedal position
func (s *SampleLoop) Throttle(value float64) {
	s.throttle.Store(value)
}

// RPM returns the current engine speed
func (s *SampleLoop) RPM() float64 {
	return math.Float64frombits(s.rpm.Load())
}

// GenAudio returns frames mono samples
func (s *SampleLoop) GenAudio(frames int) any {
	if cap(s.buf) < frames {
		s.buf = make([]int16, frames)
	}
	samples := s.buf[:frames]

	dt := float64(frames) / float64(s.outputRate)
	rpm := s.follower.advance(s.throttle.Load(), dt)
	s.rpm.Store(math.Float64bits(rpm))

	s.resampler.SetSpeed(rpm / idleRPM)
	s.resampler.Loop(s.clip.Samples, samples)
	return samples
}
