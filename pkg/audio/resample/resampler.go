// ABOUTME: Linear resampler for mono 16-bit audio
// ABOUTME: Converts sample rates and varies playback speed over a looped source
package resample

import "github.com/Resonate-Protocol/enginesound-go/pkg/audio"

// Resampler performs linear interpolation to convert between sample rates.
// It is not safe for concurrent use.
type Resampler struct {
	inputRate  int
	outputRate int
	speed      float64
	ratio      float64
	position   float64
}

// New creates a new resampler playing at normal speed
func New(inputRate, outputRate int) *Resampler {
	r := &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		speed:      1.0,
	}
	r.updateRatio()
	return r
}

// SetSpeed scales playback speed; 2.0 plays twice as fast and an octave higher.
// Non-positive values are ignored.
func (r *Resampler) SetSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	r.speed = speed
	r.updateRatio()
}

// Speed returns the current playback speed
func (r *Resampler) Speed() float64 {
	return r.speed
}

func (r *Resampler) updateRatio() {
	r.ratio = float64(r.inputRate) / float64(r.outputRate) * r.speed
}

// Loop fills output completely, wrapping around source as often as needed.
// The read position carries over between calls. An empty source produces silence.
func (r *Resampler) Loop(source []int16, output []int16) int {
	n := len(source)
	if n == 0 {
		clear(output)
		return len(output)
	}

	for i := range output {
		idx := int(r.position)
		frac := r.position - float64(idx)
		next := idx + 1
		if next >= n {
			next = 0
		}
		output[i] = interpolate(source[idx], source[next], frac)

		r.position += r.ratio
		for r.position >= float64(n) {
			r.position -= float64(n)
		}
	}

	return len(output)
}

func interpolate(a, b int16, frac float64) int16 {
	return audio.ClampInt16(float64(a)*(1.0-frac) + float64(b)*frac)
}
