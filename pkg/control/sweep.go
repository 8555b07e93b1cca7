// ABOUTME: Synthetic throttle sweep
// ABOUTME: Triangle wave between 0 and 1 used when no keyboard is available
package control

// Sweep produces a triangle wave in [0, 1].
// It is owned by the polling goroutine and is not safe for concurrent use.
type Sweep struct {
	value     float64
	direction float64
	step      float64
}

// NewSweep starts at 0 rising by step per call
func NewSweep(step float64) *Sweep {
	return &Sweep{direction: 1.0, step: step}
}

// Next advances one step, reflecting at the bounds
func (s *Sweep) Next() float64 {
	s.value += s.direction * s.step
	if s.value >= 1.0 {
		s.value = 1.0
		s.direction = -1.0
	} else if s.value <= 0.0 {
		s.value = 0.0
		s.direction = 1.0
	}
	return s.value
}
