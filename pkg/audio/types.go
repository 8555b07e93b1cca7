// ABOUTME: Audio type definitions
// ABOUTME: Defines the output stream format and int16 clamping
package audio

import (
	"fmt"
	"math"
)

const (
	// 16-bit audio range constants
	MaxInt16 = math.MaxInt16
	MinInt16 = math.MinInt16

	// BitDepth is the only sample width the output stream uses
	BitDepth = 16
)

// Format describes an output stream format
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// NewFormat returns a 16-bit format for the given rate and channel count
func NewFormat(sampleRate, channels int) Format {
	return Format{
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   BitDepth,
	}
}

// FrameBytes returns the size of one interleaved frame in bytes
func (f Format) FrameBytes() int {
	return f.Channels * f.BitDepth / 8
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz %dch %d-bit", f.SampleRate, f.Channels, f.BitDepth)
}

// ClampInt16 saturates v into the int16 range, truncating any fraction
func ClampInt16(v float64) int16 {
	if math.IsNaN(v) {
		return 0
	}
	if v >= MaxInt16 {
		return MaxInt16
	}
	if v <= MinInt16 {
		return MinInt16
	}
	return int16(v)
}

// clampInt64 saturates v into the int16 range
func clampInt64(v int64) int16 {
	if v > MaxInt16 {
		return MaxInt16
	}
	if v < MinInt16 {
		return MinInt16
	}
	return int16(v)
}
