// ABOUTME: Tests for engine sound sources
// ABOUTME: Tests throttle handling, rpm smoothing and generated audio
package engine

import (
	"math"
	"testing"

	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/decode"
	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/output"
	"github.com/Resonate-Protocol/enginesound-go/pkg/control"
)

func TestEnginesImplementInterfaces(t *testing.T) {
	var _ Engine = (*Tone)(nil)
	var _ Engine = (*SampleLoop)(nil)
	var _ output.Producer = (*Tone)(nil)
	var _ control.Consumer = (*SampleLoop)(nil)
}

func TestNew(t *testing.T) {
	e, err := New(Config{SampleRate: 48000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Name() != "tone" {
		t.Errorf("expected tone engine, got %s", e.Name())
	}

	if _, err := New(Config{SampleRate: 0}); err == nil {
		t.Error("expected error for zero sample rate")
	}

	if _, err := New(Config{SampleRate: 48000, SampleFile: "/nonexistent/idle.mp3"}); err == nil {
		t.Error("expected error for missing sample file")
	}
}

func TestThrottleClamps(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},
		{-1, 0},
		{2, 1},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		var th throttle
		th.Store(tt.input)
		if got := th.Load(); got != tt.expected {
			t.Errorf("Store(%f): expected %f, got %f", tt.input, tt.expected, got)
		}
	}
}

func TestRPMFollower(t *testing.T) {
	f := newRPMFollower(1000, 7000)

	prev := f.rpm
	for i := 0; i < 100; i++ {
		rpm := f.advance(1.0, 0.01)
		if rpm < prev {
			t.Fatalf("expected rpm to rise under full throttle, %f -> %f", prev, rpm)
		}
		if rpm > 7000 {
			t.Fatalf("rpm %f exceeds redline", rpm)
		}
		prev = rpm
	}
	if prev < 6000 {
		t.Errorf("expected rpm near redline after 1s, got %f", prev)
	}

	for i := 0; i < 500; i++ {
		prev = f.advance(0, 0.01)
	}
	if math.Abs(prev-1000) > 10 {
		t.Errorf("expected rpm back near idle, got %f", prev)
	}
}

func TestFiringFrequency(t *testing.T) {
	if got := FiringFrequency(3000); got != 100 {
		t.Errorf("expected 100Hz at 3000rpm, got %f", got)
	}
}

func TestToneGenAudio(t *testing.T) {
	tone := NewTone(48000)

	samples, ok := tone.GenAudio(512).([]int16)
	if !ok {
		t.Fatal("expected []int16 from GenAudio")
	}
	if len(samples) != 512 {
		t.Fatalf("expected 512 samples, got %d", len(samples))
	}

	nonZero := false
	for _, s := range samples {
		if s != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Error("expected audible output at idle")
	}
}

func TestToneRevsWithThrottle(t *testing.T) {
	tone := NewTone(48000)
	idle := tone.RPM()

	tone.Throttle(1.0)
	for i := 0; i < 50; i++ {
		tone.GenAudio(480)
	}

	if tone.RPM() <= idle {
		t.Errorf("expected rpm above idle %f, got %f", idle, tone.RPM())
	}
}

func TestSampleLoopGenAudio(t *testing.T) {
	clip := &decode.Clip{SampleRate: 48000, Samples: []int16{10, 20, 30, 40}}
	loop := NewSampleLoop(clip, 48000)

	samples := loop.GenAudio(6).([]int16)
	expected := []int16{10, 20, 30, 40, 10, 20}
	for i := range expected {
		if samples[i] != expected[i] {
			t.Errorf("sample %d: expected %d, got %d", i, expected[i], samples[i])
		}
	}
}

func TestSampleLoopRevsWithThrottle(t *testing.T) {
	clip := &decode.Clip{SampleRate: 44100, Samples: make([]int16, 4410)}
	loop := NewSampleLoop(clip, 48000)

	loop.Throttle(1.0)
	for i := 0; i < 50; i++ {
		loop.GenAudio(480)
	}

	if loop.RPM() <= idleRPM {
		t.Errorf("expected rpm above idle, got %f", loop.RPM())
	}
}
