// ABOUTME: Live output stream over an audio backend
// ABOUTME: Converts producer output into interleaved frames in the callback
package output

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Resonate-Protocol/enginesound-go/pkg/audio"
	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/backend"
	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/device"
	"github.com/google/uuid"
)

// DefaultFramesPerBuffer is used when Options leaves it unset
const DefaultFramesPerBuffer = 512

// Options configures Open
type Options struct {
	FramesPerBuffer int
	Logger          *slog.Logger
	Observer        Observer
}

// Live is a stream backed by a real device
type Live struct {
	format   audio.Format
	producer Producer
	stream   backend.Stream
	logger   *slog.Logger
	observer Observer

	// mono is reused across callbacks; only the audio goroutine touches it
	mono []int16

	closeOnce sync.Once
	closeErr  error
}

// Open opens a stream for sel that pulls audio from p.
// It returns Null when sel or b is nil, or when the backend refuses the stream.
func Open(sel *device.Selection, p Producer, b backend.Backend, opts Options) Stream {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	if sel == nil || b == nil || p == nil {
		logger.Info("no usable output device, audio disabled")
		observer.NullStream("no device")
		return NewNull()
	}

	frames := opts.FramesPerBuffer
	if frames <= 0 {
		frames = DefaultFramesPerBuffer
	}

	id := uuid.New().String()
	l := &Live{
		format:   audio.NewFormat(sel.SampleRate, sel.Channels),
		producer: p,
		logger:   logger.With("stream_id", id, "device", sel.Descriptor.Name),
		observer: observer,
		mono:     make([]int16, frames),
	}

	stream, err := b.OpenOutput(backend.Params{
		DeviceIndex:     sel.Index,
		SampleRate:      sel.SampleRate,
		Channels:        sel.Channels,
		FramesPerBuffer: frames,
	}, l.fill)
	if err != nil {
		err = fmt.Errorf("%w %d (%s): %v", ErrDeviceOpen, sel.Index, sel.Descriptor.Name, err)
		logger.Warn("falling back to null stream", "error", err)
		observer.NullStream("open failed")
		return NewNull()
	}
	l.stream = stream

	l.logger.Info("output stream opened", "index", sel.Index, "format", l.format.String(), "backend", b.Name())
	return l
}

// Start begins callbacks. If the device refuses to start, the stream is
// closed and Null is returned.
func (l *Live) Start() Stream {
	if err := l.stream.Start(); err != nil {
		l.logger.Warn("failed to start stream, falling back to null stream", "error", err)
		l.Close()
		l.observer.NullStream("start failed")
		return NewNull()
	}
	return l
}

// Stop pauses callbacks
func (l *Live) Stop() Stream {
	if err := l.stream.Stop(); err != nil {
		l.logger.Warn("failed to stop stream", "error", err)
	}
	return l
}

// Close stops and releases the backend stream exactly once
func (l *Live) Close() error {
	l.closeOnce.Do(func() {
		if err := l.stream.Stop(); err != nil {
			l.logger.Debug("stop before close failed", "error", err)
		}
		l.closeErr = l.stream.Close()
		l.logger.Info("output stream closed")
	})
	return l.closeErr
}

// Live returns true
func (l *Live) Live() bool { return true }

// fill is the backend callback
func (l *Live) fill(out []int16) {
	defer func() {
		if r := recover(); r != nil {
			clear(out)
			l.observer.ProducerPanic()
			l.logger.Error("producer panicked, buffer silenced", "panic", r)
		}
	}()

	channels := l.format.Channels
	frames := len(out) / channels

	if cap(l.mono) < frames {
		l.mono = make([]int16, frames)
	}
	mono := l.mono[:frames]

	n := audio.ToMono(l.producer.GenAudio(frames), mono)
	clear(mono[n:])

	UpMix(mono, out, channels)
	l.observer.Callback(frames)
}

// UpMix copies each mono sample into every channel of the interleaved out buffer
func UpMix(mono []int16, out []int16, channels int) {
	if channels == 1 {
		copy(out, mono)
		return
	}
	for i, s := range mono {
		frame := out[i*channels : (i+1)*channels]
		for ch := range frame {
			frame[ch] = s
		}
	}
}
