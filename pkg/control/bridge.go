// ABOUTME: Input bridge between a key listener and the polling loop
// ABOUTME: Holds the shared throttle state behind a mutex and runs the poll loop
package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultInterval is the polling period
	DefaultInterval = 20 * time.Millisecond

	// DefaultStep is the simulator's change per poll
	DefaultStep = 0.02
)

// ErrInputUnavailable is returned by key sources that cannot attach to an input device
var ErrInputUnavailable = errors.New("keyboard input unavailable")

// Consumer receives the throttle value once per poll
type Consumer interface {
	Throttle(value float64)
}

// ConsumerFunc adapts a function to Consumer
type ConsumerFunc func(value float64)

// Throttle calls f
func (f ConsumerFunc) Throttle(value float64) {
	f(value)
}

// KeySource reports key hold state changes.
// Listen blocks, calling onChange from its own goroutine, and only returns on failure
// or when the source shuts down.
type KeySource interface {
	Listen(onChange func(held bool)) error
}

// Options configures Capture
type Options struct {
	// Source selects listener mode; nil selects the simulator
	Source KeySource
	// Interval defaults to DefaultInterval
	Interval time.Duration
	// Step is the simulator increment, defaults to DefaultStep
	Step float64
	// Out receives the startup banner; nil prints nothing
	Out io.Writer
	// Observe is called with every value sent to the consumer
	Observe func(value float64)
	Logger  *slog.Logger
}

// Bridge owns the control state written by the listener
type Bridge struct {
	mu    sync.Mutex
	value float64
}

// SetHeld records a key press (1.0) or release (0.0)
func (b *Bridge) SetHeld(held bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if held {
		b.value = 1.0
	} else {
		b.value = 0.0
	}
}

// dispatch sends the current value to c while holding the lock
func (b *Bridge) dispatch(c Consumer) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.Throttle(b.value)
	return b.value
}

// Capture polls the throttle and forwards it to c until ctx is done.
// Cancellation is the normal exit and returns nil.
func Capture(ctx context.Context, c Consumer, opts Options) error {
	if c == nil {
		return fmt.Errorf("control: nil consumer")
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	step := opts.Step
	if step <= 0 {
		step = DefaultStep
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observe := opts.Observe
	if observe == nil {
		observe = func(float64) {}
	}

	var poll func() float64

	if opts.Source != nil {
		printBanner(opts.Out, "Press Ctrl+C to exit, any key to rev\n")

		bridge := &Bridge{}
		go func() {
			if err := opts.Source.Listen(bridge.SetHeld); err != nil {
				logger.Warn("key listener stopped", "error", err)
			}
		}()
		poll = func() float64 { return bridge.dispatch(c) }
		logger.Debug("input capture started", "mode", "listener", "interval", interval)
	} else {
		printBanner(opts.Out, "Keyboard input unavailable (no X/GUI). Running headless demo.",
			"Press Ctrl+C to exit. Auto-sweeping throttle...")

		sweep := NewSweep(step)
		poll = func() float64 {
			v := sweep.Next()
			c.Throttle(v)
			return v
		}
		logger.Debug("input capture started", "mode", "simulator", "interval", interval, "step", step)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		observe(poll())

		select {
		case <-ctx.Done():
			logger.Debug("input capture stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func printBanner(w io.Writer, lines ...string) {
	if w == nil {
		return
	}
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}
