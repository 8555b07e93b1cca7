// ABOUTME: Main application orchestration
// ABOUTME: Coordinates device selection, audio output, engine and throttle input
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/Resonate-Protocol/enginesound-go/internal/config"
	"github.com/Resonate-Protocol/enginesound-go/internal/engine"
	"github.com/Resonate-Protocol/enginesound-go/internal/logging"
	"github.com/Resonate-Protocol/enginesound-go/internal/metrics"
	"github.com/Resonate-Protocol/enginesound-go/internal/ui"
	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/backend"
	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/device"
	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/output"
	"github.com/Resonate-Protocol/enginesound-go/pkg/control"
)

// ErrAudioUnavailable is returned when RequireAudio is set and no device could be opened
var ErrAudioUnavailable = errors.New("no usable output device found or audio backend unavailable")

// Remediation is printed alongside ErrAudioUnavailable
const Remediation = "Try: plugging in an audio device, enabling PipeWire/PulseAudio/ALSA, or running on a system with sound."

// Options carries the process environment the app talks to
type Options struct {
	In  io.Reader
	Out io.Writer
	// Interactive is true when In is a terminal
	Interactive bool
	// OpenBackend defaults to backend.Open
	OpenBackend func(name string) (backend.Backend, error)
}

// App is the engine sound program
type App struct {
	cfg    *config.Config
	opts   Options
	logger *slog.Logger

	backend backend.Backend
	stream  output.Stream
	engine  engine.Engine
	keys    *ui.KeyListener
}

// New creates an app; nothing is opened until Run or SelectOutput
func New(cfg *config.Config, opts Options) *App {
	if opts.In == nil {
		opts.In = eofReader{}
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.OpenBackend == nil {
		opts.OpenBackend = backend.Open
	}
	return &App{
		cfg:    cfg,
		opts:   opts,
		logger: logging.Component("app"),
	}
}

// UseKeyboard reports whether throttle input comes from the terminal
func (a *App) UseKeyboard() bool {
	return a.opts.Interactive && !a.cfg.NoKeyboard
}

// Run sets up audio and blocks in the throttle loop until ctx is done
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	if a.cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, a.cfg.MetricsAddr); err != nil {
				a.logger.Warn("metrics endpoint failed", "error", err)
			}
		}()
	}

	sel, err := a.SelectOutput()
	if err != nil {
		return err
	}

	rate := a.cfg.SampleRate
	if sel != nil {
		rate = sel.SampleRate
	}
	eng, err := engine.New(engine.Config{SampleRate: rate, SampleFile: a.cfg.SampleFile})
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	a.engine = eng
	a.logger.Debug("engine constructed", "engine", eng.Name(), "sample_rate", rate)

	if err := a.OpenOutput(sel, eng); err != nil {
		return err
	}
	a.logger.Debug("audio initialized", "headless", a.cfg.Headless, "live", a.stream.Live())

	capture := control.Options{
		Out:    a.opts.Out,
		Logger: logging.Component("control"),
	}

	if a.UseKeyboard() {
		a.keys = ui.NewKeyListener(ui.Options{
			In:     a.opts.In,
			Out:    a.opts.Out,
			OnQuit: cancel,
		})
		capture.Source = a.keys
		a.keys.SetStatus(a.status(sel))
	}

	capture.Observe = func(v float64) {
		metrics.ObserveThrottle(v)
		metrics.SetRPM(eng.RPM())
		if a.keys != nil {
			a.keys.SetThrottle(v)
		}
	}

	fmt.Fprintln(a.opts.Out, "\nEngine is running...")
	err = control.Capture(ctx, eng, capture)
	fmt.Fprintln(a.opts.Out, "Exiting...")
	return err
}

func (a *App) status(sel *device.Selection) ui.StatusMsg {
	live := a.stream != nil && a.stream.Live()
	msg := ui.StatusMsg{Live: &live}
	if sel != nil {
		msg.Device = sel.Descriptor.Name
		msg.SampleRate = sel.SampleRate
		msg.Channels = sel.Channels
	}
	return msg
}

// SelectOutput initialises the backend and resolves the output device.
// A nil Selection with a nil error means audio is disabled.
func (a *App) SelectOutput() (*device.Selection, error) {
	if a.cfg.Headless {
		a.logger.Info("headless audio requested, skipping backend initialisation")
		return nil, nil
	}

	b, err := a.opts.OpenBackend(a.cfg.Backend)
	if err != nil {
		a.logger.Warn("audio backend unavailable", "backend", a.cfg.Backend, "error", err)
		if a.cfg.RequireAudio {
			return nil, fmt.Errorf("%w: %v. %s", ErrAudioUnavailable, err, Remediation)
		}
		return nil, nil
	}
	a.backend = b

	catalog := device.NewCatalog(b, a.cfg.PreferredName)
	snap, err := catalog.Snapshot()
	if err != nil {
		// Treat as no devices known; selection then yields nothing
		a.logger.Warn("device query failed", "backend", b.Name(), "error", err)
	}

	dcfg := device.Config{
		Override:      a.cfg.Device,
		PreferBackend: a.cfg.PreferPipewire,
		PreferredName: a.cfg.PreferredName,
		Channels:      a.cfg.Channels,
		SampleRate:    a.cfg.SampleRate,
	}

	// Only a typed index becomes the override. Accepting the default leaves
	// selection to the chain, which adopts the device's own sample rate.
	if idx, ok := a.chooseInteractively(snap, dcfg.Override == ""); ok {
		dcfg.Override = strconv.Itoa(idx)
	}

	sel := device.Select(snap, dcfg)

	if a.cfg.Debug {
		device.WriteDebug(a.opts.Out, snap, sel)
	}

	if sel == nil {
		a.logger.Warn("no output device matched", "backend", b.Name(), "devices", len(snap.Devices))
		if a.cfg.RequireAudio {
			return nil, fmt.Errorf("%w. %s", ErrAudioUnavailable, Remediation)
		}
		return nil, nil
	}

	fmt.Fprintf(a.opts.Out, "Selected output device: [%d] %s\n", sel.Index, sel.Descriptor.Name)
	if a.cfg.Device == "" {
		fmt.Fprintf(a.opts.Out, "Tip: set ENGINE_AUDIO_DEVICE=%d to choose this device directly.\n", sel.Index)
	}
	a.logger.Info("output device selected",
		"index", sel.Index,
		"name", sel.Descriptor.Name,
		"reason", sel.Reason,
		"sample_rate", sel.SampleRate,
		"channels", sel.Channels)

	return sel, nil
}

// chooseInteractively lists output devices and, when prompt is set and In is a
// terminal, asks for one. ok is true only when the user typed a valid index.
func (a *App) chooseInteractively(snap device.Snapshot, prompt bool) (int, bool) {
	outs := snap.Outputs()
	if len(outs) == 0 {
		fmt.Fprintln(a.opts.Out, "No audio output devices found, continuing without sound.")
		return -1, false
	}

	defIdx, ok := snap.DefaultOutputIndex(a.cfg.PreferredName, a.cfg.PreferPipewire)
	if !ok {
		defIdx = -1
	}
	device.WriteListing(a.opts.Out, outs, defIdx)

	if !prompt || !a.opts.Interactive {
		return -1, false
	}
	return device.Prompt(a.opts.In, a.opts.Out, outs, defIdx)
}

// OpenOutput opens and starts the stream for sel, degrading to a null stream
func (a *App) OpenOutput(sel *device.Selection, p output.Producer) error {
	stream := output.Open(sel, p, a.backend, output.Options{
		FramesPerBuffer: a.cfg.FramesPerBuffer,
		Logger:          logging.Component("output"),
		Observer:        metrics.OutputObserver{},
	})
	a.stream = stream.Start()

	if !a.stream.Live() && sel != nil && a.cfg.RequireAudio {
		return fmt.Errorf("%w: device %d (%s) could not be opened. %s",
			ErrAudioUnavailable, sel.Index, sel.Descriptor.Name, Remediation)
	}
	return nil
}

// Stream returns the current output stream, or nil before OpenOutput
func (a *App) Stream() output.Stream {
	return a.stream
}

// Close releases the UI, stream and backend; it is safe to call more than once
func (a *App) Close() {
	if a.keys != nil {
		a.keys.Close()
		a.keys = nil
	}
	if a.stream != nil {
		if err := a.stream.Close(); err != nil {
			a.logger.Warn("failed to close stream", "error", err)
		}
	}
	if a.backend != nil {
		if err := a.backend.Terminate(); err != nil {
			a.logger.Warn("failed to terminate backend", "error", err)
		}
		a.backend = nil
	}
}

// eofReader is an input with nothing to read
type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
