// ABOUTME: Terminal key listener
// ABOUTME: Runs the bubbletea program and reports key holds to the input bridge
package ui

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Resonate-Protocol/enginesound-go/pkg/control"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures a KeyListener
type Options struct {
	In          io.Reader
	Out         io.Writer
	HoldTimeout time.Duration
	// OnQuit is called when the user presses q or ctrl+c
	OnQuit func()
	// AltScreen takes over the whole terminal
	AltScreen bool
}

// KeyListener is a control.KeySource backed by the terminal
type KeyListener struct {
	opts Options

	// updates is drained by a forwarder so callers never wait on the UI
	updates chan tea.Msg

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

var _ control.KeySource = (*KeyListener)(nil)

// NewKeyListener creates a listener; the terminal is untouched until Listen
func NewKeyListener(opts Options) *KeyListener {
	return &KeyListener{
		opts:    opts,
		updates: make(chan tea.Msg, 8),
	}
}

// Listen runs the TUI until the user quits or Close is called
func (k *KeyListener) Listen(onChange func(held bool)) error {
	progOpts := []tea.ProgramOption{
		// The app owns SIGINT handling; in raw mode ctrl+c arrives as a key
		tea.WithoutSignalHandler(),
	}
	if k.opts.In != nil {
		progOpts = append(progOpts, tea.WithInput(k.opts.In))
	}
	if k.opts.Out != nil {
		progOpts = append(progOpts, tea.WithOutput(k.opts.Out))
	}
	if k.opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	model := NewModel(k.opts.HoldTimeout, onChange, k.opts.OnQuit)

	k.mu.Lock()
	if k.program != nil {
		k.mu.Unlock()
		return errors.New("key listener already running")
	}
	k.program = tea.NewProgram(model, progOpts...)
	k.done = make(chan struct{})
	p, done := k.program, k.done
	k.mu.Unlock()

	defer close(done)
	go k.forward(p, done)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("%w: %v", control.ErrInputUnavailable, err)
	}
	return nil
}

// SetThrottle updates the gauge
func (k *KeyListener) SetThrottle(v float64) {
	k.send(ThrottleMsg(v))
}

// SetStatus updates the header
func (k *KeyListener) SetStatus(s StatusMsg) {
	k.send(s)
}

// send drops the update if the UI is behind
func (k *KeyListener) send(msg tea.Msg) {
	select {
	case k.updates <- msg:
	default:
	}
}

func (k *KeyListener) forward(p *tea.Program, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-k.updates:
			p.Send(msg)
		}
	}
}

// Close stops the TUI and waits for the terminal to be restored
func (k *KeyListener) Close() {
	k.mu.Lock()
	p, done := k.program, k.done
	k.mu.Unlock()
	if p == nil {
		return
	}

	p.Quit()
	select {
	case <-done:
	case <-time.After(time.Second):
		p.Kill()
	}
}
