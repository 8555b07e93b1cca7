// ABOUTME: Bubbletea model for the engine TUI
// ABOUTME: Tracks key hold state and renders the throttle gauge
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultHoldTimeout covers typical terminal autorepeat start delays
const DefaultHoldTimeout = 600 * time.Millisecond

// ThrottleMsg updates the gauge
type ThrottleMsg float64

// StatusMsg updates the header
type StatusMsg struct {
	Device     string
	SampleRate int
	Channels   int
	Live       *bool
}

// releaseMsg fires when a hold timer expires
type releaseMsg struct {
	gen int
}

// Model represents the TUI state
type Model struct {
	// Key state
	held        bool
	gen         int
	holdTimeout time.Duration
	onChange    func(held bool)
	onQuit      func()

	// Engine
	throttle float64

	// Output
	device     string
	sampleRate int
	channels   int
	live       bool

	// Dimensions
	width int
}

// NewModel creates a new TUI model
func NewModel(holdTimeout time.Duration, onChange func(bool), onQuit func()) Model {
	if holdTimeout <= 0 {
		holdTimeout = DefaultHoldTimeout
	}
	if onChange == nil {
		onChange = func(bool) {}
	}
	if onQuit == nil {
		onQuit = func() {}
	}
	return Model{
		holdTimeout: holdTimeout,
		onChange:    onChange,
		onQuit:      onQuit,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case releaseMsg:
		if msg.gen == m.gen && m.held {
			m.held = false
			m.onChange(false)
		}
	case ThrottleMsg:
		m.throttle = float64(msg)
	case StatusMsg:
		m.applyStatus(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		if m.held {
			m.held = false
			m.onChange(false)
		}
		m.onQuit()
		return m, tea.Quit
	}

	// Every press or autorepeat restarts the hold timer
	m.gen++
	if !m.held {
		m.held = true
		m.onChange(true)
	}
	gen := m.gen
	return m, tea.Tick(m.holdTimeout, func(time.Time) tea.Msg {
		return releaseMsg{gen: gen}
	})
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Device != "" {
		m.device = msg.Device
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
	}
	if msg.Live != nil {
		m.live = *msg.Live
	}
}

// View renders the TUI
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString(m.renderThrottle())
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	output := "silent (no audio device)"
	if m.live {
		output = fmt.Sprintf("%s %dHz %s", truncate(m.device, 24), m.sampleRate, channelName(m.channels))
	}
	return fmt.Sprintf(`┌─ Engine ─────────────────────────────────────────────┐
│ Output: %-44s │
├──────────────────────────────────────────────────────┤
`, output)
}

func (m Model) renderThrottle() string {
	pedal := "released"
	if m.held {
		pedal = "held"
	}
	pct := int(m.throttle*100 + 0.5)
	return fmt.Sprintf("│ Throttle: [%s] %3d%% %-14s │\n", renderBar(pct, 100, 20), pct, pedal)
}

func (m Model) renderHelp() string {
	return `│ hold any key: rev   q/ctrl+c: quit                   │
└──────────────────────────────────────────────────────┘
`
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length-3]) + "..."
}

func channelName(channels int) string {
	switch channels {
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}
