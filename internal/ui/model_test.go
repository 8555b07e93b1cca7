// ABOUTME: Tests for TUI model and key hold tracking
// ABOUTME: Tests press, autorepeat, release timeout, quit and rendering
package ui

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

func spaceKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

type changeRecorder struct {
	changes []bool
}

func (c *changeRecorder) record(held bool) {
	c.changes = append(c.changes, held)
}

func TestNewModel(t *testing.T) {
	model := NewModel(0, nil, nil)

	if model.held {
		t.Error("expected held to be false initially")
	}
	if model.holdTimeout != DefaultHoldTimeout {
		t.Errorf("expected default hold timeout %v, got %v", DefaultHoldTimeout, model.holdTimeout)
	}
	if model.throttle != 0 {
		t.Errorf("expected throttle 0, got %f", model.throttle)
	}
}

func TestKeyPressHolds(t *testing.T) {
	rec := &changeRecorder{}
	var m tea.Model = NewModel(time.Second, rec.record, nil)

	m, cmd := m.Update(spaceKey())
	if cmd == nil {
		t.Fatal("expected hold timer command")
	}
	if !m.(Model).held {
		t.Error("expected held after key press")
	}

	// Autorepeat does not report a second change
	m, _ = m.Update(spaceKey())
	if len(rec.changes) != 1 || !rec.changes[0] {
		t.Errorf("expected single press change, got %v", rec.changes)
	}
}

func TestStaleReleaseIgnored(t *testing.T) {
	rec := &changeRecorder{}
	var m tea.Model = NewModel(time.Second, rec.record, nil)

	m, _ = m.Update(runeKey('w'))
	firstGen := m.(Model).gen
	m, _ = m.Update(runeKey('w'))

	// Timer from the first press expires after the repeat arrived
	m, _ = m.Update(releaseMsg{gen: firstGen})
	if !m.(Model).held {
		t.Error("expected key still held after stale release")
	}

	m, _ = m.Update(releaseMsg{gen: m.(Model).gen})
	if m.(Model).held {
		t.Error("expected release after current timer")
	}

	expected := []bool{true, false}
	if len(rec.changes) != len(expected) {
		t.Fatalf("expected changes %v, got %v", expected, rec.changes)
	}
	for i := range expected {
		if rec.changes[i] != expected[i] {
			t.Errorf("change %d: expected %v, got %v", i, expected[i], rec.changes[i])
		}
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"q", runeKey('q')},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quit := false
			rec := &changeRecorder{}
			var m tea.Model = NewModel(time.Second, rec.record, func() { quit = true })

			m, _ = m.Update(spaceKey())
			_, cmd := m.Update(tt.key)

			if !quit {
				t.Error("expected quit callback")
			}
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
			if last := rec.changes[len(rec.changes)-1]; last {
				t.Error("expected pedal released on quit")
			}
		})
	}
}

func TestThrottleMsg(t *testing.T) {
	var m tea.Model = NewModel(0, nil, nil)

	m, _ = m.Update(ThrottleMsg(0.5))
	if m.(Model).throttle != 0.5 {
		t.Errorf("expected throttle 0.5, got %f", m.(Model).throttle)
	}

	view := m.View()
	if !strings.Contains(view, " 50%") {
		t.Errorf("expected 50%% in view, got %q", view)
	}
}

func TestStatusMsg(t *testing.T) {
	model := NewModel(0, nil, nil)

	live := true
	model.applyStatus(StatusMsg{Device: "pipewire", SampleRate: 48000, Channels: 2, Live: &live})

	if model.device != "pipewire" {
		t.Errorf("expected device 'pipewire', got '%s'", model.device)
	}
	if !strings.Contains(model.View(), "pipewire 48000Hz Stereo") {
		t.Errorf("expected output line in view, got %q", model.View())
	}

	silent := NewModel(0, nil, nil)
	if !strings.Contains(silent.View(), "silent") {
		t.Errorf("expected silent output line, got %q", silent.View())
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		value, max, width int
		expected          string
	}{
		{0, 100, 4, "░░░░"},
		{50, 100, 4, "██░░"},
		{100, 100, 4, "████"},
		{150, 100, 4, "████"},
	}

	for _, tt := range tests {
		if got := renderBar(tt.value, tt.max, tt.width); got != tt.expected {
			t.Errorf("renderBar(%d, %d, %d): expected %q, got %q", tt.value, tt.max, tt.width, tt.expected, got)
		}
	}
}

func TestChannelName(t *testing.T) {
	tests := []struct {
		channels int
		expected string
	}{
		{1, "Mono"},
		{2, "Stereo"},
		{6, "6ch"},
	}

	for _, tt := range tests {
		if got := channelName(tt.channels); got != tt.expected {
			t.Errorf("expected %s, got %s", tt.expected, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		length   int
		expected string
	}{
		{"short", "pipewire", 24, "pipewire"},
		{"exact", "abcdef", 6, "abcdef"},
		{"ascii", "HDA Intel PCH: ALC3246 Analog", 10, "HDA Int..."},
		{"multibyte", "Écouteurs été sans fil", 8, "Écout..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.length)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
			if !utf8.ValidString(got) {
				t.Errorf("expected valid UTF-8, got %q", got)
			}
		})
	}
}
