// ABOUTME: Tests for device catalog and selection
// ABOUTME: Tests filtering, the selection chain, listings and the prompt
package device

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/backend"
)

// testDevices mirrors a typical PipeWire desktop enumeration
func testDevices() []backend.DeviceInfo {
	return []backend.DeviceInfo{
		{Name: "pipewire", MaxInputChannels: 64, MaxOutputChannels: 64, DefaultSampleRate: 48000},
		{Name: "USB Microphone", MaxInputChannels: 1, DefaultSampleRate: 16000},
		{Name: "HDA Intel PCH: HDMI 0 (hw:0,3)", MaxOutputChannels: 8, DefaultSampleRate: 44100},
		{Name: "Scarlett 2i2 USB", MaxInputChannels: 2, MaxOutputChannels: 2, DefaultSampleRate: 96000},
		{Name: "default", MaxInputChannels: 64, MaxOutputChannels: 64, DefaultSampleRate: 44100},
	}
}

func snapshot(t *testing.T, devices []backend.DeviceInfo, def int) Snapshot {
	t.Helper()
	snap, err := NewCatalog(backend.NewDummy(devices, def), "pipewire").Snapshot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return snap
}

func TestListOutputDevices(t *testing.T) {
	cat := NewCatalog(backend.NewDummy(testDevices(), 4), "pipewire")

	devices, err := cat.ListOutputDevices()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []int{0, 2, 3, 4}
	if len(devices) != len(expected) {
		t.Fatalf("expected %d devices, got %d", len(expected), len(devices))
	}
	for i, d := range devices {
		if d.Index != expected[i] {
			t.Errorf("device %d: expected index %d, got %d", i, expected[i], d.Index)
		}
		if d.MaxOutputChannels <= 0 {
			t.Errorf("device %d: expected output channels, got %d", i, d.MaxOutputChannels)
		}
	}
}

func TestListOutputDevicesBackendFailure(t *testing.T) {
	b := backend.NewDummy(nil, -1)
	b.DevicesErr = errors.New("no such host API")

	_, err := NewCatalog(b, "pipewire").ListOutputDevices()
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestDefaultOutputIndex(t *testing.T) {
	tests := []struct {
		name          string
		devices       []backend.DeviceInfo
		def           int
		preferBackend bool
		expected      int
		ok            bool
	}{
		{"preferred name wins", testDevices(), 4, true, 0, true},
		{"preference disabled", testDevices(), 4, false, 4, true},
		{"no preferred match", testDevices()[1:], 3, true, 3, true},
		{"nothing known", testDevices()[1:], -1, true, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := NewCatalog(backend.NewDummy(tt.devices, tt.def), "PipeWire")
			idx, ok := cat.DefaultOutputIndex(tt.preferBackend)
			if ok != tt.ok || idx != tt.expected {
				t.Errorf("expected (%d, %v), got (%d, %v)", tt.expected, tt.ok, idx, ok)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	inputOnly := []backend.DeviceInfo{
		{Name: "USB Microphone", MaxInputChannels: 1},
		{Name: "Webcam", MaxInputChannels: 2},
	}

	tests := []struct {
		name     string
		devices  []backend.DeviceInfo
		def      int
		cfg      Config
		index    int
		rate     int
		channels int
		reason   string
	}{
		{
			name:    "numeric override beats preferred",
			devices: testDevices(), def: 4,
			cfg:   Config{Override: "3", PreferBackend: true, PreferredName: "pipewire", Channels: 2, SampleRate: 44100},
			index: 3, rate: 44100, channels: 2, reason: ReasonOverride,
		},
		{
			name:    "numeric override trusts input-only device",
			devices: testDevices(), def: 4,
			cfg:   Config{Override: "1", Channels: 2, SampleRate: 44100},
			index: 1, rate: 44100, channels: 2, reason: ReasonOverride,
		},
		{
			name:    "name override is case-insensitive",
			devices: testDevices(), def: 4,
			cfg:   Config{Override: "scarlett", PreferBackend: true, PreferredName: "pipewire", Channels: 2, SampleRate: 44100},
			index: 3, rate: 44100, channels: 2, reason: ReasonOverride,
		},
		{
			name:    "name override skips input-only match",
			devices: testDevices(), def: 4,
			cfg:   Config{Override: "usb", Channels: 2, SampleRate: 44100},
			index: 3, rate: 44100, channels: 2, reason: ReasonOverride,
		},
		{
			name:    "unknown override falls through to preferred",
			devices: testDevices(), def: 4,
			cfg:   Config{Override: "99", PreferBackend: true, PreferredName: "pipewire", Channels: 2, SampleRate: 44100},
			index: 0, rate: 48000, channels: 2, reason: ReasonPreferred,
		},
		{
			name:    "system default adopts its rate",
			devices: testDevices(), def: 2,
			cfg:   Config{PreferBackend: false, Channels: 2, SampleRate: 22050},
			index: 2, rate: 44100, channels: 2, reason: ReasonDefault,
		},
		{
			name:    "input-only default skipped",
			devices: testDevices(), def: 1,
			cfg:   Config{Channels: 2, SampleRate: 22050},
			index: 0, rate: 48000, channels: 2, reason: ReasonFirst,
		},
		{
			name:    "channels clamped to device",
			devices: testDevices(), def: 3,
			cfg:   Config{Channels: 6, SampleRate: 44100},
			index: 3, rate: 96000, channels: 2, reason: ReasonDefault,
		},
		{
			name:    "channels at least one",
			devices: testDevices(), def: 3,
			cfg:   Config{Channels: 0, SampleRate: 44100},
			index: 3, rate: 96000, channels: 1, reason: ReasonDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Select(snapshot(t, tt.devices, tt.def), tt.cfg)
			if sel == nil {
				t.Fatal("expected a selection, got nil")
			}
			if sel.Index != tt.index {
				t.Errorf("expected index %d, got %d", tt.index, sel.Index)
			}
			if sel.SampleRate != tt.rate {
				t.Errorf("expected sample rate %d, got %d", tt.rate, sel.SampleRate)
			}
			if sel.Channels != tt.channels {
				t.Errorf("expected %d channels, got %d", tt.channels, sel.Channels)
			}
			if sel.Reason != tt.reason {
				t.Errorf("expected reason %s, got %s", tt.reason, sel.Reason)
			}
		})
	}

	t.Run("no output devices", func(t *testing.T) {
		sel := Select(snapshot(t, inputOnly, 0), Config{PreferBackend: true, PreferredName: "pipewire", Channels: 2, SampleRate: 44100})
		if sel != nil {
			t.Errorf("expected no selection, got %+v", sel)
		}
	})

	t.Run("empty snapshot", func(t *testing.T) {
		if sel := Select(Snapshot{DefaultIndex: -1}, Config{Override: "0", Channels: 2}); sel != nil {
			t.Errorf("expected no selection, got %+v", sel)
		}
	})
}

func TestSelectIsDeterministic(t *testing.T) {
	snap := snapshot(t, testDevices(), 4)
	cfg := Config{Override: "hdmi", PreferBackend: true, PreferredName: "pipewire", Channels: 2, SampleRate: 44100}

	first := Select(snap, cfg)
	second := Select(snap, cfg)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical selections, got %+v and %+v", first, second)
	}
}

func TestClampChannels(t *testing.T) {
	tests := []struct {
		desired, maxOut, expected int
	}{
		{2, 64, 2},
		{6, 2, 2},
		{0, 2, 1},
		{-3, 2, 1},
		{4, 0, 2},
	}

	for _, tt := range tests {
		if got := ClampChannels(tt.desired, tt.maxOut); got != tt.expected {
			t.Errorf("ClampChannels(%d, %d): expected %d, got %d", tt.desired, tt.maxOut, tt.expected, got)
		}
	}
}

func TestWriteListing(t *testing.T) {
	devices := snapshot(t, testDevices(), 4).Outputs()

	var buf bytes.Buffer
	WriteListing(&buf, devices, 0)
	out := buf.String()

	if !strings.HasPrefix(out, "Available audio output devices:\n") {
		t.Errorf("missing header in %q", out)
	}
	if !strings.Contains(out, "  [ 0] pipewire - output channels: 64, default sample rate: 48000 (default)\n") {
		t.Errorf("missing default device line in %q", out)
	}
	if strings.Contains(out, "Microphone") {
		t.Errorf("input-only device listed in %q", out)
	}
	if strings.Count(out, "(default)") != 1 {
		t.Errorf("expected exactly one default marker in %q", out)
	}

	buf.Reset()
	WriteListing(&buf, nil, -1)
	if buf.String() != "No audio output devices found.\n" {
		t.Errorf("unexpected empty listing %q", buf.String())
	}
}

func TestWriteDebug(t *testing.T) {
	snap := snapshot(t, testDevices()[:2], 0)

	var buf bytes.Buffer
	WriteDebug(&buf, snap, &Selection{Index: 0})

	expected := "devices: \n<  0 pipewire (64 in, 64 out)\n   1 USB Microphone (1 in, 0 out)\nselect 0\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}

	buf.Reset()
	WriteDebug(&buf, snap, nil)
	if !strings.HasSuffix(buf.String(), "select none\n") {
		t.Errorf("expected 'select none', got %q", buf.String())
	}
}

func TestPrompt(t *testing.T) {
	devices := []Descriptor{
		{Index: 0, Name: "pipewire", MaxOutputChannels: 64},
		{Index: 2, Name: "HDMI", MaxOutputChannels: 8},
	}

	tests := []struct {
		name       string
		input      string
		defaultIdx int
		expected   int
		chosen     bool
		notice     bool
	}{
		{"empty accepts default", "\n", 2, 2, false, false},
		{"valid index", "0\n", 2, 0, true, false},
		{"invalid index reverts", "99\n", 2, 2, false, true},
		{"input-only index reverts", "1\n", 0, 0, false, true},
		{"garbage reverts", "hdmi\n", 2, 2, false, false},
		{"eof reverts", "", 0, 0, false, false},
		{"no default uses first", "\n", -1, 0, false, false},
		{"no trailing newline", "2", 0, 2, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			idx, chosen := Prompt(strings.NewReader(tt.input), &out, devices, tt.defaultIdx)
			if idx != tt.expected {
				t.Errorf("expected index %d, got %d", tt.expected, idx)
			}
			if chosen != tt.chosen {
				t.Errorf("expected chosen %v, got %v", tt.chosen, chosen)
			}
			if got := strings.Contains(out.String(), "invalid"); got != tt.notice {
				t.Errorf("expected notice %v, output %q", tt.notice, out.String())
			}
		})
	}
}

func TestParseChoiceInvalid(t *testing.T) {
	devices := []Descriptor{{Index: 0}, {Index: 2}}

	n, ok, err := ParseChoice("99", devices)
	if !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("expected ErrInvalidSelection, got %v", err)
	}
	if ok || n != 99 {
		t.Errorf("expected (99, false), got (%d, %v)", n, ok)
	}
}
