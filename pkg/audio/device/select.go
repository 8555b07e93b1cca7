// ABOUTME: Output device selection policy
// ABOUTME: Resolves override, preferred, default and first-capable devices in order
package device

import (
	"strconv"
	"strings"
)

// Reasons recorded on a Selection
const (
	ReasonOverride  = "override"
	ReasonPreferred = "preferred"
	ReasonDefault   = "default"
	ReasonFirst     = "first-capable"
)

// DefaultChannels is used when a device reports no output channel count
const DefaultChannels = 2

// Config controls device selection
type Config struct {
	// Override is a device index or a case-insensitive name substring
	Override string
	// PreferBackend favours devices whose name contains PreferredName
	PreferBackend bool
	PreferredName string
	// Channels is the desired output channel count
	Channels int
	// SampleRate is used unless the chosen device reports its own
	SampleRate int
}

// Selection is the resolved output device and stream format
type Selection struct {
	Index      int
	Descriptor Descriptor
	SampleRate int
	Channels   int
	// Reason names the step that matched
	Reason string
}

type candidate struct {
	desc      Descriptor
	adoptRate bool
	reason    string
}

type step func(Snapshot, Config) (candidate, bool)

// steps run in order; the first match wins
var steps = []step{
	byOverride,
	byPreferredName,
	bySystemDefault,
	byFirstCapable,
}

// Select resolves the output device for cfg over snap.
// It returns nil when no device is usable.
func Select(snap Snapshot, cfg Config) *Selection {
	for _, s := range steps {
		c, ok := s(snap, cfg)
		if !ok {
			continue
		}

		rate := cfg.SampleRate
		if c.adoptRate && c.desc.DefaultSampleRate > 0 {
			rate = int(c.desc.DefaultSampleRate)
		}

		return &Selection{
			Index:      c.desc.Index,
			Descriptor: c.desc,
			SampleRate: rate,
			Channels:   ClampChannels(cfg.Channels, c.desc.MaxOutputChannels),
			Reason:     c.reason,
		}
	}
	return nil
}

// ClampChannels limits desired to [1, maxOut]; a zero maxOut counts as stereo
func ClampChannels(desired, maxOut int) int {
	if maxOut <= 0 {
		maxOut = DefaultChannels
	}
	return max(1, min(desired, maxOut))
}

// byOverride trusts a numeric index even without output capability.
// Name substrings must still match an output device.
func byOverride(snap Snapshot, cfg Config) (candidate, bool) {
	override := strings.TrimSpace(cfg.Override)
	if override == "" {
		return candidate{}, false
	}

	if idx, err := strconv.Atoi(override); err == nil {
		d, ok := snap.Lookup(idx)
		return candidate{desc: d, reason: ReasonOverride}, ok
	}

	d, ok := snap.FirstOutputMatching(override)
	return candidate{desc: d, reason: ReasonOverride}, ok
}

func byPreferredName(snap Snapshot, cfg Config) (candidate, bool) {
	if !cfg.PreferBackend {
		return candidate{}, false
	}
	d, ok := snap.FirstOutputMatching(cfg.PreferredName)
	return candidate{desc: d, adoptRate: true, reason: ReasonPreferred}, ok
}

func bySystemDefault(snap Snapshot, _ Config) (candidate, bool) {
	d, ok := snap.Lookup(snap.DefaultIndex)
	if !ok || !d.HasOutput() {
		return candidate{}, false
	}
	return candidate{desc: d, adoptRate: true, reason: ReasonDefault}, true
}

func byFirstCapable(snap Snapshot, _ Config) (candidate, bool) {
	for _, d := range snap.Devices {
		if d.HasOutput() {
			return candidate{desc: d, adoptRate: true, reason: ReasonFirst}, true
		}
	}
	return candidate{}, false
}
