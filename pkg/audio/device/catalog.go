// ABOUTME: Device catalog over a backend query
// ABOUTME: Normalises, filters and snapshots output devices
package device

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/backend"
)

// ErrBackendUnavailable is returned when the backend device query fails.
// Callers treat it as "no devices known".
var ErrBackendUnavailable = errors.New("audio backend unavailable")

// Descriptor is an immutable device record
type Descriptor struct {
	// Index is the position in the unfiltered backend enumeration
	Index             int
	Name              string
	HostAPI           string
	MaxInputChannels  int
	MaxOutputChannels int
	// DefaultSampleRate is 0 when unknown
	DefaultSampleRate float64
}

// HasOutput reports whether the device can play audio
func (d Descriptor) HasOutput() bool {
	return d.MaxOutputChannels > 0
}

// NameContains reports whether name contains sub, ignoring case
func (d Descriptor) NameContains(sub string) bool {
	return sub != "" && strings.Contains(strings.ToLower(d.Name), strings.ToLower(sub))
}

// Snapshot is the full device table at one point in time
type Snapshot struct {
	// Devices holds every device, including input-only ones, in enumeration order
	Devices []Descriptor
	// DefaultIndex is the backend's default output, or -1
	DefaultIndex int
}

// Lookup returns the device at a backend index
func (s Snapshot) Lookup(index int) (Descriptor, bool) {
	if index < 0 || index >= len(s.Devices) {
		return Descriptor{}, false
	}
	return s.Devices[index], true
}

// Outputs returns the output-capable devices in enumeration order
func (s Snapshot) Outputs() []Descriptor {
	out := make([]Descriptor, 0, len(s.Devices))
	for _, d := range s.Devices {
		if d.HasOutput() {
			out = append(out, d)
		}
	}
	return out
}

// FirstOutputMatching returns the first output-capable device whose name contains sub
func (s Snapshot) FirstOutputMatching(sub string) (Descriptor, bool) {
	for _, d := range s.Devices {
		if d.HasOutput() && d.NameContains(sub) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Catalog enumerates devices through a backend
type Catalog struct {
	q             backend.Querier
	preferredName string
}

// NewCatalog creates a catalog; preferredName is the sound server substring to favour
func NewCatalog(q backend.Querier, preferredName string) *Catalog {
	return &Catalog{q: q, preferredName: preferredName}
}

// Snapshot queries the backend once
func (c *Catalog) Snapshot() (Snapshot, error) {
	infos, err := c.q.Devices()
	if err != nil {
		return Snapshot{DefaultIndex: -1}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	devices := make([]Descriptor, len(infos))
	for i, info := range infos {
		devices[i] = Descriptor{
			Index:             i,
			Name:              info.Name,
			HostAPI:           info.HostAPI,
			MaxInputChannels:  info.MaxInputChannels,
			MaxOutputChannels: max(info.MaxOutputChannels, 0),
			DefaultSampleRate: info.DefaultSampleRate,
		}
	}

	def, err := c.q.DefaultOutput()
	if err != nil || def < 0 || def >= len(devices) {
		def = -1
	}

	return Snapshot{Devices: devices, DefaultIndex: def}, nil
}

// ListOutputDevices returns output-capable devices stamped with their backend index
func (c *Catalog) ListOutputDevices() ([]Descriptor, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Outputs(), nil
}

// DefaultOutputIndex resolves the device to offer as default.
// With preferBackend set, the first output device matching the preferred
// name wins; otherwise the backend's own default is used.
func (c *Catalog) DefaultOutputIndex(preferBackend bool) (int, bool) {
	snap, err := c.Snapshot()
	if err != nil {
		return -1, false
	}
	return snap.DefaultOutputIndex(c.preferredName, preferBackend)
}

// DefaultOutputIndex applies the default policy to an existing snapshot
func (s Snapshot) DefaultOutputIndex(preferredName string, preferBackend bool) (int, bool) {
	if preferBackend {
		if d, ok := s.FirstOutputMatching(preferredName); ok {
			return d.Index, true
		}
	}
	if s.DefaultIndex >= 0 {
		return s.DefaultIndex, true
	}
	return -1, false
}
