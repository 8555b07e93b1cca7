// ABOUTME: Decoder interface definition
// ABOUTME: Common interface and clip type for all audio decoders
package decode

import (
	"errors"
	"time"
)

// ErrEmptyClip is returned when a source decodes to zero samples
var ErrEmptyClip = errors.New("decoded clip contains no samples")

// Clip is a fully decoded mono sample
type Clip struct {
	SampleRate int
	Samples    []int16
}

// Duration returns the playback length at the clip's own rate
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}

// Decoder decodes audio in various formats to mono PCM samples
type Decoder interface {
	// Decode converts a complete encoded stream to a clip
	Decode(data []byte) (*Clip, error)
}
