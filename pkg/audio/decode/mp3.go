// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes MP3 audio to mono int16 clips
package decode

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Resonate-Protocol/enginesound-go/pkg/audio"
	"github.com/hajimehoshi/go-mp3"
)

// MP3Decoder decodes MP3 audio
type MP3Decoder struct{}

// NewMP3 creates a new MP3 decoder
func NewMP3() *MP3Decoder {
	return &MP3Decoder{}
}

// Decode converts MP3 bytes to a mono clip
func (d *MP3Decoder) Decode(data []byte) (*Clip, error) {
	return decodeMP3(bytes.NewReader(data))
}

// LoadMP3File decodes the MP3 file at path
func LoadMP3File(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample: %w", err)
	}
	defer f.Close()

	return decodeMP3(f)
}

func decodeMP3(r io.Reader) (*Clip, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	// go-mp3 always produces 16-bit little-endian stereo
	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	stereo := make([]int16, len(pcm)/2)
	audio.DecodePCM16(pcm, stereo)

	mono := DownmixStereo(stereo)
	if len(mono) == 0 {
		return nil, ErrEmptyClip
	}

	return &Clip{
		SampleRate: decoder.SampleRate(),
		Samples:    mono,
	}, nil
}

// DownmixStereo averages interleaved left/right pairs into one channel
func DownmixStereo(stereo []int16) []int16 {
	mono := make([]int16, len(stereo)/2)
	for i := range mono {
		mono[i] = int16((int32(stereo[2*i]) + int32(stereo[2*i+1])) / 2)
	}
	return mono
}
