// ABOUTME: 16-bit little-endian PCM byte conversion
// ABOUTME: Decodes bytes to int16 samples and encodes them back
package audio

import "encoding/binary"

// DecodePCM16 converts little-endian 16-bit PCM bytes into dst.
// A trailing odd byte is ignored. Returns the number of samples written.
func DecodePCM16(data []byte, dst []int16) int {
	n := len(data) / 2
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return n
}

// EncodePCM16 writes samples into dst as little-endian 16-bit PCM.
// Returns the number of bytes written.
func EncodePCM16(samples []int16, dst []byte) int {
	n := len(samples)
	if n > len(dst)/2 {
		n = len(dst) / 2
	}
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(samples[i]))
	}
	return n * 2
}
