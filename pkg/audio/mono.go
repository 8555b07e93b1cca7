// ABOUTME: Producer output normalisation
// ABOUTME: Interprets raw bytes or numeric slices as mono int16 samples
package audio

// ToMono interprets data as single-channel 16-bit samples and copies them into dst.
//
// Accepted inputs are little-endian 16-bit PCM bytes and slices of int16, int32,
// int, float32 or float64 holding sample values in the int16 range. Values outside
// the range saturate. Unknown types and nil yield zero samples.
// Returns the number of samples written, never more than len(dst).
func ToMono(data any, dst []int16) int {
	switch v := data.(type) {
	case nil:
		return 0
	case []byte:
		return DecodePCM16(v, dst)
	case []int16:
		return copy(dst, v)
	case []int32:
		n := min(len(v), len(dst))
		for i := 0; i < n; i++ {
			dst[i] = clampInt64(int64(v[i]))
		}
		return n
	case []int:
		n := min(len(v), len(dst))
		for i := 0; i < n; i++ {
			dst[i] = clampInt64(int64(v[i]))
		}
		return n
	case []float32:
		n := min(len(v), len(dst))
		for i := 0; i < n; i++ {
			dst[i] = ClampInt16(float64(v[i]))
		}
		return n
	case []float64:
		n := min(len(v), len(dst))
		for i := 0; i < n; i++ {
			dst[i] = ClampInt16(v[i])
		}
		return n
	default:
		return 0
	}
}
