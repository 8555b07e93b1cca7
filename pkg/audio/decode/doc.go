// ABOUTME: Audio decoder package for engine samples
// ABOUTME: Provides the Decoder interface and an MP3 implementation
// Package decode turns encoded audio into mono 16-bit samples.
//
// Supports: MP3
//
// Decoders down-mix to a single channel because the output stream
// consumes mono producer audio and up-mixes it itself.
//
// Example:
//
//	clip, err := decode.LoadMP3File("idle.mp3")
//	fmt.Println(clip.SampleRate, len(clip.Samples))
package decode
