// ABOUTME: Audio encoder package writing buffers to container files
// ABOUTME: Provides Encoder interface and WAV, FLAC, Opus, Vorbis adapters
// Package encode writes processed PCM buffers to audio container files.
//
// One adapter exists per supported container:
//
//   - WAV:    PCM at 16-bit or 24-bit depth
//   - FLAC:   native FLAC stream at 16-bit or 24-bit depth
//   - Opus:   Ogg Opus, restricted to the Opus sample rates
//   - Vorbis: reported unavailable in this build
//
// Adapters accept int32 samples in the 24-bit range. Every adapter
// removes its destination file when encoding fails, so a failed stem
// never leaves a truncated file behind.
//
// Example:
//
//	enc, err := encode.New(encode.FormatWAV, "drums.wav", encode.Options{BitDepth: 16})
//	err = enc.Encode(buf)
package encode
