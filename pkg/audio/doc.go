// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Buffer type and sample conversion functions
// Package audio provides fundamental audio types and utilities for the
// stem rendering pipeline.
//
// This package defines the core type passed between pipeline stages:
//   - Buffer: Interleaved PCM samples plus their sample rate and channel count
//
// It also provides utilities for converting between different sample formats:
//   - 16-bit ↔ 24-bit conversions
//   - int32 ↔ packed byte conversions
//   - amplitude clamping to the 24-bit range
//
// Samples are carried as int32 values left-justified in the 24-bit range,
// so 16-bit engine output and 24-bit encoder input share one representation.
//
// Example:
//
//	buf := &audio.Buffer{
//	    Samples:    samples,
//	    SampleRate: 44100,
//	    Channels:   2,
//	}
//
//	// Convert 16-bit sample to 24-bit range
//	sample24 := audio.SampleFromInt16(sample16)
package audio
