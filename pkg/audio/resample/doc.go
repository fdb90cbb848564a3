// ABOUTME: Audio resampling package with selectable interpolation methods
// ABOUTME: Applies stereo separation, channel conversion and rate conversion
// Package resample converts rendered audio into the requested output layout.
//
// Processing order is fixed: stereo separation first (it is meaningless
// after a downmix), then channel-count conversion, then sample-rate
// conversion using one of four interpolation methods:
//
//   - nearest: picks the nearest source frame, lowest quality
//   - linear:  linear interpolation between neighbouring frames
//   - cubic:   4-point Hermite interpolation
//   - sinc:    band-limited polyphase windowed-sinc, highest quality
//
// Example:
//
//	p, err := resample.New(resample.Spec{
//	    TargetRate:        48000,
//	    TargetChannels:    2,
//	    Method:            resample.Sinc,
//	    SeparationPercent: 100,
//	})
//	out, err := p.Process(buf)
package resample
