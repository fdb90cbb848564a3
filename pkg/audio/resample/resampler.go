// ABOUTME: Resampling processor converting buffers to the output layout
// ABOUTME: Implements separation, channel conversion and four rate methods
package resample

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/interp"
	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/untracker/untracker-go/pkg/audio"
)

// Processor converts rendered buffers to a fixed output layout.
type Processor struct {
	spec Spec
}

// New creates a processor, validating the spec eagerly.
func New(spec Spec) (*Processor, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Processor{spec: spec}, nil
}

// Spec returns the validated output layout.
func (p *Processor) Spec() Spec {
	return p.spec
}

// Process converts buf to the target rate and channel layout.
// Stage order matters: separation operates on the stereo image, so it
// runs before any downmix, which runs before rate conversion.
func (p *Processor) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if buf == nil || buf.Channels < 1 {
		return nil, fmt.Errorf("%w: nil or channel-less input buffer", ErrInvalidParameter)
	}

	out := applySeparation(buf, p.spec.SeparationPercent)
	out = convertChannels(out, p.spec.TargetChannels)
	return convertRate(out, p.spec.TargetRate, p.spec.Method)
}

// applySeparation scales the side (left minus right) signal by percent/100.
// 0 collapses to mono-identical channels, 100 is the identity, 200 doubles
// the stereo width. Mono input is returned unchanged.
func applySeparation(buf *audio.Buffer, percent int) *audio.Buffer {
	if buf.Channels != 2 || percent == 100 {
		return buf
	}

	scale := float64(percent) / 100.0
	samples := make([]int32, len(buf.Samples))
	for i := 0; i+1 < len(buf.Samples); i += 2 {
		l := float64(buf.Samples[i])
		r := float64(buf.Samples[i+1])
		mid := (l + r) / 2
		side := (l - r) / 2 * scale
		samples[i] = audio.ClampSample(mid + side)
		samples[i+1] = audio.ClampSample(mid - side)
	}

	return &audio.Buffer{Samples: samples, SampleRate: buf.SampleRate, Channels: 2}
}

// convertChannels downmixes stereo to mono by averaging, or expands mono
// to stereo by duplication.
func convertChannels(buf *audio.Buffer, target int) *audio.Buffer {
	if buf.Channels == target {
		return buf
	}

	frames := buf.Frames()
	samples := make([]int32, frames*target)

	switch {
	case buf.Channels == 2 && target == 1:
		for i := 0; i < frames; i++ {
			l := int64(buf.Samples[i*2])
			r := int64(buf.Samples[i*2+1])
			samples[i] = int32((l + r) / 2)
		}
	case buf.Channels == 1 && target == 2:
		for i := 0; i < frames; i++ {
			samples[i*2] = buf.Samples[i]
			samples[i*2+1] = buf.Samples[i]
		}
	default:
		// Upstream validation restricts both sides to 1 or 2 channels.
		return buf
	}

	return &audio.Buffer{Samples: samples, SampleRate: buf.SampleRate, Channels: target}
}

// convertRate interpolates each channel independently to the target rate.
// Output length is round(frames * target/source), within one frame of the
// mathematically exact scaled length for every method.
func convertRate(buf *audio.Buffer, targetRate int, method Method) (*audio.Buffer, error) {
	if buf.SampleRate == targetRate {
		return buf, nil
	}
	if buf.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: source sample rate %d", ErrInvalidParameter, buf.SampleRate)
	}

	frames := buf.Frames()
	outFrames := int(math.Round(float64(frames) * float64(targetRate) / float64(buf.SampleRate)))
	out := &audio.Buffer{
		Samples:    make([]int32, outFrames*buf.Channels),
		SampleRate: targetRate,
		Channels:   buf.Channels,
	}
	if frames == 0 || outFrames == 0 {
		out.Samples = nil
		return out, nil
	}

	for ch := 0; ch < buf.Channels; ch++ {
		src := deinterleave(buf, ch)

		var dst []float64
		var err error
		switch method {
		case Nearest:
			dst = resampleNearest(src, outFrames)
		case Linear:
			dst = resampleLinear(src, outFrames)
		case Cubic:
			dst = resampleCubic(src, outFrames)
		case Sinc:
			dst, err = resampleSinc(src, buf.SampleRate, targetRate, outFrames)
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: unknown resample method %d", ErrInvalidParameter, int(method))
		}

		for i, v := range dst {
			out.Samples[i*buf.Channels+ch] = audio.ClampSample(v)
		}
	}

	return out, nil
}

func deinterleave(buf *audio.Buffer, ch int) []float64 {
	frames := buf.Frames()
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		out[i] = float64(buf.Samples[i*buf.Channels+ch])
	}
	return out
}

func resampleNearest(src []float64, outFrames int) []float64 {
	step := float64(len(src)) / float64(outFrames)
	out := make([]float64, outFrames)
	for i := range out {
		idx := int(float64(i)*step + 0.5)
		if idx >= len(src) {
			idx = len(src) - 1
		}
		out[i] = src[idx]
	}
	return out
}

func resampleLinear(src []float64, outFrames int) []float64 {
	step := float64(len(src)) / float64(outFrames)
	out := make([]float64, outFrames)
	for i := range out {
		pos := float64(i) * step
		idx := int(pos)
		if idx >= len(src)-1 {
			out[i] = src[len(src)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = src[idx] + frac*(src[idx+1]-src[idx])
	}
	return out
}

func resampleCubic(src []float64, outFrames int) []float64 {
	step := float64(len(src)) / float64(outFrames)
	out := make([]float64, outFrames)
	for i := range out {
		pos := float64(i) * step
		idx := int(pos)
		frac := pos - float64(idx)
		out[i] = interp.Hermite4(frac,
			src[clampIndex(idx-1, len(src))],
			src[clampIndex(idx, len(src))],
			src[clampIndex(idx+1, len(src))],
			src[clampIndex(idx+2, len(src))])
	}
	return out
}

// resampleSinc runs the polyphase band-limited resampler over the whole
// channel, then pads or trims the tail so the duration contract holds.
func resampleSinc(src []float64, srcRate, dstRate, outFrames int) ([]float64, error) {
	r, err := dspresample.NewForRates(float64(srcRate), float64(dstRate),
		dspresample.WithQuality(dspresample.QualityBest))
	if err != nil {
		return nil, fmt.Errorf("%w: sinc resampler %d -> %d Hz: %v",
			ErrInvalidParameter, srcRate, dstRate, err)
	}

	out := r.Process(src)
	if len(out) > outFrames {
		out = out[:outFrames]
	}
	for len(out) < outFrames {
		out = append(out, 0)
	}
	return out, nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
