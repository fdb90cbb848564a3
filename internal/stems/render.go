// ABOUTME: Renderer driving one full playback pass under a fixed mask
// ABOUTME: Collects chunked engine output into a single PCM buffer
package stems

import (
	"fmt"

	"github.com/untracker/untracker-go/internal/engine"
	"github.com/untracker/untracker-go/pkg/audio"
)

const (
	// renderChunkFrames is the fixed chunk size for engine reads.
	renderChunkFrames = 4096

	// maxRenderSeconds caps one render pass so pattern loops that never
	// reach end-of-song cannot produce an unbounded buffer.
	maxRenderSeconds = 3600
)

// Render drives a full playback pass under the given mask and returns
// the raw PCM buffer at the requested rate and layout. The pass is
// deterministic for a given module and mask: the mask is applied first,
// playback rewinds to the song start, and chunks are read until the
// engine reports end of song, which includes any fade or release tail
// after the last pattern event.
//
// An engine fault mid-render discards all partial output.
func Render(m engine.Module, mask Mask, rate, channels int) (*audio.Buffer, error) {
	if err := mask.Apply(m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	// Separation is applied downstream by the resampler; keep the
	// engine's own mixer neutral so it is never applied twice.
	m.SetStereoSeparation(100)
	m.Reset()

	chunk := make([]int16, renderChunkFrames*channels)
	maxFrames := rate * maxRenderSeconds

	var samples []int32
	frames := 0
	for frames < maxFrames {
		n, err := m.Read(rate, channels, chunk)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
		if n == 0 {
			break
		}

		for _, s := range chunk[:n*channels] {
			samples = append(samples, audio.SampleFromInt16(s))
		}
		frames += n
	}

	return &audio.Buffer{Samples: samples, SampleRate: rate, Channels: channels}, nil
}
