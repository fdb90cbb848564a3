// ABOUTME: WAV container adapter
// ABOUTME: Writes PCM buffers at 16-bit or 24-bit depth via go-audio
package encode

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/untracker/untracker-go/pkg/audio"
)

func init() {
	available[FormatWAV] = true
}

// wavEncoder writes a standard PCM WAV container.
type wavEncoder struct {
	path     string
	bitDepth int
}

func newWAV(path string, opts Options) (Encoder, error) {
	if opts.BitDepth != 16 && opts.BitDepth != 24 {
		return nil, fmt.Errorf("%w: bit depth %d (supported: 16, 24)",
			audio.ErrInvalidParameter, opts.BitDepth)
	}
	return &wavEncoder{path: path, bitDepth: opts.BitDepth}, nil
}

// Encode writes the buffer as a PCM WAV file.
func (e *wavEncoder) Encode(buf *audio.Buffer) error {
	return writeFile(e.path, func(f *os.File) error {
		enc := wav.NewEncoder(f, buf.SampleRate, e.bitDepth, buf.Channels, 1)

		data := make([]int, len(buf.Samples))
		if e.bitDepth == 16 {
			for i, s := range buf.Samples {
				data[i] = int(audio.SampleToInt16(s))
			}
		} else {
			for i, s := range buf.Samples {
				data[i] = int(s)
			}
		}

		ib := &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: buf.Channels,
				SampleRate:  buf.SampleRate,
			},
			Data:           data,
			SourceBitDepth: e.bitDepth,
		}

		if err := enc.Write(ib); err != nil {
			return fmt.Errorf("wav write: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("wav finalize: %w", err)
		}
		return nil
	})
}
