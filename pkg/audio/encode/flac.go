// ABOUTME: FLAC container adapter
// ABOUTME: Writes native FLAC streams at 16-bit or 24-bit depth via mewkiz/flac
package encode

import (
	"fmt"
	"os"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
	"github.com/untracker/untracker-go/pkg/audio"
)

func init() {
	available[FormatFLAC] = true
}

// flacBlockSize is the fixed frame length used for encoding. The final
// frame may be shorter.
const flacBlockSize = 4096

// flacEncoder writes a native FLAC stream.
type flacEncoder struct {
	path     string
	bitDepth int
}

func newFLAC(path string, opts Options) (Encoder, error) {
	if opts.BitDepth != 16 && opts.BitDepth != 24 {
		return nil, fmt.Errorf("%w: bit depth %d (supported: 16, 24)",
			audio.ErrInvalidParameter, opts.BitDepth)
	}
	return &flacEncoder{path: path, bitDepth: opts.BitDepth}, nil
}

// Encode writes the buffer as a FLAC file using verbatim subframes.
func (e *flacEncoder) Encode(buf *audio.Buffer) error {
	if buf.Channels != 1 && buf.Channels != 2 {
		return fmt.Errorf("%w: channel count %d (supported: 1, 2)",
			audio.ErrInvalidParameter, buf.Channels)
	}

	return writeFile(e.path, func(f *os.File) error {
		frames := buf.Frames()
		info := &meta.StreamInfo{
			BlockSizeMin:  flacBlockSize,
			BlockSizeMax:  flacBlockSize,
			SampleRate:    uint32(buf.SampleRate),
			NChannels:     uint8(buf.Channels),
			BitsPerSample: uint8(e.bitDepth),
			NSamples:      uint64(frames),
		}

		enc, err := flac.NewEncoder(f, info)
		if err != nil {
			return fmt.Errorf("flac encoder: %w", err)
		}

		channels := frame.ChannelsMono
		if buf.Channels == 2 {
			channels = frame.ChannelsLR
		}

		for frameNum, offset := 0, 0; offset < frames; frameNum, offset = frameNum+1, offset+flacBlockSize {
			n := frames - offset
			if n > flacBlockSize {
				n = flacBlockSize
			}

			subframes := make([]*frame.Subframe, buf.Channels)
			for ch := range subframes {
				samples := make([]int32, n)
				for i := 0; i < n; i++ {
					s := buf.Samples[(offset+i)*buf.Channels+ch]
					if e.bitDepth == 16 {
						s = int32(audio.SampleToInt16(s))
					}
					samples[i] = s
				}
				subframes[ch] = &frame.Subframe{
					SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
					Samples:   samples,
					NSamples:  n,
				}
			}

			fr := &frame.Frame{
				Header: frame.Header{
					HasFixedBlockSize: true,
					BlockSize:         uint16(n),
					SampleRate:        uint32(buf.SampleRate),
					Channels:          channels,
					BitsPerSample:     uint8(e.bitDepth),
					Num:               uint64(frameNum),
				},
				Subframes: subframes,
			}

			if err := enc.WriteFrame(fr); err != nil {
				enc.Close()
				return fmt.Errorf("flac frame %d: %w", frameNum, err)
			}
		}

		if err := enc.Close(); err != nil {
			return fmt.Errorf("flac finalize: %w", err)
		}
		return nil
	})
}
