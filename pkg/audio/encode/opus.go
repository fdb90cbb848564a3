// ABOUTME: Ogg Opus container adapter
// ABOUTME: Encodes 20ms Opus frames and muxes them into an Ogg stream
package encode

import (
	"fmt"
	"os"

	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4/pkg/media/oggwriter"
	"github.com/untracker/untracker-go/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

func init() {
	available[FormatOpus] = true
}

const (
	// maxOpusPacket is the largest encoded packet Opus can produce.
	maxOpusPacket = 4000
	// opusGranuleRate is the fixed 48 kHz granule clock of Ogg Opus.
	opusGranuleRate = 48000
)

// opusEncoder writes an Ogg Opus file.
type opusEncoder struct {
	path    string
	bitrate int // kbps
}

func newOpus(path string, opts Options) (Encoder, error) {
	if opts.OpusBitrate < 8 || opts.OpusBitrate > 512 {
		return nil, fmt.Errorf("%w: opus bitrate %d kbps out of range [8, 512]",
			audio.ErrInvalidParameter, opts.OpusBitrate)
	}
	return &opusEncoder{path: path, bitrate: opts.OpusBitrate}, nil
}

// Encode splits the buffer into 20ms frames, encodes each with libopus
// and muxes the packets into an Ogg stream. The final frame is padded
// with silence to a full frame boundary.
func (e *opusEncoder) Encode(buf *audio.Buffer) error {
	if !opusRates[buf.SampleRate] {
		return fmt.Errorf("%w: sample rate %d not supported by Opus",
			audio.ErrInvalidParameter, buf.SampleRate)
	}
	if buf.Channels != 1 && buf.Channels != 2 {
		return fmt.Errorf("%w: channel count %d (supported: 1, 2)",
			audio.ErrInvalidParameter, buf.Channels)
	}

	enc, err := opus.NewEncoder(buf.SampleRate, buf.Channels, opus.AppAudio)
	if err != nil {
		return fmt.Errorf("opus encoder: %w", err)
	}
	if err := enc.SetBitrate(e.bitrate * 1000); err != nil {
		return fmt.Errorf("opus bitrate: %w", err)
	}

	return writeFile(e.path, func(f *os.File) error {
		ogg, err := oggwriter.NewWith(f, uint32(buf.SampleRate), uint16(buf.Channels))
		if err != nil {
			return fmt.Errorf("ogg writer: %w", err)
		}

		frameSize := buf.SampleRate / 50 // 20ms frame
		pcm := make([]int16, frameSize*buf.Channels)
		packet := make([]byte, maxOpusPacket)

		var seq uint16
		var ts uint32
		for offset := 0; offset < len(buf.Samples); offset += len(pcm) {
			for i := range pcm {
				if offset+i < len(buf.Samples) {
					pcm[i] = audio.SampleToInt16(buf.Samples[offset+i])
				} else {
					pcm[i] = 0
				}
			}

			n, err := enc.Encode(pcm, packet)
			if err != nil {
				ogg.Close()
				return fmt.Errorf("opus encode: %w", err)
			}

			// The Ogg granule clock runs at 48 kHz regardless of the
			// encoding rate, so every 20ms frame advances it by 960.
			seq++
			ts += opusGranuleRate / 50
			err = ogg.WriteRTP(&rtp.Packet{
				Header: rtp.Header{
					Version:        2,
					SequenceNumber: seq,
					Timestamp:      ts,
				},
				Payload: packet[:n],
			})
			if err != nil {
				ogg.Close()
				return fmt.Errorf("ogg write: %w", err)
			}
		}

		if err := ogg.Close(); err != nil {
			return fmt.Errorf("ogg finalize: %w", err)
		}
		return nil
	})
}
