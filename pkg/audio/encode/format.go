// ABOUTME: Output container format enumeration and validation
// ABOUTME: Parses format names and enforces per-format option bounds
package encode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/untracker/untracker-go/pkg/audio"
)

// ErrUnsupportedFormat indicates a container format that is not compiled
// into this build. It is raised at configuration-validation time, never
// mid-render.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Format identifies an output container.
type Format int

const (
	FormatWAV Format = iota
	FormatVorbis
	FormatOpus
	FormatFLAC
)

// available is populated by each compiled-in adapter's init.
var available = map[Format]bool{}

// opusRates are the only sample rates the Opus codec accepts.
var opusRates = map[int]bool{
	8000:  true,
	12000: true,
	16000: true,
	24000: true,
	48000: true,
}

// Options carries per-format quality settings.
type Options struct {
	BitDepth      int // WAV and FLAC: 16 or 24
	OpusBitrate   int // kbps
	VorbisQuality int // 0-10
}

// String returns the CLI name of the format.
func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatVorbis:
		return "vorbis"
	case FormatOpus:
		return "opus"
	case FormatFLAC:
		return "flac"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Ext returns the standard filename extension including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatWAV:
		return ".wav"
	case FormatVorbis:
		return ".ogg"
	case FormatOpus:
		return ".opus"
	case FormatFLAC:
		return ".flac"
	default:
		return ""
	}
}

// Available reports whether the adapter for f is compiled into this build.
func (f Format) Available() bool {
	return available[f]
}

// ParseFormat parses a CLI format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "wav":
		return FormatWAV, nil
	case "vorbis", "ogg":
		return FormatVorbis, nil
	case "opus":
		return FormatOpus, nil
	case "flac":
		return FormatFLAC, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Validate checks format availability and option bounds against the
// target sample rate. It runs before any render pass starts.
func Validate(f Format, sampleRate int, opts Options) error {
	if !f.Available() {
		return fmt.Errorf("%w: %s support not enabled in this build", ErrUnsupportedFormat, f)
	}

	switch f {
	case FormatWAV, FormatFLAC:
		if opts.BitDepth != 16 && opts.BitDepth != 24 {
			return fmt.Errorf("%w: bit depth %d (supported: 16, 24)",
				audio.ErrInvalidParameter, opts.BitDepth)
		}
	case FormatOpus:
		if !opusRates[sampleRate] {
			return fmt.Errorf("%w: sample rate %d not supported by Opus (use 8000, 12000, 16000, 24000 or 48000)",
				audio.ErrInvalidParameter, sampleRate)
		}
		if opts.OpusBitrate < 8 || opts.OpusBitrate > 512 {
			return fmt.Errorf("%w: opus bitrate %d kbps out of range [8, 512]",
				audio.ErrInvalidParameter, opts.OpusBitrate)
		}
	case FormatVorbis:
		if opts.VorbisQuality < 0 || opts.VorbisQuality > 10 {
			return fmt.Errorf("%w: vorbis quality %d out of range [0, 10]",
				audio.ErrInvalidParameter, opts.VorbisQuality)
		}
	}

	return nil
}
