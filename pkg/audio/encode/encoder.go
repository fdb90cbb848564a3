// ABOUTME: Encoder interface definition and adapter dispatch
// ABOUTME: Common interface for all container adapters plus failure cleanup
package encode

import (
	"fmt"
	"os"

	"github.com/untracker/untracker-go/pkg/audio"
)

// Encoder writes one processed buffer to its destination file.
type Encoder interface {
	// Encode writes the buffer. On failure the destination file is
	// removed rather than left truncated.
	Encode(buf *audio.Buffer) error
}

// New creates the adapter for the given format. The format must have
// passed Validate first; an unavailable format is rejected here as well.
func New(f Format, path string, opts Options) (Encoder, error) {
	switch f {
	case FormatWAV:
		return newWAV(path, opts)
	case FormatFLAC:
		return newFLAC(path, opts)
	case FormatOpus:
		return newOpus(path, opts)
	case FormatVorbis:
		return newVorbis(path, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

// writeFile creates path, runs write against it, and removes the file
// again when write fails. Close errors surface as encode failures too,
// since a short close means a corrupt container.
func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}
