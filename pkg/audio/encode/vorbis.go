// ABOUTME: Vorbis adapter placeholder for builds without vorbis support
// ABOUTME: Reports the format unavailable at configuration-validation time
package encode

import (
	"fmt"
)

// No Vorbis encoder is compiled into this build, so the format is
// reported unavailable and rejected by Validate before any render
// starts. The constructor exists so dispatch stays uniform.

func newVorbis(path string, opts Options) (Encoder, error) {
	return nil, fmt.Errorf("%w: vorbis support not enabled in this build", ErrUnsupportedFormat)
}
