// ABOUTME: Resampling specification and parameter validation
// ABOUTME: Defines interpolation methods and output layout bounds
package resample

import (
	"fmt"
	"strings"

	"github.com/untracker/untracker-go/pkg/audio"
)

// ErrInvalidParameter is the shared invalid-parameter sentinel.
var ErrInvalidParameter = audio.ErrInvalidParameter

const (
	// MinRate is the lowest accepted output sample rate.
	MinRate = 8000
	// MaxRate is the highest accepted output sample rate.
	MaxRate = 192000
	// MaxSeparation is the widest accepted stereo separation percentage.
	MaxSeparation = 200
)

// Method selects the rate-conversion interpolation algorithm.
type Method int

const (
	Nearest Method = iota
	Linear
	Cubic
	Sinc
)

// String returns the CLI name of the method.
func (m Method) String() string {
	switch m {
	case Nearest:
		return "nearest"
	case Linear:
		return "linear"
	case Cubic:
		return "cubic"
	case Sinc:
		return "sinc"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod parses a CLI method name.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "nearest":
		return Nearest, nil
	case "linear":
		return Linear, nil
	case "cubic":
		return Cubic, nil
	case "sinc":
		return Sinc, nil
	default:
		return 0, fmt.Errorf("%w: unknown resample method %q", ErrInvalidParameter, s)
	}
}

// Spec describes the output layout one render should be converted to.
type Spec struct {
	TargetRate        int
	TargetChannels    int
	Method            Method
	SeparationPercent int
}

// Validate checks all parameters against their bounds.
func (s Spec) Validate() error {
	if s.TargetRate < MinRate || s.TargetRate > MaxRate {
		return fmt.Errorf("%w: sample rate %d out of range [%d, %d]",
			ErrInvalidParameter, s.TargetRate, MinRate, MaxRate)
	}
	if s.TargetChannels != 1 && s.TargetChannels != 2 {
		return fmt.Errorf("%w: channel count %d (supported: 1, 2)",
			ErrInvalidParameter, s.TargetChannels)
	}
	if s.Method < Nearest || s.Method > Sinc {
		return fmt.Errorf("%w: unknown resample method %d", ErrInvalidParameter, int(s.Method))
	}
	if s.SeparationPercent < 0 || s.SeparationPercent > MaxSeparation {
		return fmt.Errorf("%w: stereo separation %d%% out of range [0, %d]",
			ErrInvalidParameter, s.SeparationPercent, MaxSeparation)
	}
	return nil
}
