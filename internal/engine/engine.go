// ABOUTME: Module interface, loader registry and bounded file loading
// ABOUTME: Capability-queryable render surface over tracker engine bindings
package engine

import (
	"errors"
	"fmt"
	"os"
)

const (
	// NativeRate is the sample rate renders are produced at before the
	// resampling stage converts to the requested output rate.
	NativeRate = 48000
	// NativeChannels is the channel layout of native renders.
	NativeChannels = 2
)

var (
	// ErrTooLarge indicates the module file exceeds the configured size bound.
	ErrTooLarge = errors.New("module file too large")
	// ErrNoLoader indicates no engine binding is compiled into this build.
	ErrNoLoader = errors.New("no playback engine binding registered")
)

// UnitKind discriminates the isolation granularity of a unit.
type UnitKind int

const (
	UnitInstrument UnitKind = iota
	UnitSample
)

// String returns the label used in log lines and filenames.
func (k UnitKind) String() string {
	if k == UnitSample {
		return "sample"
	}
	return "instrument"
}

// Module is one loaded tracker module. Playback position and mute mask
// are mutable instance state; a Module must be driven by one goroutine
// at a time and released with Close on every exit path.
type Module interface {
	// Title returns the module's embedded title, possibly empty.
	Title() string

	// NumInstruments reports the instrument table size. Zero means the
	// format carries raw samples only (e.g. MOD).
	NumInstruments() int

	// NumSamples reports the sample table size.
	NumSamples() int

	// InstrumentName returns the display name of instrument i, possibly empty.
	InstrumentName(i int) string

	// SampleName returns the display name of sample i, possibly empty.
	SampleName(i int) string

	// UnitUsed reports whether the unit is referenced by at least one
	// pattern event.
	UnitUsed(kind UnitKind, i int) bool

	// SetUnitMuted mutes or unmutes one unit across all channels.
	SetUnitMuted(kind UnitKind, i int, muted bool) error

	// SetStereoSeparation sets the engine mixer's separation percentage.
	SetStereoSeparation(percent int)

	// Reset rewinds playback to the start of the song.
	Reset()

	// Read renders the next chunk of interleaved PCM into dst at the
	// given rate and channel layout, returning the number of frames
	// produced. Zero frames means end of song, including any fade or
	// release tail after the last pattern event.
	Read(rate, channels int, dst []int16) (int, error)

	// PositionSeconds reports the current playback position.
	PositionSeconds() float64

	// DurationSeconds reports the song duration estimate.
	DurationSeconds() float64

	// Close releases engine-native resources. Safe to call twice.
	Close() error
}

// Loader creates an independent Module instance from module file bytes.
// Each call returns a fresh instance; instances never share playback state.
type Loader interface {
	Load(data []byte) (Module, error)
}

var defaultLoader Loader

// RegisterLoader installs the engine binding used by DefaultLoader.
// Bindings call this from init.
func RegisterLoader(l Loader) {
	defaultLoader = l
}

// DefaultLoader returns the registered engine binding.
func DefaultLoader() (Loader, error) {
	if defaultLoader == nil {
		return nil, ErrNoLoader
	}
	return defaultLoader, nil
}

// ReadModuleFile reads one module file, enforcing the size bound before
// the bytes are loaded into memory. maxBytes <= 0 disables the bound.
func ReadModuleFile(path string, maxBytes int64) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat module file: %w", err)
	}
	if maxBytes > 0 && fi.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, path, fi.Size(), maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("module file %s is empty", path)
	}
	return data, nil
}
