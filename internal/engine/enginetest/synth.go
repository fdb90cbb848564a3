// ABOUTME: Synthetic tracker engine for tests
// ABOUTME: Renders one sine tone per unit on a deterministic timeline
// Package enginetest provides a deterministic in-memory engine binding.
//
// Each unit plays a sine tone at its own frequency during the note spans
// declared in the Spec, so tests can check exactly which units are audible
// in a rendered buffer. Rendering is a pure function of the playback
// position, which keeps sequential and parallel runs byte-identical.
package enginetest

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/untracker/untracker-go/internal/engine"
)

// baseFrequency spaces unit tones apart so they are tellable in tests.
const baseFrequency = 220.0

// Note schedules one unit on the timeline. Frames are measured at
// engine.NativeRate and scaled when rendering at other rates.
type Note struct {
	Unit  int
	Start int
	End   int
}

// Spec describes the synthetic module a Loader produces.
type Spec struct {
	Title          string
	NumInstruments int
	NumSamples     int
	Names          []string     // display name per unit index, may be short
	Unused         map[int]bool // units present but never referenced
	Notes          []Note
	TotalFrames    int // song length at engine.NativeRate
	FailAtFrame    int // Read fails once playback passes this frame (0 = never)
	FailUnits      map[int]bool // Read fails while any of these units is audible
}

// Loader produces independent synthetic modules from the same spec.
// Parallel extraction loads worker instances concurrently, so the call
// counter is guarded.
type Loader struct {
	Spec Spec

	mu    sync.Mutex
	loads int
}

var _ engine.Loader = (*Loader)(nil)

// Load creates a fresh module instance. Empty input is rejected the way
// a real binding rejects an unparseable file.
func (l *Loader) Load(data []byte) (engine.Module, error) {
	if len(data) == 0 {
		return nil, errors.New("enginetest: cannot parse empty module data")
	}
	l.mu.Lock()
	l.loads++
	l.mu.Unlock()
	return &Module{spec: l.Spec, muted: map[int]bool{}}, nil
}

// Loads reports the number of Load calls, for instance-isolation
// assertions.
func (l *Loader) Loads() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads
}

// Module is one synthetic module instance.
type Module struct {
	spec   Spec
	muted  map[int]bool
	pos    int // playback position in native-rate frames
	closed bool
}

var _ engine.Module = (*Module)(nil)

func (m *Module) Title() string       { return m.spec.Title }
func (m *Module) NumInstruments() int { return m.spec.NumInstruments }
func (m *Module) NumSamples() int     { return m.spec.NumSamples }

func (m *Module) InstrumentName(i int) string { return m.name(i) }
func (m *Module) SampleName(i int) string     { return m.name(i) }

func (m *Module) name(i int) string {
	if i >= 0 && i < len(m.spec.Names) {
		return m.spec.Names[i]
	}
	return ""
}

func (m *Module) UnitUsed(kind engine.UnitKind, i int) bool {
	if m.spec.Unused[i] {
		return false
	}
	for _, n := range m.spec.Notes {
		if n.Unit == i {
			return true
		}
	}
	return false
}

func (m *Module) SetUnitMuted(kind engine.UnitKind, i int, muted bool) error {
	if i < 0 || i >= m.unitCount() {
		return fmt.Errorf("enginetest: unit %d out of range", i)
	}
	m.muted[i] = muted
	return nil
}

func (m *Module) unitCount() int {
	if m.spec.NumInstruments > 0 {
		return m.spec.NumInstruments
	}
	return m.spec.NumSamples
}

func (m *Module) SetStereoSeparation(percent int) {}

func (m *Module) Reset() { m.pos = 0 }

// UnitFrequency returns the tone frequency of unit i.
func UnitFrequency(i int) float64 {
	return baseFrequency * float64(i+1)
}

// Read renders the next chunk. Each unmuted unit contributes its tone
// during its note spans; everything else is silence.
func (m *Module) Read(rate, channels int, dst []int16) (int, error) {
	if m.closed {
		return 0, errors.New("enginetest: read after close")
	}
	if rate <= 0 || (channels != 1 && channels != 2) {
		return 0, fmt.Errorf("enginetest: unsupported render layout %d Hz / %d ch", rate, channels)
	}

	for u := range m.spec.FailUnits {
		if !m.muted[u] {
			return 0, fmt.Errorf("enginetest: decode fault on unit %d", u)
		}
	}

	scale := float64(rate) / float64(engine.NativeRate)
	total := int(float64(m.spec.TotalFrames) * scale)
	pos := int(float64(m.pos) * scale)
	if pos >= total {
		return 0, nil
	}

	frames := len(dst) / channels
	if frames > total-pos {
		frames = total - pos
	}

	for f := 0; f < frames; f++ {
		abs := pos + f
		if m.spec.FailAtFrame > 0 && abs >= int(float64(m.spec.FailAtFrame)*scale) {
			return 0, fmt.Errorf("enginetest: decode fault at frame %d", abs)
		}

		var v float64
		for _, n := range m.spec.Notes {
			if m.muted[n.Unit] {
				continue
			}
			start := int(float64(n.Start) * scale)
			end := int(float64(n.End) * scale)
			if abs >= start && abs < end {
				t := float64(abs) / float64(rate)
				v += math.Sin(2 * math.Pi * UnitFrequency(n.Unit) * t)
			}
		}

		// Headroom for a few overlapping tones before clipping.
		pcm := int16(v * 32767.0 * 0.25)
		for ch := 0; ch < channels; ch++ {
			dst[f*channels+ch] = pcm
		}
	}

	m.pos += int(float64(frames) / scale)
	if frames > 0 && m.pos > m.spec.TotalFrames {
		m.pos = m.spec.TotalFrames
	}
	return frames, nil
}

func (m *Module) PositionSeconds() float64 {
	return float64(m.pos) / float64(engine.NativeRate)
}

func (m *Module) DurationSeconds() float64 {
	return float64(m.spec.TotalFrames) / float64(engine.NativeRate)
}

func (m *Module) Close() error {
	m.closed = true
	return nil
}
