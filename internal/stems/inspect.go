// ABOUTME: Capability inspector choosing isolation granularity
// ABOUTME: Enumerates the units actually referenced by pattern data
package stems

import (
	"fmt"

	"github.com/untracker/untracker-go/internal/engine"
)

// Unit identifies one extractable stem.
type Unit struct {
	Kind  engine.UnitKind
	Index int
	Name  string
}

// Inspect decides the isolation granularity for a module and enumerates
// its isolable units in table order.
//
// Richer formats (XM, IT) layer named instruments over raw samples, so a
// non-empty instrument table selects instrument granularity; sample-only
// formats (MOD) fall back to sample granularity. Units never referenced
// by a pattern event are skipped, so no silent stems are produced.
func Inspect(m engine.Module) (engine.UnitKind, []Unit, error) {
	kind := engine.UnitInstrument
	count := m.NumInstruments()
	if count == 0 {
		kind = engine.UnitSample
		count = m.NumSamples()
	}

	var units []Unit
	for i := 0; i < count; i++ {
		if !m.UnitUsed(kind, i) {
			continue
		}
		units = append(units, Unit{Kind: kind, Index: i, Name: unitName(m, kind, i)})
	}

	if len(units) == 0 {
		return kind, nil, fmt.Errorf("%w: %d instruments, %d samples, none referenced by pattern data",
			ErrNoIsolableUnits, m.NumInstruments(), m.NumSamples())
	}
	return kind, units, nil
}

// unitName returns the module's display name for the unit, falling back
// to a positional label when the module leaves it blank.
func unitName(m engine.Module, kind engine.UnitKind, i int) string {
	var name string
	if kind == engine.UnitInstrument {
		name = m.InstrumentName(i)
	} else {
		name = m.SampleName(i)
	}
	if name == "" {
		name = fmt.Sprintf("%s_%02d", kind, i+1)
	}
	return name
}
