// ABOUTME: Unit tests for the capability inspector
// ABOUTME: Tests granularity selection and used-unit enumeration
package stems

import (
	"errors"
	"testing"

	"github.com/untracker/untracker-go/internal/engine"
	"github.com/untracker/untracker-go/internal/engine/enginetest"
)

func loadModule(t *testing.T, spec enginetest.Spec) engine.Module {
	t.Helper()
	loader := &enginetest.Loader{Spec: spec}
	m, err := loader.Load([]byte("module"))
	if err != nil {
		t.Fatalf("loading synthetic module: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestInspect_InstrumentGranularity(t *testing.T) {
	m := loadModule(t, enginetest.Spec{
		NumInstruments: 3,
		NumSamples:     8,
		Names:          []string{"Bass", "Lead", "Drums"},
		Notes: []enginetest.Note{
			{Unit: 0, Start: 0, End: 1000},
			{Unit: 1, Start: 1000, End: 2000},
			{Unit: 2, Start: 2000, End: 3000},
		},
		TotalFrames: 3000,
	})

	kind, units, err := Inspect(m)
	if err != nil {
		t.Fatalf("Inspect() failed: %v", err)
	}
	if kind != engine.UnitInstrument {
		t.Errorf("granularity = %v, want instrument", kind)
	}
	if len(units) != 3 {
		t.Fatalf("got %d units, want 3", len(units))
	}
	for i, want := range []string{"Bass", "Lead", "Drums"} {
		if units[i].Name != want {
			t.Errorf("unit %d name = %q, want %q", i, units[i].Name, want)
		}
		if units[i].Index != i {
			t.Errorf("unit %d index = %d, want %d", i, units[i].Index, i)
		}
	}
}

func TestInspect_SampleFallback(t *testing.T) {
	// MOD-style module: no instrument table, samples only.
	m := loadModule(t, enginetest.Spec{
		NumInstruments: 0,
		NumSamples:     2,
		Names:          []string{"kick", "snare"},
		Notes: []enginetest.Note{
			{Unit: 0, Start: 0, End: 500},
			{Unit: 1, Start: 500, End: 1000},
		},
		TotalFrames: 1000,
	})

	kind, units, err := Inspect(m)
	if err != nil {
		t.Fatalf("Inspect() failed: %v", err)
	}
	if kind != engine.UnitSample {
		t.Errorf("granularity = %v, want sample", kind)
	}
	if len(units) != 2 {
		t.Errorf("got %d units, want 2", len(units))
	}
}

func TestInspect_SkipsUnusedUnits(t *testing.T) {
	m := loadModule(t, enginetest.Spec{
		NumInstruments: 4,
		Names:          []string{"used", "never referenced", "also used", "unused"},
		Unused:         map[int]bool{3: true},
		Notes: []enginetest.Note{
			{Unit: 0, Start: 0, End: 500},
			{Unit: 2, Start: 500, End: 1000},
		},
		TotalFrames: 1000,
	})

	_, units, err := Inspect(m)
	if err != nil {
		t.Fatalf("Inspect() failed: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("got %d units, want 2 (unused must be skipped)", len(units))
	}
	if units[0].Index != 0 || units[1].Index != 2 {
		t.Errorf("unit indices = [%d, %d], want [0, 2]", units[0].Index, units[1].Index)
	}
}

func TestInspect_NoIsolableUnits(t *testing.T) {
	tests := []struct {
		name string
		spec enginetest.Spec
	}{
		{
			name: "no instruments and no samples",
			spec: enginetest.Spec{TotalFrames: 1000},
		},
		{
			name: "units exist but none referenced",
			spec: enginetest.Spec{NumInstruments: 2, TotalFrames: 1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loadModule(t, tt.spec)
			_, _, err := Inspect(m)
			if !errors.Is(err, ErrNoIsolableUnits) {
				t.Errorf("Inspect() error = %v, want ErrNoIsolableUnits", err)
			}
		})
	}
}

func TestInspect_BlankNameFallback(t *testing.T) {
	m := loadModule(t, enginetest.Spec{
		NumInstruments: 1,
		Notes:          []enginetest.Note{{Unit: 0, Start: 0, End: 100}},
		TotalFrames:    100,
	})

	_, units, err := Inspect(m)
	if err != nil {
		t.Fatalf("Inspect() failed: %v", err)
	}
	if units[0].Name != "instrument_01" {
		t.Errorf("fallback name = %q, want %q", units[0].Name, "instrument_01")
	}
}
