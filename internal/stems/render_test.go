// ABOUTME: Unit tests for the renderer
// ABOUTME: Tests isolation correctness, determinism and fault handling
package stems

import (
	"errors"
	"testing"

	"github.com/untracker/untracker-go/internal/engine"
	"github.com/untracker/untracker-go/internal/engine/enginetest"
	"github.com/untracker/untracker-go/pkg/audio"
)

// twoUnitSpec lays out two instruments in disjoint timeline halves, so
// isolation can be checked frame-region by frame-region.
func twoUnitSpec() enginetest.Spec {
	return enginetest.Spec{
		NumInstruments: 2,
		Names:          []string{"first half", "second half"},
		Notes: []enginetest.Note{
			{Unit: 0, Start: 0, End: 4800},
			{Unit: 1, Start: 4800, End: 9600},
		},
		TotalFrames: 9600,
	}
}

func regionSilent(buf *audio.Buffer, fromFrame, toFrame int) bool {
	for f := fromFrame; f < toFrame && f < buf.Frames(); f++ {
		for ch := 0; ch < buf.Channels; ch++ {
			if buf.Samples[f*buf.Channels+ch] != 0 {
				return false
			}
		}
	}
	return true
}

func TestRender_IsolatesTargetUnit(t *testing.T) {
	m := loadModule(t, twoUnitSpec())

	mask := SoloMask(engine.UnitInstrument, 2, Unit{Kind: engine.UnitInstrument, Index: 0})
	buf, err := Render(m, mask, engine.NativeRate, engine.NativeChannels)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	if got := buf.Frames(); got != 9600 {
		t.Fatalf("rendered %d frames, want 9600", got)
	}
	// Unit 0 plays in the first half only; the muted unit 1 must leave
	// the second half silent.
	if regionSilent(buf, 0, 4800) {
		t.Errorf("first half is silent, expected the isolated unit's tone")
	}
	if !regionSilent(buf, 4800, 9600) {
		t.Errorf("second half is not silent, the muted unit leaked into the stem")
	}
}

func TestRender_Deterministic(t *testing.T) {
	spec := twoUnitSpec()
	mask := SoloMask(engine.UnitInstrument, 2, Unit{Index: 1})

	render := func() *audio.Buffer {
		m := loadModule(t, spec)
		buf, err := Render(m, mask, engine.NativeRate, engine.NativeChannels)
		if err != nil {
			t.Fatalf("Render() failed: %v", err)
		}
		return buf
	}

	a, b := render(), render()
	if len(a.Samples) != len(b.Samples) {
		t.Fatalf("renders differ in length: %d vs %d", len(a.Samples), len(b.Samples))
	}
	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			t.Fatalf("renders differ at sample %d: %d vs %d", i, a.Samples[i], b.Samples[i])
		}
	}
}

func TestRender_RewindsBetweenPasses(t *testing.T) {
	// Reusing one module instance for consecutive stems must restart
	// playback from the top each time.
	m := loadModule(t, twoUnitSpec())

	first, err := Render(m, SoloMask(engine.UnitInstrument, 2, Unit{Index: 0}), engine.NativeRate, 2)
	if err != nil {
		t.Fatalf("first Render() failed: %v", err)
	}
	second, err := Render(m, SoloMask(engine.UnitInstrument, 2, Unit{Index: 1}), engine.NativeRate, 2)
	if err != nil {
		t.Fatalf("second Render() failed: %v", err)
	}

	if first.Frames() != second.Frames() {
		t.Errorf("passes rendered %d and %d frames, want equal full passes",
			first.Frames(), second.Frames())
	}
	if regionSilent(second, 4800, 9600) {
		t.Errorf("second pass missing its unit's audio")
	}
}

func TestRender_ScalesToRequestedRate(t *testing.T) {
	m := loadModule(t, twoUnitSpec())

	buf, err := Render(m, SoloMask(engine.UnitInstrument, 2, Unit{Index: 0}), 44100, 2)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	want := 9600 * 44100 / 48000
	if got := buf.Frames(); got < want-1 || got > want+1 {
		t.Errorf("rendered %d frames at 44100, want %d ± 1", got, want)
	}
	if buf.SampleRate != 44100 {
		t.Errorf("buffer rate = %d, want 44100", buf.SampleRate)
	}
}

func TestRender_DiscardsPartialOutputOnFault(t *testing.T) {
	spec := twoUnitSpec()
	spec.FailAtFrame = 4800
	m := loadModule(t, spec)

	buf, err := Render(m, SoloMask(engine.UnitInstrument, 2, Unit{Index: 0}), engine.NativeRate, 2)
	if !errors.Is(err, ErrRender) {
		t.Fatalf("Render() error = %v, want ErrRender", err)
	}
	if buf != nil {
		t.Errorf("Render() returned a partial buffer alongside the error")
	}
}
