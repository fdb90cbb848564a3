// ABOUTME: Isolation controller computing per-unit mute masks
// ABOUTME: Builds solo masks covering the module's whole unit table
package stems

import (
	"fmt"

	"github.com/untracker/untracker-go/internal/engine"
)

// Mask is the full per-unit audible state applied to the engine before a
// render pass. It covers every unit of the module's table, used or not,
// and is held constant for the render's entire duration.
type Mask struct {
	kind  engine.UnitKind
	muted []bool
}

// SoloMask builds a mask that mutes every unit except target. Isolation
// is per unit identity: if the target plays on several channels at once,
// all of them stay audible together.
func SoloMask(kind engine.UnitKind, unitCount int, target Unit) Mask {
	muted := make([]bool, unitCount)
	for i := range muted {
		muted[i] = i != target.Index
	}
	return Mask{kind: kind, muted: muted}
}

// Apply sets the whole mask on the engine. It must run before Reset and
// never again mid-render.
func (m Mask) Apply(mod engine.Module) error {
	for i, muted := range m.muted {
		if err := mod.SetUnitMuted(m.kind, i, muted); err != nil {
			return fmt.Errorf("muting %s %d: %w", m.kind, i, err)
		}
	}
	return nil
}

// Audible reports whether unit index i stays audible under the mask.
func (m Mask) Audible(i int) bool {
	return i >= 0 && i < len(m.muted) && !m.muted[i]
}
