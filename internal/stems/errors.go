// ABOUTME: Error taxonomy for the stem pipeline
// ABOUTME: Sentinels plus structured per-stem and whole-run failures
package stems

import (
	"errors"
	"fmt"
)

var (
	// ErrNoIsolableUnits indicates a module with no usable instruments or
	// samples: nothing to extract.
	ErrNoIsolableUnits = errors.New("module contains no isolable units")

	// ErrRender indicates an engine-level decode fault during a render
	// pass. Partial output is discarded, never written.
	ErrRender = errors.New("render failed")

	// ErrAllStemsFailed indicates a run in which not a single stem was
	// produced.
	ErrAllStemsFailed = errors.New("no stems produced")
)

// StemError describes one failed stem job. Sibling jobs keep running.
type StemError struct {
	Unit  Unit
	Stage string // "render", "resample" or "encode"
	Err   error
}

func (e *StemError) Error() string {
	return fmt.Sprintf("stem %q: %s: %v", e.Unit.Name, e.Stage, e.Err)
}

func (e *StemError) Unwrap() error {
	return e.Err
}
