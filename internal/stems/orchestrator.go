// ABOUTME: Stem orchestrator coordinating the whole extraction run
// ABOUTME: Enumerates units, derives output paths and fans out render jobs
package stems

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/untracker/untracker-go/internal/engine"
	"github.com/untracker/untracker-go/pkg/audio/encode"
	"github.com/untracker/untracker-go/pkg/audio/resample"
)

// maxWorkers caps the parallel pool; each worker holds its own loaded
// module instance, so oversubscription costs engine memory, not just CPU.
const maxWorkers = 4

// RunConfig describes one extraction run. All fields are read-only once
// Run starts.
type RunConfig struct {
	ModulePath     string
	OutputDir      string
	Loader         engine.Loader
	Resample       resample.Spec
	Format         encode.Format
	Encode         encode.Options
	Parallel       bool
	Workers        int   // 0 sizes the pool from available CPUs
	MaxModuleBytes int64 // 0 disables the input size bound
}

// RunResult reports an extraction run. Produced and Failed are both in
// unit enumeration order regardless of parallel completion order.
type RunResult struct {
	Granularity engine.UnitKind
	Total       int
	Produced    []string
	Failed      []*StemError
}

// Run executes a full extraction: validate, load, inspect, then one
// render-resample-encode job per unit. Per-stem failures are recorded
// and logged without aborting sibling jobs; the returned error is
// non-nil only when setup fails or no stem at all could be produced.
func Run(cfg RunConfig) (*RunResult, error) {
	// Fail fast: every parameter is checked before any render pass.
	if err := cfg.Resample.Validate(); err != nil {
		return nil, err
	}
	if err := encode.Validate(cfg.Format, cfg.Resample.TargetRate, cfg.Encode); err != nil {
		return nil, err
	}
	if cfg.Loader == nil {
		return nil, engine.ErrNoLoader
	}

	data, err := engine.ReadModuleFile(cfg.ModulePath, cfg.MaxModuleBytes)
	if err != nil {
		return nil, err
	}

	m, err := cfg.Loader.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading module %s: %w", cfg.ModulePath, err)
	}
	defer m.Close()

	kind, units, err := Inspect(m)
	if err != nil {
		return nil, err
	}

	unitCount := m.NumInstruments()
	if kind == engine.UnitSample {
		unitCount = m.NumSamples()
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	paths := destinationPaths(cfg.OutputDir, units, cfg.Format.Ext())

	log.Printf("extracting %d %s stems from %s", len(units), kind, cfg.ModulePath)

	results := make([]*StemError, len(units))
	var done atomic.Int32

	runJob := func(worker engine.Module, i int) {
		results[i] = extractOne(worker, kind, unitCount, units[i], paths[i], cfg)
		n := done.Add(1)
		if results[i] != nil {
			log.Printf("stem %d/%d failed: %v", n, len(units), results[i])
		} else {
			log.Printf("stem %d/%d done: %s", n, len(units), filepath.Base(paths[i]))
		}
	}

	if cfg.Parallel && len(units) > 1 {
		runParallel(cfg, data, units, results, runJob)
	} else {
		for i := range units {
			runJob(m, i)
		}
	}

	res := &RunResult{Granularity: kind, Total: len(units)}
	for i, stemErr := range results {
		if stemErr != nil {
			res.Failed = append(res.Failed, stemErr)
		} else {
			res.Produced = append(res.Produced, paths[i])
		}
	}

	log.Printf("summary: %d total, %d succeeded, %d failed",
		res.Total, len(res.Produced), len(res.Failed))

	if len(res.Produced) == 0 {
		return res, fmt.Errorf("%w: all %d stems failed", ErrAllStemsFailed, res.Total)
	}
	return res, nil
}

// runParallel distributes jobs across a bounded pool. Every worker loads
// its own module instance from the original file bytes, since playback
// position and mute mask are mutable engine state that must never be
// shared between concurrent renders.
func runParallel(cfg RunConfig, data []byte, units []Unit, results []*StemError, runJob func(engine.Module, int)) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	if workers > len(units) {
		workers = len(units)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			worker, err := cfg.Loader.Load(data)
			if err != nil {
				for i := range jobs {
					results[i] = &StemError{
						Unit:  units[i],
						Stage: "render",
						Err:   fmt.Errorf("loading worker module: %w", err),
					}
				}
				return
			}
			defer worker.Close()

			for i := range jobs {
				runJob(worker, i)
			}
		}()
	}

	for i := range units {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// extractOne runs the isolate-render-resample-encode pipeline for one
// unit. Any stage failure discards the stem's output and is reported as
// a StemError naming the stage.
func extractOne(m engine.Module, kind engine.UnitKind, unitCount int, unit Unit, path string, cfg RunConfig) *StemError {
	jobID := uuid.NewString()[:8]
	log.Printf("job %s: rendering %s %q", jobID, kind, unit.Name)

	mask := SoloMask(kind, unitCount, unit)
	buf, err := Render(m, mask, engine.NativeRate, engine.NativeChannels)
	if err != nil {
		return &StemError{Unit: unit, Stage: "render", Err: err}
	}

	proc, err := resample.New(cfg.Resample)
	if err != nil {
		return &StemError{Unit: unit, Stage: "resample", Err: err}
	}
	out, err := proc.Process(buf)
	if err != nil {
		return &StemError{Unit: unit, Stage: "resample", Err: err}
	}

	enc, err := encode.New(cfg.Format, path, cfg.Encode)
	if err != nil {
		return &StemError{Unit: unit, Stage: "encode", Err: err}
	}
	if err := enc.Encode(out); err != nil {
		return &StemError{Unit: unit, Stage: "encode", Err: err}
	}
	return nil
}

// destinationPaths derives one output path per unit from its sanitized
// display name. Collisions within the run are resolved with a numeric
// suffix assigned in enumeration order, before any job starts, so the
// mapping is deterministic for sequential and parallel runs alike.
func destinationPaths(dir string, units []Unit, ext string) []string {
	used := make(map[string]bool, len(units))
	paths := make([]string, len(units))

	for i, u := range units {
		name := sanitizeName(u.Name)
		if name == "" || !filepath.IsLocal(name) {
			name = fmt.Sprintf("%s_%02d", u.Kind, u.Index+1)
		}

		base := name
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		used[name] = true

		paths[i] = filepath.Join(dir, name+ext)
	}

	return paths
}

// sanitizeName strips path separators and control characters from a unit
// display name so it is safe to use inside the output directory.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '/' || r == '\\':
			b.WriteByte('_')
		case r < 0x20 || r == 0x7f:
			// control characters are dropped
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), " .")
}
