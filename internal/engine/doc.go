// ABOUTME: Playback engine binding boundary
// ABOUTME: Defines the Module interface the stem pipeline drives
// Package engine defines the boundary to the tracker playback engine.
//
// The engine itself (format parsing, pattern playback, mixing) is an
// external collaborator. This package defines the capability surface the
// stem pipeline needs from any binding:
//
//   - capability queries: instrument/sample counts, names, pattern usage
//   - a mutable per-unit mute mask
//   - deterministic chunked rendering to PCM with playback position
//
// Bindings register themselves at init time; the pipeline asks for the
// default Loader and owns each loaded Module exclusively. Engine playback
// state (mute mask, playback cursor) is mutable per instance, so a Module
// must never be shared between concurrent renders — concurrency is
// achieved by loading one instance per worker from the same file bytes.
package engine
