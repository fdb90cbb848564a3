// ABOUTME: Stem extraction pipeline package
// ABOUTME: Inspection, isolation, rendering and orchestration of stem jobs
// Package stems implements the stem extraction pipeline.
//
// A run flows through four stages: the inspector decides whether the
// module isolates by instrument or by sample and enumerates the usable
// units; the isolation mask mutes everything except one target unit; the
// renderer drives a full deterministic playback pass under that mask; and
// the orchestrator fans the per-unit jobs out (sequentially or across a
// worker pool), resamples each render to the requested output layout and
// writes it through a container encoder.
//
// Per-stem failures are isolated: one failed unit is recorded and logged
// while the remaining units keep rendering.
package stems
