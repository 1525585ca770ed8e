// Package align removes residual timing offsets between the incident,
// transmitted and reflected pulses of a split-Hopkinson pressure bar test.
//
// After segmentation the three pulses are nominally simultaneous, but gauge
// placement, trigger jitter and dispersion leave small unknown shifts on the
// transmitted and reflected records. The aligner searches integer shift
// pairs with a differential evolution loop, scoring each pair by how well
// the shifted pulses satisfy the wave-mechanics relations that must hold for
// a valid test: incident ≈ transmitted − reflected, matching bar-end
// displacements, and matching one-wave and three-wave strain-rate and strain
// histories over the linear loading zone.
//
// The search is deterministic for a fixed seed, independent of the worker
// count used for fitness evaluation.
package align
