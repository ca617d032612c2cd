// Package microquant turns measured X-ray intensity ratios into material
// compositions — the quantitative step of electron-probe microanalysis,
// from matrix corrections to full layered-film solving.
//
// 🚀 What is microquant?
//
//	A pure-computation library that brings together:
//		• Core primitives: elements, characteristic lines, uncertain values
//		• Compositions: immutable mass-fraction maps with propagated σ
//		• Matrix correction: pluggable ZAF algorithms & sub-models
//		• Bulk solver: fixed-point iteration from k-ratios to composition
//		• ZAF caching: amortized standard-side corrections for reuse
//		• Layered films: per-layer mass thickness & composition
//
// ✨ Why choose microquant?
//
//   - Honest numerics – uncertainties ride along every arithmetic step
//   - Best-effort solving – recoverable physics failures warn, never panic
//   - Pure Go – no cgo, embedded data tables, deterministic output
//   - Extensible – swap any correction sub-model through the registry
//
// Everything is organized under flat subpackages:
//
//	uncertain/   — value-with-uncertainty arithmetic
//	element/     — periodic-table identities & atomic weights
//	xray/        — shells, lines, transitions & transition sets
//	composition/ — immutable compositions & convergence deltas
//	correction/  — ZAF algorithms, MACs & physics sub-models
//	strategy/    — role-typed registry of swappable sub-models
//	kratio/      — measured k-ratio sets & line-family selection
//	quant/       — the bulk composition solver & ZAF cache
//	film/        — the layered thin-film solver
//
// Start with quant.NewSolver for bulk samples or film.NewSolver for
// stacks; everything else is reachable from there.
package microquant
