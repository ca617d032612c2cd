// Package correction defines the matrix-correction contract consumed by the
// quantification solvers, and ships two deliberately simple implementations.
//
// A matrix correction answers one question: for a given material, excited
// shell, and acquisition conditions, by how much do atomic-number effects (Z),
// self-absorption (A), and secondary fluorescence (F) scale the measured
// intensity of a characteristic line relative to the generated intensity?
// The convention here is
//
//	measured = generated / ZAFCorrection(t)
//
// so a factor > 1 means the matrix suppresses the line.
//
// The thick catalogue of published correction models (PAP, XPP, Pouchou &
// Pichoir descendants, the many backscatter/stopping-power fits) is out of
// scope: those are competing implementations of the Algorithm interface, not
// part of the solver machinery. Shipped here are:
//
//   - Null   — identity correction (ZAF ≡ 1). The reference point for
//     round-trip testing and for absorption-free reasoning.
//   - Simple — a compact Philibert-style model: stopping-power Z term,
//     simplified-Philibert absorption term, F ≡ 1. Good enough to exercise
//     every code path a production model would.
//
// Error taxonomy (see types.go): physically impossible requests (edge energy
// at or above beam energy, overvoltage too low) surface as *DomainError —
// recoverable, the solver skips the transition for the iteration. Mismatched
// acquisition conditions are configuration mistakes and surface as fatal
// sentinels.
package correction
