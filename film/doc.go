// Package film quantifies layered (thin-film) samples: the same fixed-point
// principle as package quant, generalized from one bulk composition to N
// ordered layers with unknown mass thickness (ρz).
//
// 🚀 Geometry
//
// Layers are indexed 1..N from the beam-entry surface down. A line emitted
// in layer L is attenuated twice: on the way out through every layer above
// L, and within L itself, averaged over the emission depth:
//
//	f = exp(−Σ_above χ·ρz) · (1 − exp(−χ_L·ρz_L)) / (χ_L·ρz_L)
//
// with χ = MAC/sin(take-off angle) evaluated against each layer's own
// composition — which is exactly the circular dependency the iteration
// resolves: f needs the previous iteration's ρz and compositions, and the
// k-ratios corrected by f give the next ones.
//
// Each iteration backs out per-element contributions
//
//	contribution[elm] = C_std[elm] · ZAF(std) · k[elm] / f
//
// sums them per layer into a candidate ρz, and renormalizes each layer's
// contributions into its candidate composition. Oxygen (or any derived
// element) may be added per layer by an Oxidizer policy before normalizing.
//
// Convergence demands every layer's ρz to settle within 0.01% — tighter
// than the bulk solver, because absorption errors compound through the
// stack — with the same cap of 10 iterations and the same best-effort,
// flag-not-error policy on hitting it.
//
// Hard preconditions, checked before any iteration: every element assigned
// to exactly one layer, no empty layers, a k-ratio for every assigned
// element (Oxidizer-derived ones excepted), and standards matching the
// unknown's conditions within tolerance.
package film
