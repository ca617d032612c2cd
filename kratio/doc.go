// Package kratio holds measured k-ratios: intensity ratios of an unknown
// against a standard, keyed by the transition set that was measured.
//
// A k-ratio is the primary observable of standards-based quantification —
// everything upstream (dose, detector efficiency, peak fitting) has already
// been divided out by the time a value lands here. Each entry pairs one
// xray.TransitionSet with one uncertain.Value; a Set holds at most one entry
// per transition set, but an element may appear several times through
// different line families (Fe K and Fe L, say) with very different
// statistical quality.
//
// Optimal reduces that redundancy to one entry per element using the rule
// production systems apply: prefer K before L before M, but only while a
// family's edge can actually be excited comfortably — the beam energy must
// exceed OvervoltageRatio × edge energy — else fall back to the next family
// down. The selected subset is what a solver should iterate on.
package kratio
