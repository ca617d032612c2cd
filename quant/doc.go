// Package quant converts measured k-ratios into elemental mass fractions —
// the core of standards-based EPMA/EDS quantification.
//
// 🚀 The problem
//
// A k-ratio relates the unknown's line intensity to a standard's, but the
// matrix correction that links intensity to concentration depends on the
// very composition being solved for. quant resolves the circularity with a
// fixed-point iteration:
//
//  1. Seed a guess from the standards (k × C_std, normalized), rules applied.
//  2. For every measured transition set, re-evaluate the matrix correction
//     at the current guess and back out an updated mass fraction.
//  3. Fill unmeasured elements by rule (by difference, by oxide
//     stoichiometry, fixed value).
//  4. Stop when no element's fraction moved by more than the tolerance, or
//     at the iteration cap.
//
// Non-convergence at the cap is NOT an error: a caller quantifying
// thousands of map pixels needs the best-effort composition plus an honest
// Converged=false flag, not a panic in pixel 30412. Recoverable physics
// failures (edge above beam, degenerate absorption) zero the offending
// transition for the iteration and leave a warning on the Result; fatal
// configuration mistakes (missing standard, mismatched beam energy) abort
// immediately.
//
// The package also provides Cache, which precomputes the standard-side
// correction once per (transition set, standard) so that map-scale workloads
// do not repeat it per pixel. Populate the cache fully before computing;
// parallel workers should each own a Cache around their own Algorithm.
//
// ⚙️ Usage:
//
//	solver := quant.NewSolver(alg, nil)
//	_ = solver.AddStandard(element.Fe, pureFe, cond)
//	_ = solver.AddStandard(element.Ni, pureNi, cond)
//	res, err := solver.Solve(krs, cond)
//	if err == nil && !res.Converged {
//	    // best-effort result; inspect res.Warnings
//	}
//
// Convergence tolerance (0.001) and the cap (10) follow the long-standing
// empirical values of production quant engines; they are Options fields, not
// re-derived constants.
package quant
