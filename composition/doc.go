// Package composition provides the immutable material value type used
// throughout quantification: an element → mass-fraction mapping with
// uncertainties, plus derived atomic fractions and normalization.
//
// Two deliberate design points:
//
//   - A Composition is a value. Every "mutation" (With, Normalized) returns
//     a fresh Composition; iterative solvers thread the current guess through
//     function parameters instead of refining shared state, so there is no
//     cached-normalization invariant to corrupt.
//
//   - Un-normalized sums are first-class. An analysis total of 0.97 is
//     physically meaningful information (porosity, a missing element, a bad
//     standard), so Sum() may legitimately differ from 1 and WeightFraction
//     lets the caller choose raw or normalized views.
//
// ⚙️ Usage:
//
//	c, _ := composition.FromWeights(map[element.Element]float64{
//	    element.Fe: 0.55,
//	    element.Ni: 0.45,
//	})
//	fe := c.WeightFraction(element.Fe, false)   // 0.55 ± 0
//	n := c.Normalized()                         // fractions rescaled to sum 1
package composition
