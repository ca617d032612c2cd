package quant

import (
	"fmt"

	"github.com/epmalab/microquant/composition"
	"github.com/epmalab/microquant/element"
	"github.com/epmalab/microquant/uncertain"
)

// UnmeasuredRule computes one element's mass fraction from the others
// instead of from a k-ratio. Rules are registered before solving and
// consulted once per iteration, after the measured elements are updated.
type UnmeasuredRule interface {
	// Element is the element the rule fills in.
	Element() element.Element

	// Compute derives the element's mass fraction from the partial
	// composition of the measured elements.
	Compute(partial composition.Composition) (uncertain.Value, error)
}

// ByDifference assigns an element the remainder 1 − Σ(others), clamped at
// zero when the others already exceed unity.
type ByDifference struct {
	// Elm is the element carried by difference.
	Elm element.Element
}

// Element implements UnmeasuredRule.
func (r ByDifference) Element() element.Element { return r.Elm }

// Compute returns max(0, 1 − Σ partial), excluding any stale entry for the
// rule's own element.
func (r ByDifference) Compute(partial composition.Composition) (uncertain.Value, error) {
	sum := partial.Sum() - partial.WeightFraction(r.Elm, false).Float()
	return uncertain.Exact(1 - sum).ClampNonNegative(), nil
}

// ByStoichiometry derives one element (conventionally oxygen) from assumed
// compound ratios of the measured cations: for each cation with fraction C
// and ratio q (derived-element atoms per cation atom), the rule adds
// q · C · (A_derived / A_cation).
//
// Example: O from SiO2 and Al2O3 uses q(Si)=2 and q(Al)=1.5.
type ByStoichiometry struct {
	// Elm is the derived element.
	Elm element.Element

	// Ratios maps cation → derived atoms per cation atom. A measured
	// element absent from Ratios contributes nothing (a noble metal beside
	// oxides, say).
	Ratios map[element.Element]float64
}

// Element implements UnmeasuredRule.
func (r ByStoichiometry) Element() element.Element { return r.Elm }

// Compute sums the stoichiometric contributions of every measured cation.
func (r ByStoichiometry) Compute(partial composition.Composition) (uncertain.Value, error) {
	if !r.Elm.Valid() {
		return uncertain.Value{}, fmt.Errorf("%w: %d", composition.ErrInvalidElement, int(r.Elm))
	}
	aDerived := r.Elm.AtomicWeight()
	var total uncertain.Value
	for _, cation := range partial.Elements() {
		if cation == r.Elm {
			continue
		}
		q, ok := r.Ratios[cation]
		if !ok || q <= 0 {
			continue
		}
		c := partial.WeightFraction(cation, false)
		total = total.Add(c.Scale(q * aDerived / cation.AtomicWeight()))
	}
	return total, nil
}

// Fixed pins an element at a constant mass fraction (a known dopant, a
// substrate film of known composition).
type Fixed struct {
	// Elm is the pinned element.
	Elm element.Element

	// Value is the mass fraction to assign every iteration.
	Value uncertain.Value
}

// Element implements UnmeasuredRule.
func (r Fixed) Element() element.Element { return r.Elm }

// Compute returns the pinned value regardless of the partial composition.
func (r Fixed) Compute(composition.Composition) (uncertain.Value, error) {
	return r.Value, nil
}
