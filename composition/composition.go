package composition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/epmalab/microquant/element"
	"github.com/epmalab/microquant/uncertain"
)

// Sentinel errors for composition construction.
var (
	// ErrInvalidElement indicates an element outside the supported range.
	ErrInvalidElement = errors.New("composition: invalid element")

	// ErrNegativeFraction indicates a negative mass fraction.
	ErrNegativeFraction = errors.New("composition: negative mass fraction")

	// ErrEmptyComposition indicates a composition with no elements where one
	// is required (normalization, atomic fractions).
	ErrEmptyComposition = errors.New("composition: no elements")
)

// Composition maps elements to mass fractions with uncertainties.
//
// The zero Composition is empty and usable. Compositions are immutable;
// With and Normalized return new values.
type Composition struct {
	fractions map[element.Element]uncertain.Value
}

// New builds a Composition from the given mass fractions.
// Fractions must be non-negative; the sum need not be 1.
func New(fractions map[element.Element]uncertain.Value) (Composition, error) {
	m := make(map[element.Element]uncertain.Value, len(fractions))
	for elm, v := range fractions {
		if !elm.Valid() {
			return Composition{}, fmt.Errorf("%w: %d", ErrInvalidElement, int(elm))
		}
		if v.Float() < 0 {
			return Composition{}, fmt.Errorf("%w: %s = %g", ErrNegativeFraction, elm, v.Float())
		}
		m[elm] = v
	}
	return Composition{fractions: m}, nil
}

// FromWeights builds a Composition from exact (zero-uncertainty) fractions.
func FromWeights(weights map[element.Element]float64) (Composition, error) {
	m := make(map[element.Element]uncertain.Value, len(weights))
	for elm, w := range weights {
		m[elm] = uncertain.Exact(w)
	}
	return New(m)
}

// Pure returns the single-element composition with mass fraction exactly 1.
func Pure(elm element.Element) (Composition, error) {
	return FromWeights(map[element.Element]float64{elm: 1})
}

// With returns a copy of c with elm set to v. A negative v is rejected at
// solver level before reaching here; With itself clamps nothing.
func (c Composition) With(elm element.Element, v uncertain.Value) Composition {
	m := make(map[element.Element]uncertain.Value, len(c.fractions)+1)
	for e, f := range c.fractions {
		m[e] = f
	}
	m[elm] = v
	return Composition{fractions: m}
}

// Contains reports whether elm has an entry (possibly zero-valued).
func (c Composition) Contains(elm element.Element) bool {
	_, ok := c.fractions[elm]
	return ok
}

// Len returns the number of elements with entries.
func (c Composition) Len() int { return len(c.fractions) }

// Elements returns the elements with entries, sorted by atomic number.
func (c Composition) Elements() []element.Element {
	out := make([]element.Element, 0, len(c.fractions))
	for elm := range c.fractions {
		out = append(out, elm)
	}
	element.Sort(out)
	return out
}

// WeightFraction returns elm's mass fraction. With normalized=true the
// fraction is rescaled by 1/Sum(); an absent element is 0 ± 0 either way.
func (c Composition) WeightFraction(elm element.Element, normalized bool) uncertain.Value {
	v, ok := c.fractions[elm]
	if !ok {
		return uncertain.Value{}
	}
	if normalized {
		if s := c.Sum(); s > 0 {
			return v.Scale(1 / s)
		}
	}
	return v
}

// Sum returns the raw total of all mass fractions.
func (c Composition) Sum() float64 {
	var s float64
	for _, v := range c.fractions {
		s += v.Float()
	}
	return s
}

// Normalized returns a copy with all fractions rescaled so Sum()==1.
// An empty or all-zero composition returns ErrEmptyComposition.
func (c Composition) Normalized() (Composition, error) {
	s := c.Sum()
	if len(c.fractions) == 0 || s <= 0 {
		return Composition{}, ErrEmptyComposition
	}
	m := make(map[element.Element]uncertain.Value, len(c.fractions))
	for elm, v := range c.fractions {
		m[elm] = v.Scale(1 / s)
	}
	return Composition{fractions: m}, nil
}

// AtomicFraction returns elm's mole (atomic) fraction, derived on demand
// from mass fractions and atomic weights.
func (c Composition) AtomicFraction(elm element.Element) float64 {
	var total float64
	for e, v := range c.fractions {
		total += v.Float() / e.AtomicWeight()
	}
	if total <= 0 {
		return 0
	}
	v, ok := c.fractions[elm]
	if !ok {
		return 0
	}
	return v.Float() / elm.AtomicWeight() / total
}

// MeanZ returns the mass-fraction-weighted mean atomic number of the
// (normalized) composition — the first-order "Z" a matrix correction sees.
func (c Composition) MeanZ() float64 {
	s := c.Sum()
	if s <= 0 {
		return 0
	}
	var z float64
	for elm, v := range c.fractions {
		z += v.Float() * float64(elm.Z())
	}
	return z / s
}

// Equals reports whether both compositions carry the same element set and
// every mass fraction agrees within tol.
func (c Composition) Equals(other Composition, tol float64) bool {
	if len(c.fractions) != len(other.fractions) {
		return false
	}
	for elm, v := range c.fractions {
		o, ok := other.fractions[elm]
		if !ok {
			return false
		}
		d := v.Float() - o.Float()
		if d < -tol || d > tol {
			return false
		}
	}
	return true
}

// MaxRelativeDelta returns the largest per-element relative change from
// prev to c, the convergence metric of fixed-point solvers. Elements at
// zero in both compositions contribute nothing; an element appearing or
// vanishing outright counts as a full (1.0) change.
func (c Composition) MaxRelativeDelta(prev Composition) float64 {
	var maxDelta float64
	seen := make(map[element.Element]bool, len(c.fractions))
	for elm, v := range c.fractions {
		seen[elm] = true
		p := prev.WeightFraction(elm, false).Float()
		maxDelta = maxFloat(maxDelta, relDelta(p, v.Float()))
	}
	for elm, p := range prev.fractions {
		if !seen[elm] {
			maxDelta = maxFloat(maxDelta, relDelta(p.Float(), 0))
		}
	}
	return maxDelta
}

// String renders "Fe:0.5000 Ni:0.5000" style summaries, sorted by Z.
func (c Composition) String() string {
	elms := c.Elements()
	parts := make([]string, len(elms))
	for i, elm := range elms {
		parts[i] = fmt.Sprintf("%s:%.4f", elm, c.fractions[elm].Float())
	}
	return strings.Join(parts, " ")
}

func relDelta(prev, cur float64) float64 {
	diff := cur - prev
	if diff < 0 {
		diff = -diff
	}
	if prev == 0 && cur == 0 {
		return 0
	}
	if prev == 0 {
		return 1
	}
	return diff / prev
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
