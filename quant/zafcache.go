package quant

import (
	"fmt"

	"github.com/epmalab/microquant/composition"
	"github.com/epmalab/microquant/correction"
	"github.com/epmalab/microquant/xray"
)

// Cache precomputes the standard-side matrix correction once per
// (transition set, standard) so that repeated unknown-side evaluations —
// thousands of pixels of a quant map against a handful of standards — do
// not repeat the standard-side work.
//
// Concurrency contract: populate every standard with AddStandard first;
// Compute never mutates the entry map afterwards. There is no internal
// locking, matching the reference layout of this cache — interleaving
// AddStandard with Compute is a data race. Note that Compute rebinds the
// Algorithm per transition, so parallel map workers should each own a
// Cache around their own Algorithm instance.
type Cache struct {
	alg       correction.Algorithm
	minWeight float64
	entries   map[string]cacheEntry // keyed by TransitionSet.Key()
}

type cacheEntry struct {
	ts   xray.TransitionSet
	comp composition.Composition
	cond correction.Conditions
	// stdSum is Σ over participating transitions of w · C_std · e_std,
	// where e is the emission efficiency 1/ZAFCorrection.
	stdSum float64
}

// NewCache builds a cache around alg. minWeight ≤ 0 means DefaultMinWeight:
// only transitions whose family weight reaches the cutoff participate —
// weaker lines contribute noise, not signal, at the standard side. The
// cutoff value is kept numerically identical to reference data.
func NewCache(alg correction.Algorithm, minWeight float64) *Cache {
	if minWeight <= 0 {
		minWeight = DefaultMinWeight
	}
	return &Cache{
		alg:       alg,
		minWeight: minWeight,
		entries:   make(map[string]cacheEntry),
	}
}

// AddStandard caches the standard-side weighted correction sum for ts.
func (c *Cache) AddStandard(ts xray.TransitionSet, std composition.Composition, cond correction.Conditions) error {
	if ts.Empty() {
		return xray.ErrEmptySet
	}
	if err := cond.Validate(); err != nil {
		return err
	}
	sum, err := c.weightedSum(ts, std, cond)
	if err != nil {
		return err
	}
	cStd := std.WeightFraction(ts.Element(), false).Float()
	if cStd <= 0 {
		return fmt.Errorf("%w: %s", ErrStandardLacksElement, ts.Element())
	}
	c.entries[ts.Key()] = cacheEntry{ts: ts, comp: std, cond: cond, stdSum: cStd * sum}
	return nil
}

// Compute evaluates the unknown-side sum for ts and returns the cached
// ratio r such that the predicted k-ratio is C_unk × r.
//
// Conditions must match the cached standard's within correction tolerances;
// a mismatch is fatal, the correction would be physically meaningless.
func (c *Cache) Compute(ts xray.TransitionSet, unk composition.Composition, cond correction.Conditions) (float64, error) {
	entry, ok := c.entries[ts.Key()]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoCachedStandard, ts)
	}
	if err := entry.cond.Match(cond); err != nil {
		return 0, err
	}
	unkSum, err := c.weightedSum(ts, unk, cond)
	if err != nil {
		return 0, err
	}
	return unkSum / entry.stdSum, nil
}

// HasStandard reports whether ts has a cached standard.
func (c *Cache) HasStandard(ts xray.TransitionSet) bool {
	_, ok := c.entries[ts.Key()]
	return ok
}

// weightedSum is Σ over transitions with weight ≥ minWeight of
// w · (1/ZAFCorrection) evaluated on comp.
func (c *Cache) weightedSum(ts xray.TransitionSet, comp composition.Composition, cond correction.Conditions) (float64, error) {
	var (
		sum  float64
		used int
	)
	for _, tr := range ts.Transitions() {
		w := tr.Weight()
		if w < c.minWeight {
			continue
		}
		if err := c.alg.Initialize(comp, tr, cond); err != nil {
			return 0, err
		}
		zaf, err := c.alg.ZAFCorrection(tr)
		if err != nil {
			return 0, err
		}
		sum += w / zaf
		used++
	}
	if used == 0 {
		return 0, fmt.Errorf("%w: %s (cutoff %.2g)", ErrNoUsableTransition, ts, c.minWeight)
	}
	return sum, nil
}
