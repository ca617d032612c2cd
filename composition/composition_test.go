package composition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epmalab/microquant/composition"
	"github.com/epmalab/microquant/element"
	"github.com/epmalab/microquant/uncertain"
)

// TestNew_RejectsNegativeAndInvalid checks construction preconditions.
func TestNew_RejectsNegativeAndInvalid(t *testing.T) {
	_, err := composition.FromWeights(map[element.Element]float64{element.Fe: -0.1})
	assert.ErrorIs(t, err, composition.ErrNegativeFraction)

	_, err = composition.New(map[element.Element]uncertain.Value{
		element.Element(0): uncertain.Exact(0.5),
	})
	assert.ErrorIs(t, err, composition.ErrInvalidElement)
}

// TestUnnormalizedSum verifies Sum may differ from 1 and both views work.
func TestUnnormalizedSum(t *testing.T) {
	c, err := composition.FromWeights(map[element.Element]float64{
		element.Fe: 0.6,
		element.Ni: 0.3,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.9, c.Sum(), 1e-12)
	assert.InDelta(t, 0.6, c.WeightFraction(element.Fe, false).Float(), 1e-12)
	assert.InDelta(t, 0.6/0.9, c.WeightFraction(element.Fe, true).Float(), 1e-12)
}

// TestNormalized returns a fresh composition summing to 1.
func TestNormalized(t *testing.T) {
	c, _ := composition.FromWeights(map[element.Element]float64{
		element.Si: 0.4,
		element.O:  0.4,
	})
	n, err := c.Normalized()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, n.Sum(), 1e-12)
	// Original untouched — value semantics.
	assert.InDelta(t, 0.8, c.Sum(), 1e-12)

	var empty composition.Composition
	_, err = empty.Normalized()
	assert.ErrorIs(t, err, composition.ErrEmptyComposition)
}

// TestAtomicFraction on FeO: equal mole counts give 0.5 each.
func TestAtomicFraction(t *testing.T) {
	wFe := element.Fe.AtomicWeight()
	wO := element.O.AtomicWeight()
	c, _ := composition.FromWeights(map[element.Element]float64{
		element.Fe: wFe / (wFe + wO),
		element.O:  wO / (wFe + wO),
	})
	assert.InDelta(t, 0.5, c.AtomicFraction(element.Fe), 1e-12)
	assert.InDelta(t, 0.5, c.AtomicFraction(element.O), 1e-12)
}

// TestWith_IsFunctionalUpdate verifies immutability of the receiver.
func TestWith_IsFunctionalUpdate(t *testing.T) {
	c, _ := composition.Pure(element.Fe)
	d := c.With(element.Ni, uncertain.Exact(0.2))

	assert.False(t, c.Contains(element.Ni))
	assert.True(t, d.Contains(element.Ni))
	assert.Equal(t, 2, d.Len())
}

// TestMaxRelativeDelta covers the solver's convergence metric.
func TestMaxRelativeDelta(t *testing.T) {
	prev, _ := composition.FromWeights(map[element.Element]float64{
		element.Fe: 0.50,
		element.Ni: 0.50,
	})
	cur, _ := composition.FromWeights(map[element.Element]float64{
		element.Fe: 0.51, // 2% relative change
		element.Ni: 0.495,
	})
	assert.InDelta(t, 0.02, cur.MaxRelativeDelta(prev), 1e-12)

	// An element vanishing counts as a full change.
	gone, _ := composition.FromWeights(map[element.Element]float64{element.Fe: 0.5})
	assert.InDelta(t, 1.0, gone.MaxRelativeDelta(prev), 1e-12)
}

// TestMeanZ of pure iron is 26.
func TestMeanZ(t *testing.T) {
	c, _ := composition.Pure(element.Fe)
	assert.InDelta(t, 26, c.MeanZ(), 1e-12)
}
