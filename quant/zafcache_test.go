package quant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epmalab/microquant/composition"
	"github.com/epmalab/microquant/correction"
	"github.com/epmalab/microquant/element"
	"github.com/epmalab/microquant/quant"
	"github.com/epmalab/microquant/xray"
)

// TestCache_IdentityPrediction: with the identity correction the cached
// ratio reduces to 1/C_std, so predicted k = C_unk/C_std.
func TestCache_IdentityPrediction(t *testing.T) {
	feK, err := xray.FamilySet(element.Fe, xray.FamilyK)
	require.NoError(t, err)

	cache := quant.NewCache(correction.NewNull(), 0)
	require.NoError(t, cache.AddStandard(feK, pure(t, element.Fe), cond15))

	unk, _ := composition.FromWeights(map[element.Element]float64{
		element.Fe: 0.5, element.Ni: 0.5,
	})
	r, err := cache.Compute(feK, unk, cond15)
	require.NoError(t, err)

	// Pure standard: C_std = 1, so k = C_unk × r = 0.5.
	assert.InDelta(t, 0.5, 0.5*r, 1e-12)
	assert.InDelta(t, 1.0, r, 1e-12)
}

// TestCache_WeightCutoffExcludesWeakLines: with the cutoff above the Kβ
// weight only Kα participates, and an impossible cutoff is an error.
func TestCache_WeightCutoffExcludesWeakLines(t *testing.T) {
	feK, err := xray.FamilySet(element.Fe, xray.FamilyK) // Kα1 w=1.0, Kβ1 w=0.14
	require.NoError(t, err)

	// Cutoff 0.5 keeps only Kα1; the identity algorithm makes the sums
	// directly comparable: default cutoff sums 1.14, strict cutoff 1.0.
	strict := quant.NewCache(correction.NewNull(), 0.5)
	require.NoError(t, strict.AddStandard(feK, pure(t, element.Fe), cond15))
	r, err := strict.Compute(feK, pure(t, element.Fe), cond15)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-12, "self-ratio stays 1 regardless of cutoff")

	impossible := quant.NewCache(correction.NewNull(), 1.5)
	err = impossible.AddStandard(feK, pure(t, element.Fe), cond15)
	assert.ErrorIs(t, err, quant.ErrNoUsableTransition)
}

// TestCache_ConditionsMismatchFatal rejects a Compute at the wrong beam
// energy.
func TestCache_ConditionsMismatchFatal(t *testing.T) {
	feK, err := xray.FamilySet(element.Fe, xray.FamilyK)
	require.NoError(t, err)

	cache := quant.NewCache(correction.NewNull(), 0)
	require.NoError(t, cache.AddStandard(feK, pure(t, element.Fe), cond15))

	bad := correction.Conditions{BeamEnergy: 15.5, TakeOffAngle: cond15.TakeOffAngle}
	_, err = cache.Compute(feK, pure(t, element.Fe), bad)
	assert.ErrorIs(t, err, correction.ErrBeamEnergyMismatch)
}

// TestCache_MissingStandard reports ErrNoCachedStandard.
func TestCache_MissingStandard(t *testing.T) {
	niK, err := xray.FamilySet(element.Ni, xray.FamilyK)
	require.NoError(t, err)

	cache := quant.NewCache(correction.NewNull(), 0)
	_, err = cache.Compute(niK, pure(t, element.Ni), cond15)
	assert.ErrorIs(t, err, quant.ErrNoCachedStandard)
}

// TestCache_RepeatedComputeIsStable: the standard-side sum is computed
// once at AddStandard; repeated unknown evaluations return identical
// ratios, the property map-scale quantification relies on.
func TestCache_RepeatedComputeIsStable(t *testing.T) {
	feK, err := xray.FamilySet(element.Fe, xray.FamilyK)
	require.NoError(t, err)

	cache := quant.NewCache(correction.NewSimple(correction.PowerLawMAC{}), 0)
	require.NoError(t, cache.AddStandard(feK, pure(t, element.Fe), cond15))

	unk, _ := composition.FromWeights(map[element.Element]float64{
		element.Fe: 0.5, element.Ni: 0.5,
	})

	first, err := cache.Compute(feK, unk, cond15)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		r, err := cache.Compute(feK, unk, cond15)
		require.NoError(t, err)
		assert.Equal(t, first, r)
	}
}
