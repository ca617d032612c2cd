package correction_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epmalab/microquant/composition"
	"github.com/epmalab/microquant/correction"
	"github.com/epmalab/microquant/element"
	"github.com/epmalab/microquant/xray"
)

var toa40 = 40 * math.Pi / 180

func feKa(t *testing.T) xray.Transition {
	t.Helper()
	tr, err := xray.NewTransition(element.Fe, xray.KA1)
	require.NoError(t, err)
	return tr
}

// TestConditions_Match exercises both tolerances either side of the bound.
func TestConditions_Match(t *testing.T) {
	ref := correction.Conditions{BeamEnergy: 15.0, TakeOffAngle: toa40}

	assert.NoError(t, ref.Match(correction.Conditions{BeamEnergy: 15.005, TakeOffAngle: toa40}))
	assert.ErrorIs(t,
		ref.Match(correction.Conditions{BeamEnergy: 15.5, TakeOffAngle: toa40}),
		correction.ErrBeamEnergyMismatch)

	tilted := correction.Conditions{BeamEnergy: 15.0, TakeOffAngle: toa40 + 2*math.Pi/180}
	assert.ErrorIs(t, ref.Match(tilted), correction.ErrTakeOffMismatch)
}

// TestConditions_Validate rejects non-physical values.
func TestConditions_Validate(t *testing.T) {
	assert.ErrorIs(t,
		correction.Conditions{BeamEnergy: 0, TakeOffAngle: toa40}.Validate(),
		correction.ErrBadConditions)
	assert.ErrorIs(t,
		correction.Conditions{BeamEnergy: 15, TakeOffAngle: math.Pi}.Validate(),
		correction.ErrBadConditions)
}

// TestNull_Identity checks ZAF ≡ 1 and the k = C_unk/C_std prediction.
func TestNull_Identity(t *testing.T) {
	cond := correction.Conditions{BeamEnergy: 15.0, TakeOffAngle: toa40}
	tr := feKa(t)
	fe, _ := composition.Pure(element.Fe)

	n := correction.NewNull()
	require.NoError(t, n.Initialize(fe, tr, cond))

	zaf, err := n.ZAFCorrection(tr)
	require.NoError(t, err)
	assert.Equal(t, 1.0, zaf)

	unk, _ := composition.FromWeights(map[element.Element]float64{
		element.Fe: 0.5, element.Ni: 0.5,
	})
	k, err := n.KRatio(fe, unk, tr, cond)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, k.Float(), 1e-12)
}

// TestNull_EdgeAboveBeam is the recoverable domain error path.
func TestNull_EdgeAboveBeam(t *testing.T) {
	cond := correction.Conditions{BeamEnergy: 5.0, TakeOffAngle: toa40} // Fe K edge is 7.112
	tr := feKa(t)
	fe, _ := composition.Pure(element.Fe)

	err := correction.NewNull().Initialize(fe, tr, cond)
	assert.ErrorIs(t, err, correction.ErrNumericDomain)

	var de *correction.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, tr, de.Tr)
}

// TestSimple_SelfKRatioIsUnity: measuring a material against itself must
// predict k = C (pure standard) with all matrix terms cancelling.
func TestSimple_SelfKRatioIsUnity(t *testing.T) {
	cond := correction.Conditions{BeamEnergy: 15.0, TakeOffAngle: toa40}
	tr := feKa(t)
	fe, _ := composition.Pure(element.Fe)

	alg := correction.NewSimple(correction.PowerLawMAC{})
	k, err := alg.KRatio(fe, fe, tr, cond)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, k.Float(), 1e-12)

	rel, err := alg.RelativeZAF(fe, fe, tr, cond)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rel[3], 1e-12)
}

// TestSimple_MatrixEffectMoves: diluting Fe into a nickel matrix must move
// the predicted k away from the concentration by a finite, sane factor.
func TestSimple_MatrixEffectMoves(t *testing.T) {
	cond := correction.Conditions{BeamEnergy: 15.0, TakeOffAngle: toa40}
	tr := feKa(t)
	fe, _ := composition.Pure(element.Fe)
	unk, _ := composition.FromWeights(map[element.Element]float64{
		element.Fe: 0.5, element.Ni: 0.5,
	})

	alg := correction.NewSimple(correction.PowerLawMAC{})
	k, err := alg.KRatio(fe, unk, tr, cond)
	require.NoError(t, err)

	assert.Greater(t, math.Abs(k.Float()-0.5), 1e-6, "matrix correction must not be a no-op")
	assert.Greater(t, k.Float(), 0.25)
	assert.Less(t, k.Float(), 0.75)
}

// TestSimple_NotInitialized guards the query-before-bind misuse.
func TestSimple_NotInitialized(t *testing.T) {
	alg := correction.NewSimple(correction.PowerLawMAC{})
	_, err := alg.ZAFCorrection(feKa(t))
	assert.ErrorIs(t, err, correction.ErrNotInitialized)
}

// TestTableMAC_MissingAbsorber fails loudly instead of guessing.
func TestTableMAC_MissingAbsorber(t *testing.T) {
	tr := feKa(t)
	tab := correction.NewTableMAC().Set(element.Fe, tr, 71.0)

	fe, _ := composition.Pure(element.Fe)
	mac, err := tab.Mac(fe, tr)
	require.NoError(t, err)
	assert.Equal(t, 71.0, mac)

	mixed, _ := composition.FromWeights(map[element.Element]float64{
		element.Fe: 0.5, element.Ni: 0.5,
	})
	_, err = tab.Mac(mixed, tr)
	assert.ErrorIs(t, err, correction.ErrNoMACData)
}

// TestPowerLawMAC_Calibration anchors the fit near tabulated Fe Kα in Fe.
func TestPowerLawMAC_Calibration(t *testing.T) {
	fe, _ := composition.Pure(element.Fe)
	mac, err := correction.PowerLawMAC{}.Mac(fe, feKa(t))
	require.NoError(t, err)
	assert.InDelta(t, 71.0, mac, 10.0)
}
