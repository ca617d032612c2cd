package uncertain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epmalab/microquant/uncertain"
)

// TestNew_NegativeSigma verifies that a negative sigma is stored as |sigma|.
func TestNew_NegativeSigma(t *testing.T) {
	v := uncertain.New(1.0, -0.25)
	assert.Equal(t, 0.25, v.Sigma(), "sigma must be stored unsigned")
}

// TestAdd_Quadrature checks 3±4 + 0±3 = 3±5.
func TestAdd_Quadrature(t *testing.T) {
	v := uncertain.New(3, 4).Add(uncertain.New(0, 3))
	assert.Equal(t, 3.0, v.Float())
	assert.InDelta(t, 5.0, v.Sigma(), 1e-12, "4 and 3 combine to 5 in quadrature")
}

// TestMul_Propagation checks the product rule on a known pair.
func TestMul_Propagation(t *testing.T) {
	v := uncertain.New(2, 0.2).Mul(uncertain.New(5, 0.5))
	assert.Equal(t, 10.0, v.Float())
	// σ = hypot(5·0.2, 2·0.5) = hypot(1,1) = √2
	assert.InDelta(t, math.Sqrt2, v.Sigma(), 1e-12)
}

// TestDiv_ByZero ensures a zero denominator is an explicit error.
func TestDiv_ByZero(t *testing.T) {
	_, err := uncertain.New(1, 0.1).Div(uncertain.Exact(0))
	assert.ErrorIs(t, err, uncertain.ErrDivideByZero)
}

// TestDiv_RelativeCombination checks the quotient rule.
func TestDiv_RelativeCombination(t *testing.T) {
	q, err := uncertain.New(10, 1).Div(uncertain.New(2, 0.2))
	require.NoError(t, err)
	assert.Equal(t, 5.0, q.Float())
	// relative: hypot(0.1, 0.1) → σ = 5·0.1·√2
	assert.InDelta(t, 5*0.1*math.Sqrt2, q.Sigma(), 1e-12)
}

// TestClampNonNegative verifies the negative→zero clamp keeps sigma.
func TestClampNonNegative(t *testing.T) {
	v := uncertain.New(-0.003, 0.005).ClampNonNegative()
	assert.Equal(t, 0.0, v.Float())
	assert.Equal(t, 0.005, v.Sigma())

	untouched := uncertain.New(0.4, 0.01).ClampNonNegative()
	assert.Equal(t, 0.4, untouched.Float())
}

// TestWithinSigmaOfZero covers both sides of the n-sigma boundary.
func TestWithinSigmaOfZero(t *testing.T) {
	assert.True(t, uncertain.New(-0.004, 0.005).WithinSigmaOfZero(1))
	assert.False(t, uncertain.New(-0.02, 0.005).WithinSigmaOfZero(1))
}
