package strategy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epmalab/microquant/correction"
	"github.com/epmalab/microquant/strategy"
)

// TestAdd_RoleMismatch rejects instances that do not satisfy the role.
func TestAdd_RoleMismatch(t *testing.T) {
	reg := strategy.New()

	// A MAC is not a correction.Algorithm.
	err := reg.Add(strategy.RoleCorrection, correction.PowerLawMAC{})
	assert.ErrorIs(t, err, strategy.ErrRoleMismatch)

	err = reg.Add(strategy.RoleMassAbsorption, nil)
	assert.ErrorIs(t, err, strategy.ErrRoleMismatch)

	err = reg.Add(strategy.Role(99), correction.PowerLawMAC{})
	assert.ErrorIs(t, err, strategy.ErrUnknownRole)
}

// TestGet_MissingRoleIsFatal reports ErrNoAlgorithm, never a default.
func TestGet_MissingRoleIsFatal(t *testing.T) {
	reg := strategy.New()
	_, err := reg.Get(strategy.RoleBackscatter)
	assert.ErrorIs(t, err, strategy.ErrNoAlgorithm)
}

// TestApply_IntersectionSemantics only overwrites roles already present.
func TestApply_IntersectionSemantics(t *testing.T) {
	base := strategy.New()
	require.NoError(t, base.Add(strategy.RoleMassAbsorption, correction.PowerLawMAC{}))

	patch := strategy.New()
	table := correction.NewTableMAC()
	require.NoError(t, patch.Add(strategy.RoleMassAbsorption, table))
	require.NoError(t, patch.Add(strategy.RoleBackscatter, correction.YakowitzBackscatter{}))

	base.Apply(patch)

	got, err := base.Get(strategy.RoleMassAbsorption)
	require.NoError(t, err)
	assert.Same(t, table, got, "present role must be overwritten")
	assert.False(t, base.Has(strategy.RoleBackscatter), "absent role must not be introduced")
}

// TestAddAll_UnionSemantics introduces new roles, patch winning collisions.
func TestAddAll_UnionSemantics(t *testing.T) {
	base := strategy.New()
	require.NoError(t, base.Add(strategy.RoleMassAbsorption, correction.PowerLawMAC{}))

	patch := strategy.New()
	require.NoError(t, patch.Add(strategy.RoleBackscatter, correction.YakowitzBackscatter{}))

	base.AddAll(patch)
	assert.True(t, base.Has(strategy.RoleMassAbsorption))
	assert.True(t, base.Has(strategy.RoleBackscatter))
}

// TestDefault_IsComplete wires every role the Simple correction consumes.
func TestDefault_IsComplete(t *testing.T) {
	reg := strategy.Default()
	for _, role := range []strategy.Role{
		strategy.RoleCorrection,
		strategy.RoleMassAbsorption,
		strategy.RoleBackscatter,
		strategy.RoleStoppingPower,
		strategy.RoleMeanIonizationPotential,
	} {
		assert.True(t, reg.Has(role), "default registry missing %s", role)
	}
}

// TestCorrectionFrom_HonorsSwappedMAC rebuilds Simple around the registry's
// current sub-algorithms.
func TestCorrectionFrom_HonorsSwappedMAC(t *testing.T) {
	reg := strategy.Default()
	require.NoError(t, reg.Add(strategy.RoleMassAbsorption, correction.NewTableMAC()))

	alg, err := strategy.CorrectionFrom(reg)
	require.NoError(t, err)
	assert.IsType(t, &correction.Simple{}, alg)
}

// TestCorrectionFrom_MissingCorrection is the fatal missing-dependency path.
func TestCorrectionFrom_MissingCorrection(t *testing.T) {
	_, err := strategy.CorrectionFrom(strategy.New())
	assert.ErrorIs(t, err, strategy.ErrNoAlgorithm)
}
