package correction

import (
	"errors"
	"fmt"
	"math"

	"github.com/epmalab/microquant/composition"
	"github.com/epmalab/microquant/uncertain"
	"github.com/epmalab/microquant/xray"
)

// Matching tolerances for acquisition conditions. Standards and unknowns
// measured outside these bounds are not comparable; the spread of published
// per-call-site tolerances is standardized to the stricter bound.
const (
	// BeamEnergyTol is the maximum beam-energy difference, keV.
	BeamEnergyTol = 0.01

	// TakeOffAngleTol is the maximum take-off-angle difference, radians (1°).
	TakeOffAngleTol = math.Pi / 180
)

// Sentinel errors. Conditions mismatches and unbound algorithms are fatal
// configuration errors; ErrNumericDomain is the recoverable root of every
// DomainError.
var (
	// ErrBeamEnergyMismatch indicates standard and unknown beam energies
	// differing by more than BeamEnergyTol.
	ErrBeamEnergyMismatch = errors.New("correction: beam energy mismatch")

	// ErrTakeOffMismatch indicates take-off angles differing by more than
	// TakeOffAngleTol.
	ErrTakeOffMismatch = errors.New("correction: take-off angle mismatch")

	// ErrNotInitialized indicates a correction query before Initialize.
	ErrNotInitialized = errors.New("correction: algorithm not initialized")

	// ErrBadConditions indicates non-positive beam energy or a take-off
	// angle outside (0, π/2).
	ErrBadConditions = errors.New("correction: invalid acquisition conditions")

	// ErrNumericDomain is the root of recoverable physics-domain failures;
	// match with errors.Is, inspect with errors.As on *DomainError.
	ErrNumericDomain = errors.New("correction: numeric domain")
)

// DomainError reports a physically invalid correction request — the
// iteration wandered somewhere the model cannot evaluate (edge at or above
// beam energy, overvoltage too low, vanishing absorption path). It unwraps
// to ErrNumericDomain so solvers can distinguish "skip this transition and
// keep iterating" from fatal configuration errors.
type DomainError struct {
	Tr     xray.Transition
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("correction: %s: %s", e.Tr, e.Reason)
}

func (e *DomainError) Unwrap() error { return ErrNumericDomain }

// Conditions are the acquisition conditions a correction depends on.
type Conditions struct {
	// BeamEnergy is the incident electron energy, keV.
	BeamEnergy float64

	// TakeOffAngle is the detector elevation above the sample surface,
	// radians.
	TakeOffAngle float64
}

// Validate rejects non-physical conditions.
func (c Conditions) Validate() error {
	if c.BeamEnergy <= 0 {
		return fmt.Errorf("%w: beam energy %g keV", ErrBadConditions, c.BeamEnergy)
	}
	if c.TakeOffAngle <= 0 || c.TakeOffAngle >= math.Pi/2 {
		return fmt.Errorf("%w: take-off angle %g rad", ErrBadConditions, c.TakeOffAngle)
	}
	return nil
}

// Match verifies two condition sets agree within the package tolerances.
// A violation is a fatal configuration error, not a warning.
func (c Conditions) Match(other Conditions) error {
	if math.Abs(c.BeamEnergy-other.BeamEnergy) > BeamEnergyTol {
		return fmt.Errorf("%w: %.3f vs %.3f keV", ErrBeamEnergyMismatch, c.BeamEnergy, other.BeamEnergy)
	}
	if math.Abs(c.TakeOffAngle-other.TakeOffAngle) > TakeOffAngleTol {
		return fmt.Errorf("%w: %.4f vs %.4f rad", ErrTakeOffMismatch, c.TakeOffAngle, other.TakeOffAngle)
	}
	return nil
}

// Algorithm is the pluggable matrix correction consumed by the solvers.
//
// Initialize binds the algorithm to a (material, shell, conditions) context
// and must precede every query; it fails with *DomainError when the beam
// cannot ionize the shell. ZAFCorrection must be re-queried whenever the
// composition changes — corrections are matrix-dependent by definition.
type Algorithm interface {
	// Initialize binds the algorithm to comp, the ionized shell of tr's
	// element, and cond.
	Initialize(comp composition.Composition, tr xray.Transition, cond Conditions) error

	// ZAFCorrection returns the combined dimensionless factor for tr under
	// the bound context.
	ZAFCorrection(tr xray.Transition) (float64, error)

	// RelativeZAF decomposes the correction of unk relative to std into
	// [Z, A, F, combined] factor ratios for reporting.
	RelativeZAF(std, unk composition.Composition, tr xray.Transition, cond Conditions) ([4]float64, error)

	// KRatio predicts the k-ratio of unk measured against std for tr:
	// k = (C_unk/C_std) · ZAF(std)/ZAF(unk).
	KRatio(std, unk composition.Composition, tr xray.Transition, cond Conditions) (uncertain.Value, error)
}

// MassAbsorption supplies mass absorption coefficients, cm²/g.
type MassAbsorption interface {
	// Mac returns the coefficient for tr's photons traversing comp.
	Mac(comp composition.Composition, tr xray.Transition) (float64, error)
}

// Backscatter supplies the backscatter loss factor R ∈ (0, 1] for the
// ionization of tr's shell in comp.
type Backscatter interface {
	R(comp composition.Composition, tr xray.Transition, cond Conditions) (float64, error)
}

// StoppingPower supplies the electron stopping-power integral term S for
// the ionization of tr's shell in comp.
type StoppingPower interface {
	S(comp composition.Composition, tr xray.Transition, cond Conditions) (float64, error)
}

// MeanIonizationPotential supplies J for one element, keV.
type MeanIonizationPotential interface {
	J(z int) float64
}

// IonizationCrossSection supplies the shell ionization cross section
// (arbitrary consistent units) at electron energy e keV.
type IonizationCrossSection interface {
	Sigma(tr xray.Transition, e float64) (float64, error)
}

// SurfaceIonization supplies φ(0), the surface-ionization value of the
// depth-distribution function.
type SurfaceIonization interface {
	Phi0(comp composition.Composition, tr xray.Transition, cond Conditions) (float64, error)
}
