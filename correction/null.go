package correction

import (
	"fmt"

	"github.com/epmalab/microquant/composition"
	"github.com/epmalab/microquant/uncertain"
	"github.com/epmalab/microquant/xray"
)

// Null is the identity matrix correction: every ZAF factor is exactly 1.
//
// It still enforces the physical preconditions (valid conditions, beam above
// the edge), so a solver wired to Null exercises the same error paths as one
// wired to a production model — only the numbers stop moving. Use it for
// round-trip verification: an unknown identical to its standard must quantify
// to the standard exactly.
type Null struct {
	bound bool
	cond  Conditions
}

// NewNull returns an identity correction.
func NewNull() *Null { return &Null{} }

// Initialize validates the context and binds the conditions.
func (n *Null) Initialize(_ composition.Composition, tr xray.Transition, cond Conditions) error {
	if err := cond.Validate(); err != nil {
		return err
	}
	if err := checkExcitable(tr, cond.BeamEnergy); err != nil {
		return err
	}
	n.bound, n.cond = true, cond
	return nil
}

// ZAFCorrection returns 1 for every transition the beam can excite.
func (n *Null) ZAFCorrection(tr xray.Transition) (float64, error) {
	if !n.bound {
		return 0, ErrNotInitialized
	}
	if err := checkExcitable(tr, n.cond.BeamEnergy); err != nil {
		return 0, err
	}
	return 1, nil
}

// RelativeZAF returns [1,1,1,1] for any std/unk pair.
func (n *Null) RelativeZAF(_, _ composition.Composition, tr xray.Transition, cond Conditions) ([4]float64, error) {
	if err := checkExcitable(tr, cond.BeamEnergy); err != nil {
		return [4]float64{}, err
	}
	return [4]float64{1, 1, 1, 1}, nil
}

// KRatio predicts k = C_unk/C_std, absorption-free.
func (n *Null) KRatio(std, unk composition.Composition, tr xray.Transition, cond Conditions) (uncertain.Value, error) {
	if err := cond.Validate(); err != nil {
		return uncertain.Value{}, err
	}
	if err := checkExcitable(tr, cond.BeamEnergy); err != nil {
		return uncertain.Value{}, err
	}
	cStd := std.WeightFraction(tr.Elm, false)
	cUnk := unk.WeightFraction(tr.Elm, false)
	return cUnk.Div(cStd)
}

// checkExcitable turns an unreachable edge into a *DomainError.
func checkExcitable(tr xray.Transition, beamEnergy float64) error {
	edge, err := tr.EdgeEnergy()
	if err != nil {
		return err
	}
	if edge >= beamEnergy {
		return &DomainError{
			Tr:     tr,
			Reason: fmt.Sprintf("edge %.3f keV at or above beam %.3f keV", edge, beamEnergy),
		}
	}
	return nil
}
