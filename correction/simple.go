package correction

import (
	"math"

	"github.com/epmalab/microquant/composition"
	"github.com/epmalab/microquant/uncertain"
	"github.com/epmalab/microquant/xray"
)

// Simple is a compact Philibert-style matrix correction:
//
//	Z — backscatter over stopping power, R/S (Yakowitz + Bethe by default)
//	A — simplified Philibert absorption f(χ) with the Duncumb–Shields σ
//	F — unity (secondary fluorescence neglected)
//
// It is not a metrology-grade model; it is the smallest correction with a
// genuine composition dependence, so the fixed-point solvers have something
// real to converge against. Sub-algorithms are swappable via the
// strategy registry or the field setters on construction.
type Simple struct {
	mac MassAbsorption
	bks Backscatter
	stp StoppingPower

	bound bool
	comp  composition.Composition
	cond  Conditions
}

// NewSimple builds a Simple correction around the given mass-absorption
// supplier, with Yakowitz backscatter and Bethe stopping power.
func NewSimple(mac MassAbsorption) *Simple {
	return &Simple{
		mac: mac,
		bks: YakowitzBackscatter{},
		stp: BetheStopping{},
	}
}

// NewSimpleFromParts builds a Simple correction from explicit sub-algorithm
// choices. Nil parts fall back to the defaults of NewSimple.
func NewSimpleFromParts(mac MassAbsorption, bks Backscatter, stp StoppingPower) *Simple {
	s := NewSimple(mac)
	if bks != nil {
		s.bks = bks
	}
	if stp != nil {
		s.stp = stp
	}
	return s
}

// Initialize binds the algorithm to comp and cond for tr's shell.
func (s *Simple) Initialize(comp composition.Composition, tr xray.Transition, cond Conditions) error {
	if err := cond.Validate(); err != nil {
		return err
	}
	if err := checkExcitable(tr, cond.BeamEnergy); err != nil {
		return err
	}
	s.bound, s.comp, s.cond = true, comp, cond
	return nil
}

// ZAFCorrection returns 1/((R/S)·f(χ)) under the bound context, so that
// measured = generated / ZAFCorrection.
func (s *Simple) ZAFCorrection(tr xray.Transition) (float64, error) {
	if !s.bound {
		return 0, ErrNotInitialized
	}
	za, err := s.factors(s.comp, tr, s.cond)
	if err != nil {
		return 0, err
	}
	return 1 / (za[0] * za[1]), nil
}

// RelativeZAF returns the [Z, A, F, combined] factor ratios of unk relative
// to std, i.e. the multipliers that take C_unk/C_std to the predicted k.
func (s *Simple) RelativeZAF(std, unk composition.Composition, tr xray.Transition, cond Conditions) ([4]float64, error) {
	if err := cond.Validate(); err != nil {
		return [4]float64{}, err
	}
	fs, err := s.factors(std, tr, cond)
	if err != nil {
		return [4]float64{}, err
	}
	fu, err := s.factors(unk, tr, cond)
	if err != nil {
		return [4]float64{}, err
	}
	zr := fu[0] / fs[0]
	ar := fu[1] / fs[1]
	return [4]float64{zr, ar, 1, zr * ar}, nil
}

// KRatio predicts k = (C_unk/C_std) · (R/S·f)_unk/(R/S·f)_std.
func (s *Simple) KRatio(std, unk composition.Composition, tr xray.Transition, cond Conditions) (uncertain.Value, error) {
	rel, err := s.RelativeZAF(std, unk, tr, cond)
	if err != nil {
		return uncertain.Value{}, err
	}
	cStd := std.WeightFraction(tr.Elm, false)
	cUnk := unk.WeightFraction(tr.Elm, false)
	q, err := cUnk.Div(cStd)
	if err != nil {
		return uncertain.Value{}, err
	}
	return q.Scale(rel[3]), nil
}

// factors returns [R/S, f(χ)] for tr emitted from comp.
func (s *Simple) factors(comp composition.Composition, tr xray.Transition, cond Conditions) ([2]float64, error) {
	if err := checkExcitable(tr, cond.BeamEnergy); err != nil {
		return [2]float64{}, err
	}
	r, err := s.bks.R(comp, tr, cond)
	if err != nil {
		return [2]float64{}, err
	}
	sp, err := s.stp.S(comp, tr, cond)
	if err != nil {
		return [2]float64{}, err
	}
	f, err := s.absorption(comp, tr, cond)
	if err != nil {
		return [2]float64{}, err
	}
	return [2]float64{r / sp, f}, nil
}

// absorption evaluates the simplified Philibert f(χ) with
// σ = 4.5·10⁵/(E0^1.65 − Ec^1.65) and h = 1.2·A/Z² on the mean material.
func (s *Simple) absorption(comp composition.Composition, tr xray.Transition, cond Conditions) (float64, error) {
	edge, err := tr.EdgeEnergy()
	if err != nil {
		return 0, err
	}
	mac, err := s.mac.Mac(comp, tr)
	if err != nil {
		return 0, err
	}
	chi := mac / math.Sin(cond.TakeOffAngle)
	sigma := 4.5e5 / (math.Pow(cond.BeamEnergy, 1.65) - math.Pow(edge, 1.65))

	norm, err := comp.Normalized()
	if err != nil {
		return 0, err
	}
	var h float64
	for _, elm := range norm.Elements() {
		c := norm.WeightFraction(elm, false).Float()
		z := float64(elm.Z())
		h += c * 1.2 * elm.AtomicWeight() / (z * z)
	}

	f := 1 / ((1 + chi/sigma) * (1 + h/(1+h)*chi/sigma))
	if f <= 0 || math.IsNaN(f) {
		return 0, &DomainError{Tr: tr, Reason: "absorption factor degenerate"}
	}
	return f, nil
}
