package correction

import (
	"math"

	"github.com/epmalab/microquant/composition"
	"github.com/epmalab/microquant/xray"
)

// BergerSeltzerJ is the Berger–Seltzer mean ionization potential fit,
// J(Z) = (9.76·Z + 58.5·Z⁻⁰·¹⁹)·10⁻³ keV.
type BergerSeltzerJ struct{}

// J returns the mean ionization potential of element z, keV.
func (BergerSeltzerJ) J(z int) float64 {
	fz := float64(z)
	return (9.76*fz + 58.5*math.Pow(fz, -0.19)) * 1e-3
}

// YakowitzBackscatter is the Yakowitz–Myklebust–Heinrich (FRAME) fit of the
// backscatter loss factor R as a function of overvoltage and mean Z.
type YakowitzBackscatter struct{}

// R returns the fraction of ionization retained despite backscattering.
func (YakowitzBackscatter) R(comp composition.Composition, tr xray.Transition, cond Conditions) (float64, error) {
	u0, err := tr.Overvoltage(cond.BeamEnergy)
	if err != nil {
		return 0, err
	}
	if u0 <= 1 {
		return 0, &DomainError{Tr: tr, Reason: "overvoltage at or below unity"}
	}
	z := comp.MeanZ()
	r1 := 8.73e-3*u0*u0*u0 - 0.1669*u0*u0 + 0.9662*u0 + 0.4523
	r2 := 2.703e-3*u0*u0*u0 - 5.182e-2*u0*u0 + 0.302*u0 - 0.1836
	r3 := (0.887*u0*u0*u0 - 3.44*u0*u0 + 9.33*u0 - 6.43) / (u0 * u0 * u0)
	r := r1 - r2*math.Log(r3*z+25)
	if r <= 0 || r > 1 {
		// The fit leaves its validity range at extreme U0/Z combinations.
		return 0, &DomainError{Tr: tr, Reason: "backscatter factor outside (0,1]"}
	}
	return r, nil
}

// BetheStopping evaluates the Bethe stopping-power term at the mean of beam
// and edge energy, S = Σᵢ Cᵢ·(Zᵢ/Aᵢ)·ln(1.166·Ē/Jᵢ).
type BetheStopping struct {
	// Jtab supplies per-element mean ionization potentials; nil means
	// BergerSeltzerJ.
	Jtab MeanIonizationPotential
}

// S returns the composite stopping term for ionizing tr's shell in comp.
func (b BetheStopping) S(comp composition.Composition, tr xray.Transition, cond Conditions) (float64, error) {
	edge, err := tr.EdgeEnergy()
	if err != nil {
		return 0, err
	}
	if edge >= cond.BeamEnergy {
		return 0, &DomainError{Tr: tr, Reason: "edge at or above beam energy"}
	}
	jt := b.Jtab
	if jt == nil {
		jt = BergerSeltzerJ{}
	}
	norm, err := comp.Normalized()
	if err != nil {
		return 0, err
	}
	eMean := (cond.BeamEnergy + edge) / 2
	var s float64
	for _, elm := range norm.Elements() {
		c := norm.WeightFraction(elm, false).Float()
		arg := 1.166 * eMean / jt.J(elm.Z())
		if arg <= 1 {
			// ln would go non-positive: the Bethe regime does not apply.
			return 0, &DomainError{Tr: tr, Reason: "beam energy below Bethe validity for " + elm.Symbol()}
		}
		s += c * float64(elm.Z()) / elm.AtomicWeight() * math.Log(arg)
	}
	if s <= 0 {
		return 0, &DomainError{Tr: tr, Reason: "non-positive stopping term"}
	}
	return s, nil
}
