package film

import (
	"errors"
	"fmt"
	"math"

	"github.com/epmalab/microquant/composition"
	"github.com/epmalab/microquant/correction"
	"github.com/epmalab/microquant/element"
	"github.com/epmalab/microquant/kratio"
	"github.com/epmalab/microquant/quant"
	"github.com/epmalab/microquant/uncertain"
	"github.com/epmalab/microquant/xray"
)

// Solver resolves a k-ratio set into per-layer mass thicknesses and
// compositions for a stack of layers of known element assignment but
// unknown thickness.
//
// Like the bulk solver, a Solver carries only configuration; each Solve
// threads its iteration state through locals.
type Solver struct {
	alg       correction.Algorithm
	mac       correction.MassAbsorption
	layers    []map[element.Element]bool
	assigned  map[element.Element]int // 1-based layer index
	standards map[element.Element]quant.Standard
	oxidizer  *Oxidizer
	opts      Options
}

// NewSolver builds a layered solver with nLayers empty layers, indexed
// 1..nLayers from the beam-entry surface down. alg supplies standard-side
// ZAF corrections; mac supplies the absorption coefficients the
// attenuation factors are built from. opts == nil means DefaultOptions.
func NewSolver(alg correction.Algorithm, mac correction.MassAbsorption, nLayers int, opts *Options) (*Solver, error) {
	if nLayers < 1 {
		return nil, ErrNoLayers
	}
	o := DefaultOptions()
	if opts != nil {
		o = opts.normalized()
	}
	layers := make([]map[element.Element]bool, nLayers)
	for i := range layers {
		layers[i] = make(map[element.Element]bool)
	}
	return &Solver{
		alg:       alg,
		mac:       mac,
		layers:    layers,
		assigned:  make(map[element.Element]int),
		standards: make(map[element.Element]quant.Standard),
		opts:      o,
	}, nil
}

// Assign places elm in the layer at the given 1-based index.
//
// An element belongs to exactly one layer; a second Assign for the same
// element fails with ErrElementReassigned, and an index outside
// [1, nLayers] fails with ErrLayerIndex.
func (s *Solver) Assign(layer int, elm element.Element) error {
	if layer < 1 || layer > len(s.layers) {
		return fmt.Errorf("%w: %d of %d", ErrLayerIndex, layer, len(s.layers))
	}
	if !elm.Valid() {
		return element.ErrUnknownElement
	}
	if prev, dup := s.assigned[elm]; dup {
		return fmt.Errorf("%w: %s already in layer %d", ErrElementReassigned, elm, prev)
	}
	s.assigned[elm] = layer
	s.layers[layer-1][elm] = true
	return nil
}

// AddStandard registers the reference material for elm, under the same
// contract as the bulk solver: the composition must contain elm with a
// positive mass fraction, one standard per element.
func (s *Solver) AddStandard(elm element.Element, comp composition.Composition, cond correction.Conditions) error {
	if err := cond.Validate(); err != nil {
		return err
	}
	if comp.WeightFraction(elm, false).Float() <= 0 {
		return fmt.Errorf("%w: %s", quant.ErrStandardLacksElement, elm)
	}
	if _, dup := s.standards[elm]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateStandard, elm)
	}
	s.standards[elm] = quant.Standard{Elm: elm, Comp: comp, Cond: cond}
	return nil
}

// SetOxidizer installs the derived-element policy. The derived element
// still needs an Assign call to place it in the stack; it is exempt from
// the k-ratio and standard preconditions.
func (s *Solver) SetOxidizer(ox Oxidizer) error {
	if !ox.Elm.Valid() {
		return element.ErrUnknownElement
	}
	s.oxidizer = &ox
	return nil
}

// Solve iterates layer thicknesses and compositions until every layer's ρz
// settles within tolerance, or the cap is hit.
//
// Fatal preconditions: at least one layer, none empty, valid conditions,
// every assigned element measured (Oxidizer-derived excepted) with a
// standard matching cond, and every measured element assigned to a layer.
// After the preconditions pass, Solve always returns a Result; hitting the
// iteration cap flags Converged == false with a warning.
func (s *Solver) Solve(krs *kratio.Set, cond correction.Conditions) (Result, error) {
	if krs == nil || krs.Len() == 0 {
		return Result{}, quant.ErrNoKRatios
	}
	if err := cond.Validate(); err != nil {
		return Result{}, err
	}
	optimal := krs.Optimal(cond.BeamEnergy, s.opts.OvervoltageRatio)
	if err := s.validate(optimal, cond); err != nil {
		return Result{}, err
	}

	res := Result{}
	n := len(s.layers)
	rhoZ := make([]float64, n)
	comps := make([]composition.Composition, n)

	for iter := 1; iter <= s.opts.MaxIterations; iter++ {
		nextRhoZ, nextComps, err := s.contributionPass(optimal, cond, rhoZ, comps, &res)
		if err != nil {
			return Result{}, err
		}

		delta := 0.0
		for i := range nextRhoZ {
			if d := relDelta(rhoZ[i], nextRhoZ[i]); d > delta {
				delta = d
			}
		}
		rhoZ, comps = nextRhoZ, nextComps
		res.Iterations = iter
		if s.opts.Logger != nil {
			s.opts.Logger.Debug("film iteration",
				"iteration", iter, "delta", delta, "rhoz", fmt.Sprintf("%.6g", rhoZ))
		}
		// The first pass runs in the thin limit (all factors 1) and is a
		// seed, not a candidate: its delta against the zero state is
		// meaningless.
		if iter > 1 && delta < s.opts.Tolerance {
			res.Converged = true
			break
		}
	}
	if !res.Converged {
		res.warnf("did not converge within %d iterations", s.opts.MaxIterations)
	}

	res.Layers = make([]LayerResult, n)
	for i := range s.layers {
		res.Layers[i] = LayerResult{RhoZ: rhoZ[i], Comp: comps[i]}
	}
	return res, nil
}

// validate checks the fatal preconditions against the optimal k-ratio
// subset.
func (s *Solver) validate(optimal *kratio.Set, cond correction.Conditions) error {
	if len(s.layers) == 0 {
		return ErrNoLayers
	}
	for i, layer := range s.layers {
		if len(layer) == 0 {
			return fmt.Errorf("%w: layer %d", ErrEmptyLayer, i+1)
		}
	}
	measured := make(map[element.Element]bool)
	for _, elm := range optimal.Elements() {
		measured[elm] = true
		if _, ok := s.assigned[elm]; !ok {
			return fmt.Errorf("%w: %s", ErrUnassignedElement, elm)
		}
	}
	for elm := range s.assigned {
		if s.derived(elm) {
			continue
		}
		if !measured[elm] {
			return fmt.Errorf("%w: %s", ErrMissingKRatio, elm)
		}
		std, ok := s.standards[elm]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingStandard, elm)
		}
		if err := std.Cond.Match(cond); err != nil {
			return fmt.Errorf("film: standard %s: %w", elm, err)
		}
	}
	return nil
}

// contributionPass backs out every element's mass-thickness contribution
// from its k-ratio and the previous iteration's attenuation state, applies
// the Oxidizer, and renormalizes each layer.
func (s *Solver) contributionPass(
	optimal *kratio.Set,
	cond correction.Conditions,
	rhoZ []float64,
	comps []composition.Composition,
	res *Result,
) ([]float64, []composition.Composition, error) {
	contrib := make([]map[element.Element]float64, len(s.layers))
	for i := range contrib {
		contrib[i] = make(map[element.Element]float64)
	}

	for _, e := range optimal.Entries() {
		elm := e.Transitions.Element()
		li := s.assigned[elm] - 1
		tr := e.Transitions.Dominant()
		std := s.standards[elm]

		f, err := s.emergentFraction(tr, li, rhoZ, comps, cond)
		if err != nil {
			return nil, nil, fmt.Errorf("film: attenuation for %s: %w", tr, err)
		}

		zafStd, err := s.standardZAF(std.Comp, tr, cond)
		switch {
		case err == nil:
			c := std.Comp.WeightFraction(elm, false).Mul(e.K).Scale(zafStd / f)
			if c.Float() < 0 {
				if !c.WithinSigmaOfZero(1) {
					res.warnf("%s: negative contribution %.4g beyond uncertainty, clamped", elm, c.Float())
				}
				c = uncertain.Value{}
			}
			contrib[li][elm] = c.Float()

		case errors.Is(err, correction.ErrNumericDomain):
			res.warnf("%s: %v (contribution zeroed this iteration)", tr, err)
			if s.opts.Logger != nil {
				s.opts.Logger.Warn("film domain error", "transition", tr.String(), "err", err)
			}
			contrib[li][elm] = 0

		default:
			return nil, nil, fmt.Errorf("film: correction for %s: %w", tr, err)
		}
	}

	if s.oxidizer != nil {
		s.oxidizerPass(contrib)
	}

	nextRhoZ := make([]float64, len(s.layers))
	nextComps := make([]composition.Composition, len(s.layers))
	for i, layerContrib := range contrib {
		var sum float64
		for _, c := range layerContrib {
			sum += c
		}
		nextRhoZ[i] = sum

		var comp composition.Composition
		for elm, c := range layerContrib {
			frac := 0.0
			if sum > 0 {
				frac = c / sum
			}
			comp = comp.With(elm, uncertain.Exact(frac))
		}
		nextComps[i] = comp
	}
	return nextRhoZ, nextComps, nil
}

// oxidizerPass adds the derived element's contribution to the layer it is
// assigned to, from the measured cations sharing that layer.
func (s *Solver) oxidizerPass(contrib []map[element.Element]float64) {
	ox := s.oxidizer
	li, ok := s.assigned[ox.Elm]
	if !ok {
		return
	}
	var sum float64
	for elm, c := range contrib[li-1] {
		q, mapped := ox.Ratios[elm]
		if !mapped || elm == ox.Elm {
			continue
		}
		sum += q * c * ox.Elm.AtomicWeight() / elm.AtomicWeight()
	}
	contrib[li-1][ox.Elm] = sum
}

// emergentFraction is the fraction of tr's generated intensity that leaves
// the stack: full exponential attenuation through every layer above, and
// depth-averaged self-attenuation within the emitting layer.
//
// Zero-thickness layers contribute factor 1 (the thin limit), which also
// makes the very first iteration well-defined before any composition
// exists.
func (s *Solver) emergentFraction(
	tr xray.Transition,
	li int,
	rhoZ []float64,
	comps []composition.Composition,
	cond correction.Conditions,
) (float64, error) {
	sinPsi := math.Sin(cond.TakeOffAngle)
	f := 1.0
	for j := 0; j < li; j++ {
		if rhoZ[j] <= 0 {
			continue
		}
		mac, err := s.mac.Mac(comps[j], tr)
		if err != nil {
			return 0, err
		}
		f *= math.Exp(-mac / sinPsi * rhoZ[j])
	}
	if rhoZ[li] > 0 {
		mac, err := s.mac.Mac(comps[li], tr)
		if err != nil {
			return 0, err
		}
		x := mac / sinPsi * rhoZ[li]
		if x > 1e-9 {
			f *= (1 - math.Exp(-x)) / x
		}
	}
	return f, nil
}

// standardZAF evaluates the bulk correction of tr in the standard.
func (s *Solver) standardZAF(std composition.Composition, tr xray.Transition, cond correction.Conditions) (float64, error) {
	if err := s.alg.Initialize(std, tr, cond); err != nil {
		return 0, err
	}
	return s.alg.ZAFCorrection(tr)
}

// derived reports whether elm is supplied by the Oxidizer rather than a
// measurement.
func (s *Solver) derived(elm element.Element) bool {
	return s.oxidizer != nil && s.oxidizer.Elm == elm
}

func relDelta(prev, cur float64) float64 {
	switch {
	case prev <= 0 && cur <= 0:
		return 0
	case prev <= 0:
		return 1
	default:
		return math.Abs(cur-prev) / prev
	}
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
