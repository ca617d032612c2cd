package quant

import (
	"errors"
	"fmt"

	"github.com/epmalab/microquant/composition"
	"github.com/epmalab/microquant/correction"
	"github.com/epmalab/microquant/element"
	"github.com/epmalab/microquant/kratio"
	"github.com/epmalab/microquant/uncertain"
)

// Solver resolves a k-ratio set into a composition by fixed-point
// iteration of a matrix correction.
//
// A Solver carries only configuration (standards, rules, options) — each
// Solve call threads its composition guess through locals, so one Solver
// may serve many sequential spectra.
type Solver struct {
	alg       correction.Algorithm
	standards map[element.Element]Standard
	rules     map[element.Element]UnmeasuredRule
	opts      Options
}

// NewSolver builds a solver around the given correction algorithm.
// opts == nil means DefaultOptions.
func NewSolver(alg correction.Algorithm, opts *Options) *Solver {
	o := DefaultOptions()
	if opts != nil {
		o = opts.normalized()
	}
	return &Solver{
		alg:       alg,
		standards: make(map[element.Element]Standard),
		rules:     make(map[element.Element]UnmeasuredRule),
		opts:      o,
	}
}

// AddStandard registers the reference material for elm.
//
// Contract: comp must contain elm with a positive mass fraction, and only
// one standard may exist per element.
func (s *Solver) AddStandard(elm element.Element, comp composition.Composition, cond correction.Conditions) error {
	if err := cond.Validate(); err != nil {
		return err
	}
	if comp.WeightFraction(elm, false).Float() <= 0 {
		return fmt.Errorf("%w: %s", ErrStandardLacksElement, elm)
	}
	if _, dup := s.standards[elm]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateStandard, elm)
	}
	s.standards[elm] = Standard{Elm: elm, Comp: comp, Cond: cond}
	return nil
}

// AddRule registers an unmeasured-element rule. One rule per element.
func (s *Solver) AddRule(r UnmeasuredRule) error {
	elm := r.Element()
	if _, dup := s.rules[elm]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, elm)
	}
	s.rules[elm] = r
	return nil
}

// Solve iterates the composition until converged or capped.
//
// Fatal preconditions (checked before the first iteration): non-empty
// k-ratio set, valid conditions, a standard for every measured element, and
// every standard's conditions matching cond within tolerance. Violations
// return an error and no Result.
//
// After that, Solve always returns a Result: recoverable per-transition
// physics failures are skipped with a warning, and hitting the iteration
// cap yields Converged == false, not an error.
func (s *Solver) Solve(krs *kratio.Set, cond correction.Conditions) (Result, error) {
	if krs == nil || krs.Len() == 0 {
		return Result{}, ErrNoKRatios
	}
	if err := cond.Validate(); err != nil {
		return Result{}, err
	}

	optimal := krs.Optimal(cond.BeamEnergy, s.opts.OvervoltageRatio)
	for _, elm := range optimal.Elements() {
		std, ok := s.standards[elm]
		if !ok {
			// A rule cannot substitute for a standard on a *measured*
			// element; the k-ratio would have nothing to refer to.
			return Result{}, fmt.Errorf("%w: %s", ErrMissingStandard, elm)
		}
		if err := std.Cond.Match(cond); err != nil {
			return Result{}, fmt.Errorf("quant: standard %s: %w", elm, err)
		}
	}

	res := Result{Optimal: optimal}
	cur := s.seed(optimal, &res)

	for iter := 1; iter <= s.opts.MaxIterations; iter++ {
		next, err := s.correctionPass(optimal, cur, cond, &res)
		if err != nil {
			return Result{}, err
		}
		next = s.unmeasuredPass(next, &res)
		if s.opts.Normalize {
			if n, err := next.Normalized(); err == nil {
				next = n
			} else {
				res.warnf("normalization skipped: %v", err)
			}
		}

		delta := next.MaxRelativeDelta(cur)
		cur = next
		res.Iterations = iter
		if s.opts.Logger != nil {
			s.opts.Logger.Debug("quant iteration",
				"iteration", iter, "delta", delta, "composition", cur.String())
		}
		if delta < s.opts.Tolerance {
			res.Converged = true
			break
		}
	}
	if !res.Converged {
		res.warnf("did not converge within %d iterations", s.opts.MaxIterations)
	}

	res.Comp = cur
	return res, nil
}

// seed builds the first guess: k × C_std per measured element, rules
// applied, normalized when possible.
func (s *Solver) seed(optimal *kratio.Set, res *Result) composition.Composition {
	var guess composition.Composition
	for _, e := range optimal.Entries() {
		elm := e.Transitions.Element()
		cStd := s.standards[elm].Comp.WeightFraction(elm, false)
		guess = guess.With(elm, e.K.Mul(cStd).ClampNonNegative())
	}
	guess = s.unmeasuredPass(guess, res)
	if n, err := guess.Normalized(); err == nil {
		return n
	}
	// All-zero k-ratios: fall back to equal fractions so the corrections
	// have a matrix to evaluate.
	res.warnf("seed normalization failed; starting from equal fractions")
	elms := guess.Elements()
	for _, elm := range elms {
		guess = guess.With(elm, uncertain.Exact(1/float64(len(elms))))
	}
	return guess
}

// correctionPass re-evaluates every measured element against the current
// guess: newC = k_meas · C_std / relZAF.
//
// Elements at zero stay in the composition — their presence can still shift
// the matrix correction of everything else. Recoverable domain errors zero
// the element for this iteration and continue.
func (s *Solver) correctionPass(
	optimal *kratio.Set,
	cur composition.Composition,
	cond correction.Conditions,
	res *Result,
) (composition.Composition, error) {
	next := cur
	for _, e := range optimal.Entries() {
		elm := e.Transitions.Element()
		std := s.standards[elm]
		tr := e.Transitions.Dominant()

		rel, err := s.alg.RelativeZAF(std.Comp, cur, tr, cond)
		switch {
		case err == nil && rel[3] > 0:
			cStd := std.Comp.WeightFraction(elm, false)
			updated := e.K.Mul(cStd).Scale(1 / rel[3])
			if updated.Float() < 0 {
				if !updated.WithinSigmaOfZero(1) {
					res.warnf("%s: negative fraction %.4g beyond uncertainty, clamped", elm, updated.Float())
				}
				updated = updated.ClampNonNegative()
			}
			next = next.With(elm, updated)

		case err != nil && errors.Is(err, correction.ErrNumericDomain):
			// Skip-and-continue policy: zero this element for the
			// iteration, keep the matrix honest, surface a warning.
			res.warnf("%s: %v (contribution zeroed this iteration)", tr, err)
			if s.opts.Logger != nil {
				s.opts.Logger.Warn("correction domain error", "transition", tr.String(), "err", err)
			}
			next = next.With(elm, uncertain.Value{})

		case err != nil:
			return composition.Composition{}, fmt.Errorf("quant: correction for %s: %w", tr, err)

		default: // rel[3] <= 0 without an error: treat as degenerate
			res.warnf("%s: degenerate correction ratio, contribution zeroed", tr)
			next = next.With(elm, uncertain.Value{})
		}
	}
	return next, nil
}

// unmeasuredPass applies every registered rule to the updated composition.
// Rule failures are recoverable: warn and leave the element as-is.
func (s *Solver) unmeasuredPass(c composition.Composition, res *Result) composition.Composition {
	for _, elm := range sortedRuleElements(s.rules) {
		v, err := s.rules[elm].Compute(c)
		if err != nil {
			res.warnf("rule for %s: %v", elm, err)
			continue
		}
		c = c.With(elm, v.ClampNonNegative())
	}
	return c
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func sortedRuleElements(rules map[element.Element]UnmeasuredRule) []element.Element {
	out := make([]element.Element, 0, len(rules))
	for elm := range rules {
		out = append(out, elm)
	}
	element.Sort(out)
	return out
}
