package quant

import (
	"errors"
	"log/slog"

	"github.com/epmalab/microquant/composition"
	"github.com/epmalab/microquant/correction"
	"github.com/epmalab/microquant/element"
	"github.com/epmalab/microquant/kratio"
)

// Sentinel errors. All of these are fatal configuration conditions: they
// abort the computation for the current spectrum before any iteration runs.
var (
	// ErrMissingStandard indicates a measured element with no registered
	// standard and no unmeasured-element rule.
	ErrMissingStandard = errors.New("quant: no standard for element")

	// ErrStandardLacksElement indicates a standard composition that does not
	// contain the element it is registered for.
	ErrStandardLacksElement = errors.New("quant: standard does not contain its element")

	// ErrDuplicateStandard indicates a second standard for the same element.
	ErrDuplicateStandard = errors.New("quant: standard already registered")

	// ErrDuplicateRule indicates two rules claiming the same element.
	ErrDuplicateRule = errors.New("quant: rule already registered for element")

	// ErrNoKRatios indicates a Solve call with an empty k-ratio set.
	ErrNoKRatios = errors.New("quant: no k-ratios to solve")

	// ErrNoCachedStandard indicates a Cache.Compute for a transition set
	// that was never given a standard.
	ErrNoCachedStandard = errors.New("quant: no cached standard for transition set")

	// ErrNoUsableTransition indicates a transition set whose every line falls
	// below the cache's weight cutoff.
	ErrNoUsableTransition = errors.New("quant: no transition above weight cutoff")
)

// Default iteration constants. Empirically tuned values carried over from
// production quant engines; exposed through Options rather than re-derived.
const (
	// DefaultTolerance is the max relative per-element change that counts
	// as converged.
	DefaultTolerance = 1e-3

	// DefaultMaxIterations caps the fixed-point loop.
	DefaultMaxIterations = 10

	// DefaultMinWeight is the line-family weight cutoff of Cache: weaker
	// lines are noise at the standard-side sum and are excluded exactly as
	// reference implementations do.
	DefaultMinWeight = 0.1
)

// Standard is a reference material of known composition for one element.
type Standard struct {
	// Elm is the element this standard quantifies.
	Elm element.Element

	// Comp is the standard's known composition.
	Comp composition.Composition

	// Cond are the acquisition conditions the standard was measured under.
	// They must match the unknown's within correction tolerances.
	Cond correction.Conditions
}

// Options tunes the solver. The zero value means defaults.
type Options struct {
	// Tolerance is the convergence threshold on the max relative
	// per-element change; ≤ 0 means DefaultTolerance.
	Tolerance float64

	// MaxIterations caps the loop; ≤ 0 means DefaultMaxIterations.
	MaxIterations int

	// Normalize rescales the composition to sum 1 after each iteration.
	Normalize bool

	// OvervoltageRatio feeds kratio.Set.Optimal; ≤ 0 means
	// kratio.DefaultOvervoltageRatio.
	OvervoltageRatio float64

	// Logger, when non-nil, receives per-iteration debug traces and
	// skip-and-continue warnings.
	Logger *slog.Logger
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		Tolerance:        DefaultTolerance,
		MaxIterations:    DefaultMaxIterations,
		OvervoltageRatio: kratio.DefaultOvervoltageRatio,
	}
}

// normalized fills zero fields with defaults.
func (o Options) normalized() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.OvervoltageRatio <= 0 {
		o.OvervoltageRatio = kratio.DefaultOvervoltageRatio
	}
	return o
}

// Result is the outcome of one Solve.
type Result struct {
	// Comp is the final composition — best-effort when Converged is false.
	Comp composition.Composition

	// Converged reports whether the loop met the tolerance before the cap.
	Converged bool

	// Iterations is the number of correction passes performed.
	Iterations int

	// Optimal is the per-element k-ratio subset actually iterated on.
	Optimal *kratio.Set

	// Warnings accumulates recoverable conditions (skipped transitions,
	// clamped negatives, failed normalization). Empty on a clean solve.
	Warnings []string
}
