package film

import (
	"errors"
	"log/slog"

	"github.com/epmalab/microquant/composition"
	"github.com/epmalab/microquant/element"
	"github.com/epmalab/microquant/kratio"
)

// Convergence and iteration defaults. The ρz tolerance is an order tighter
// than the bulk solver's: layer thicknesses feed the attenuation factors of
// every layer below, so residual error compounds through the stack.
const (
	// DefaultTolerance bounds the relative ρz change, per layer, that
	// counts as converged.
	DefaultTolerance = 1e-4

	// DefaultMaxIterations caps the fixed-point loop.
	DefaultMaxIterations = 10
)

var (
	// ErrNoLayers is returned when the solver holds no layers at all.
	ErrNoLayers = errors.New("film: no layers defined")

	// ErrLayerIndex is returned when a layer index lies outside [1, N].
	ErrLayerIndex = errors.New("film: layer index out of range")

	// ErrElementReassigned is returned when an element is assigned to a
	// second layer; each element belongs to exactly one.
	ErrElementReassigned = errors.New("film: element already assigned to a layer")

	// ErrEmptyLayer is returned by Solve when a layer has no elements.
	ErrEmptyLayer = errors.New("film: layer has no assigned elements")

	// ErrMissingKRatio is returned by Solve when an assigned element
	// (other than an Oxidizer-derived one) has no measured k-ratio.
	ErrMissingKRatio = errors.New("film: assigned element has no k-ratio")

	// ErrUnassignedElement is returned by Solve when a measured element
	// belongs to no layer.
	ErrUnassignedElement = errors.New("film: measured element assigned to no layer")

	// ErrMissingStandard is returned by Solve when an assigned element has
	// no registered standard.
	ErrMissingStandard = errors.New("film: no standard for element")

	// ErrDuplicateStandard is returned by AddStandard on a second standard
	// for the same element.
	ErrDuplicateStandard = errors.New("film: standard already registered for element")
)

// Options tunes the layered solve. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	// Tolerance is the per-layer relative ρz change below which the
	// iteration stops.
	Tolerance float64

	// MaxIterations caps the loop; hitting the cap flags the Result as
	// non-converged but is not an error.
	MaxIterations int

	// OvervoltageRatio feeds kratio.Set.Optimal when picking each
	// element's line family; ≤ 0 means kratio.DefaultOvervoltageRatio.
	OvervoltageRatio float64

	// Logger receives per-iteration ρz traces at debug level. Nil
	// disables tracing.
	Logger *slog.Logger
}

// DefaultOptions returns the standard tolerances.
func DefaultOptions() Options {
	return Options{
		Tolerance:        DefaultTolerance,
		MaxIterations:    DefaultMaxIterations,
		OvervoltageRatio: kratio.DefaultOvervoltageRatio,
	}
}

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

// Oxidizer derives one element per layer from the others by fixed
// stoichiometry, the thin-film analogue of quant.ByStoichiometry: the
// derived element needs no k-ratio, and its contribution to a layer's ρz is
// accumulated from the measured cations' contributions.
type Oxidizer struct {
	// Elm is the derived element, typically oxygen.
	Elm element.Element

	// Ratios maps each cation to its anions-per-cation count q; a cation
	// contributes q·A_derived/A_cation times its own mass-thickness.
	// Cations absent from the map contribute nothing.
	Ratios map[element.Element]float64
}

// LayerResult is one layer's solved state: its mass thickness and the
// composition of the material filling it.
type LayerResult struct {
	// RhoZ is the layer's mass thickness in the same units the k-ratios
	// carry (g/cm² for thickness-calibrated measurements).
	RhoZ float64

	// Comp is the layer's composition, normalized to unit sum.
	Comp composition.Composition
}

// Result reports a layered solve. Layers is ordered beam-entry first,
// matching the 1..N indices used during assignment.
type Result struct {
	Layers     []LayerResult
	Converged  bool
	Iterations int
	Warnings   []string
}
