package correction

import (
	"errors"
	"fmt"
	"math"

	"github.com/epmalab/microquant/composition"
	"github.com/epmalab/microquant/element"
	"github.com/epmalab/microquant/xray"
)

// ErrNoMACData indicates a TableMAC lookup with no registered entry.
var ErrNoMACData = errors.New("correction: no mass absorption data")

// PowerLawMAC is a smooth hydrogenic approximation of photoelectric mass
// absorption: μ/ρ ≈ k · Z⁴ / (A · E³) cm²/g per absorber element, combined
// over a material by mass-fraction weighting.
//
// It ignores absorption-edge fine structure, which is acceptable for
// exercising solver behavior and for layered-film attenuation ordering;
// substitute a TableMAC (or a full published tabulation behind the
// MassAbsorption interface) when absolute accuracy matters.
type PowerLawMAC struct{}

// powerLawK calibrates the hydrogenic form so Fe Kα in iron lands near its
// tabulated value (~71 cm²/g).
const powerLawK = 2.3

// Mac returns the mass-fraction-weighted coefficient for tr's photons in
// comp. A photon energy of zero (no table data) is an error, not a zero.
func (PowerLawMAC) Mac(comp composition.Composition, tr xray.Transition) (float64, error) {
	e, err := tr.Energy()
	if err != nil {
		return 0, err
	}
	norm, err := comp.Normalized()
	if err != nil {
		return 0, fmt.Errorf("correction: mac of empty material: %w", err)
	}
	var mac float64
	for _, elm := range norm.Elements() {
		c := norm.WeightFraction(elm, false).Float()
		z := float64(elm.Z())
		mac += c * powerLawK * math.Pow(z, 4) / (elm.AtomicWeight() * math.Pow(e, 3))
	}
	return mac, nil
}

// TableMAC serves explicit per-(absorber, transition) coefficients, for
// tests and for callers holding measured or published values.
//
// The zero TableMAC is empty; Set before use. Lookups combine absorber
// elements by mass-fraction weighting like any MAC.
type TableMAC struct {
	entries map[tableMACKey]float64
}

type tableMACKey struct {
	absorber element.Element
	tr       xray.Transition
}

// NewTableMAC returns an empty table.
func NewTableMAC() *TableMAC {
	return &TableMAC{entries: make(map[tableMACKey]float64)}
}

// Set registers the coefficient (cm²/g) for tr's photons in the pure
// absorber element.
func (t *TableMAC) Set(absorber element.Element, tr xray.Transition, mac float64) *TableMAC {
	t.entries[tableMACKey{absorber, tr}] = mac
	return t
}

// Mac combines the registered per-element coefficients over comp.
// Any absorber element missing from the table fails with ErrNoMACData.
func (t *TableMAC) Mac(comp composition.Composition, tr xray.Transition) (float64, error) {
	norm, err := comp.Normalized()
	if err != nil {
		return 0, fmt.Errorf("correction: mac of empty material: %w", err)
	}
	var mac float64
	for _, elm := range norm.Elements() {
		v, ok := t.entries[tableMACKey{elm, tr}]
		if !ok {
			return 0, fmt.Errorf("%w: %s in %s", ErrNoMACData, tr, elm)
		}
		mac += norm.WeightFraction(elm, false).Float() * v
	}
	return mac, nil
}
