package xray

import (
	"fmt"

	"github.com/epmalab/microquant/element"
)

// Transition is one element emitting one characteristic line.
// It is a value type, usable as a map key.
type Transition struct {
	// Elm is the emitting element.
	Elm element.Element

	// Ln is the Siegbahn line label.
	Ln Line
}

// NewTransition constructs a Transition and verifies the embedded table
// carries data for it.
func NewTransition(elm element.Element, ln Line) (Transition, error) {
	tr := Transition{Elm: elm, Ln: ln}
	if _, ok := lineTable[lineKey{elm, ln}]; !ok {
		return Transition{}, fmt.Errorf("%w: %s %s", ErrNoTransitionData, elm, ln)
	}
	return tr, nil
}

// Energy returns the line energy in keV.
func (t Transition) Energy() (float64, error) {
	d, ok := lineTable[lineKey{t.Elm, t.Ln}]
	if !ok {
		return 0, fmt.Errorf("%w: %s %s", ErrNoTransitionData, t.Elm, t.Ln)
	}
	return d.energy, nil
}

// EdgeEnergy returns the ionization-edge energy of the transition's inner
// shell in keV.
func (t Transition) EdgeEnergy() (float64, error) {
	e, ok := edgeTable[edgeKey{t.Elm, t.Ln.Shell()}]
	if !ok {
		return 0, fmt.Errorf("%w: %s %s edge", ErrNoTransitionData, t.Elm, t.Ln.Shell())
	}
	return e, nil
}

// Weight returns the family-normalized emission weight in (0, 1],
// or 0 when the table carries no entry.
func (t Transition) Weight() float64 {
	return lineTable[lineKey{t.Elm, t.Ln}].weight
}

// Shell returns the inner (ionized) shell.
func (t Transition) Shell() Shell { return t.Ln.Shell() }

// Family returns the transition's line family.
func (t Transition) Family() Family { return t.Ln.Family() }

// Overvoltage returns U0 = beamEnergy / edgeEnergy for the transition's
// inner shell. Values ≤ 1 mean the beam cannot ionize the shell.
func (t Transition) Overvoltage(beamEnergy float64) (float64, error) {
	edge, err := t.EdgeEnergy()
	if err != nil {
		return 0, err
	}
	return beamEnergy / edge, nil
}

// String renders "Fe Ka1" style labels.
func (t Transition) String() string {
	return fmt.Sprintf("%s %s", t.Elm, t.Ln)
}
