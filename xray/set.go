package xray

import (
	"fmt"
	"sort"
	"strings"

	"github.com/epmalab/microquant/element"
)

// TransitionSet is a non-empty set of transitions of one element,
// identifying "which lines were measured together". It is immutable after
// construction and its Key is stable, so it can index maps.
type TransitionSet struct {
	elm element.Element
	trs []Transition // sorted by Line, no duplicates
	key string
}

// NewTransitionSet builds a set from one or more transitions.
//
// Contract:
//   - at least one transition (else ErrEmptySet);
//   - all transitions of the same element (else ErrMixedElements);
//   - every transition present in the embedded table (else ErrNoTransitionData).
//
// Duplicates collapse silently.
func NewTransitionSet(trs ...Transition) (TransitionSet, error) {
	if len(trs) == 0 {
		return TransitionSet{}, ErrEmptySet
	}
	elm := trs[0].Elm
	seen := make(map[Line]bool, len(trs))
	uniq := make([]Transition, 0, len(trs))
	for _, tr := range trs {
		if tr.Elm != elm {
			return TransitionSet{}, fmt.Errorf("%w: %s vs %s", ErrMixedElements, elm, tr.Elm)
		}
		if _, ok := lineTable[lineKey{tr.Elm, tr.Ln}]; !ok {
			return TransitionSet{}, fmt.Errorf("%w: %s", ErrNoTransitionData, tr)
		}
		if !seen[tr.Ln] {
			seen[tr.Ln] = true
			uniq = append(uniq, tr)
		}
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i].Ln < uniq[j].Ln })
	return TransitionSet{elm: elm, trs: uniq, key: setKey(elm, uniq)}, nil
}

// FamilySet builds the set of all table-known lines of elm in family f.
// Returns ErrNoTransitionData when the table carries none.
func FamilySet(elm element.Element, f Family) (TransitionSet, error) {
	var trs []Transition
	for ln := KA1; int(ln) < len(lineNames); ln++ {
		if ln.Family() != f {
			continue
		}
		if _, ok := lineTable[lineKey{elm, ln}]; ok {
			trs = append(trs, Transition{Elm: elm, Ln: ln})
		}
	}
	if len(trs) == 0 {
		return TransitionSet{}, fmt.Errorf("%w: %s %s family", ErrNoTransitionData, elm, f)
	}
	return NewTransitionSet(trs...)
}

// Element returns the common element of the set.
func (s TransitionSet) Element() element.Element { return s.elm }

// Transitions returns the member transitions sorted by line.
// The returned slice is a copy; the set stays immutable.
func (s TransitionSet) Transitions() []Transition {
	out := make([]Transition, len(s.trs))
	copy(out, s.trs)
	return out
}

// Family returns the family of the set's strongest (first) line. Sets built
// by FamilySet are homogeneous; mixed-family sets report the first line's.
func (s TransitionSet) Family() Family {
	if len(s.trs) == 0 {
		return FamilyK
	}
	return s.trs[0].Family()
}

// Dominant returns the member with the largest family weight.
func (s TransitionSet) Dominant() Transition {
	best := s.trs[0]
	for _, tr := range s.trs[1:] {
		if tr.Weight() > best.Weight() {
			best = tr
		}
	}
	return best
}

// EdgeEnergy returns the inner-shell edge energy (keV) of the dominant line.
func (s TransitionSet) EdgeEnergy() (float64, error) {
	return s.Dominant().EdgeEnergy()
}

// Empty reports whether s is the zero TransitionSet.
func (s TransitionSet) Empty() bool { return len(s.trs) == 0 }

// Key returns a stable string key, e.g. "Fe[Ka1+Kb1]". Two sets with the
// same members have equal keys.
func (s TransitionSet) Key() string { return s.key }

// String implements fmt.Stringer; same form as Key.
func (s TransitionSet) String() string { return s.key }

func setKey(elm element.Element, trs []Transition) string {
	parts := make([]string, len(trs))
	for i, tr := range trs {
		parts[i] = tr.Ln.String()
	}
	return fmt.Sprintf("%s[%s]", elm, strings.Join(parts, "+"))
}
