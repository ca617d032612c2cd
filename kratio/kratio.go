package kratio

import (
	"errors"
	"fmt"
	"sort"

	"github.com/epmalab/microquant/element"
	"github.com/epmalab/microquant/uncertain"
	"github.com/epmalab/microquant/xray"
)

// Sentinel errors for k-ratio sets.
var (
	// ErrDuplicateEntry indicates a second Add for the same transition set.
	ErrDuplicateEntry = errors.New("kratio: duplicate transition set")

	// ErrEmptyTransitionSet indicates an Add with a zero TransitionSet.
	ErrEmptyTransitionSet = errors.New("kratio: empty transition set")

	// ErrNotFound indicates a Get for an absent transition set.
	ErrNotFound = errors.New("kratio: no entry for transition set")
)

// DefaultOvervoltageRatio is the minimum beamEnergy/edgeEnergy a line family
// needs before Optimal will prefer it. Tunable; 1.5 is the conventional
// floor below which ionization statistics degrade sharply.
const DefaultOvervoltageRatio = 1.5

// Entry pairs one measured transition set with its k-ratio.
type Entry struct {
	Transitions xray.TransitionSet
	K           uncertain.Value
}

// Set is a collection of k-ratio entries, at most one per transition set.
//
// The zero Set is empty and usable. Set is not safe for concurrent
// mutation; build it, then share read-only.
type Set struct {
	entries map[string]Entry // keyed by TransitionSet.Key()
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{entries: make(map[string]Entry)}
}

// Add records the k-ratio measured for ts. A second Add with the same
// transition set is ErrDuplicateEntry — replacing a measurement must be an
// explicit caller decision, not a silent overwrite.
func (s *Set) Add(ts xray.TransitionSet, k uncertain.Value) error {
	if ts.Empty() {
		return ErrEmptyTransitionSet
	}
	if s.entries == nil {
		s.entries = make(map[string]Entry)
	}
	if _, dup := s.entries[ts.Key()]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, ts)
	}
	s.entries[ts.Key()] = Entry{Transitions: ts, K: k}
	return nil
}

// Get returns the k-ratio for ts, or ErrNotFound.
func (s *Set) Get(ts xray.TransitionSet) (uncertain.Value, error) {
	e, ok := s.entries[ts.Key()]
	if !ok {
		return uncertain.Value{}, fmt.Errorf("%w: %s", ErrNotFound, ts)
	}
	return e.K, nil
}

// Len returns the number of entries.
func (s *Set) Len() int { return len(s.entries) }

// Entries returns all entries ordered by key for deterministic iteration.
func (s *Set) Entries() []Entry {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Entry, len(keys))
	for i, k := range keys {
		out[i] = s.entries[k]
	}
	return out
}

// Elements returns the measured elements, sorted by atomic number.
func (s *Set) Elements() []element.Element {
	seen := make(map[element.Element]bool)
	for _, e := range s.entries {
		seen[e.Transitions.Element()] = true
	}
	out := make([]element.Element, 0, len(seen))
	for elm := range seen {
		out = append(out, elm)
	}
	element.Sort(out)
	return out
}

// ForElement returns all entries measuring elm, ordered by family
// preference (K, then L, then M).
func (s *Set) ForElement(elm element.Element) []Entry {
	var out []Entry
	for _, e := range s.Entries() {
		if e.Transitions.Element() == elm {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Transitions.Family() < out[j].Transitions.Family()
	})
	return out
}

// Optimal selects one entry per element: the first family in K→L→M order
// whose edge satisfies beamEnergy > ratio × edgeEnergy. When no family
// clears the threshold the most excitable family (lowest edge) is kept as a
// best effort — a measured element is never dropped here.
//
// ratio ≤ 0 means DefaultOvervoltageRatio.
func (s *Set) Optimal(beamEnergy, ratio float64) *Set {
	if ratio <= 0 {
		ratio = DefaultOvervoltageRatio
	}
	opt := NewSet()
	for _, elm := range s.Elements() {
		candidates := s.ForElement(elm)
		chosen := pickByOvervoltage(candidates, beamEnergy, ratio)
		// Add cannot collide: one entry per element by construction.
		_ = opt.Add(chosen.Transitions, chosen.K)
	}
	return opt
}

// pickByOvervoltage returns the first family-ordered candidate clearing the
// threshold, else the candidate with the lowest edge energy.
func pickByOvervoltage(candidates []Entry, beamEnergy, ratio float64) Entry {
	fallback := candidates[0]
	fallbackEdge, err := fallback.Transitions.EdgeEnergy()
	if err != nil {
		fallbackEdge = beamEnergy // unknown edge: least preferred fallback
	}
	for _, c := range candidates {
		edge, err := c.Transitions.EdgeEnergy()
		if err != nil {
			continue
		}
		if beamEnergy > ratio*edge {
			return c
		}
		if edge < fallbackEdge {
			fallback, fallbackEdge = c, edge
		}
	}
	return fallback
}
