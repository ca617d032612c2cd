package xray

import "errors"

// Sentinel errors for transition construction and data lookup.
var (
	// ErrMixedElements indicates a TransitionSet built from transitions of
	// more than one element.
	ErrMixedElements = errors.New("xray: transition set must hold a single element")

	// ErrEmptySet indicates a TransitionSet built from zero transitions.
	ErrEmptySet = errors.New("xray: transition set must be non-empty")

	// ErrNoTransitionData indicates the embedded table carries no entry for
	// the requested (element, line) or (element, shell).
	ErrNoTransitionData = errors.New("xray: no transition data for element")

	// ErrUnknownLine indicates a Line value outside the declared constants.
	ErrUnknownLine = errors.New("xray: unknown line")
)

// Family is a characteristic line family, ordered by preference for
// quantification: K lines first, then L, then M.
type Family int

const (
	FamilyK Family = iota
	FamilyL
	FamilyM
)

// Families lists all families in preference order (K before L before M).
var Families = [...]Family{FamilyK, FamilyL, FamilyM}

// String returns "K", "L", or "M".
func (f Family) String() string {
	switch f {
	case FamilyK:
		return "K"
	case FamilyL:
		return "L"
	case FamilyM:
		return "M"
	}
	return "?"
}

// Shell is an atomic subshell that can be ionized by the beam.
type Shell int

const (
	ShellK Shell = iota
	ShellL1
	ShellL2
	ShellL3
	ShellM1
	ShellM2
	ShellM3
	ShellM4
	ShellM5
)

var shellNames = [...]string{"K", "L1", "L2", "L3", "M1", "M2", "M3", "M4", "M5"}

// String returns the conventional shell label ("K", "L3", "M5", ...).
func (s Shell) String() string {
	if s < ShellK || int(s) >= len(shellNames) {
		return "?"
	}
	return shellNames[s]
}

// Family returns the line family the shell's vacancies feed.
func (s Shell) Family() Family {
	switch {
	case s == ShellK:
		return FamilyK
	case s <= ShellL3:
		return FamilyL
	default:
		return FamilyM
	}
}

// Line is a Siegbahn line label. Only the lines carried by the embedded
// table are declared; they are the analytically useful ones.
type Line int

const (
	KA1 Line = iota
	KB1
	LA1
	LB1
	MA1
)

var lineNames = [...]string{"Ka1", "Kb1", "La1", "Lb1", "Ma1"}

// String returns the table spelling of the line ("Ka1", "La1", ...).
func (l Line) String() string {
	if l < KA1 || int(l) >= len(lineNames) {
		return "?"
	}
	return lineNames[l]
}

// Shell returns the inner (ionized) shell whose vacancy produces the line.
func (l Line) Shell() Shell {
	switch l {
	case KA1, KB1:
		return ShellK
	case LA1:
		return ShellL3
	case LB1:
		return ShellL2
	case MA1:
		return ShellM5
	}
	return ShellK
}

// Family returns the line's family.
func (l Line) Family() Family { return l.Shell().Family() }
