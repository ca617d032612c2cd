package element

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for element lookups.
var (
	// ErrUnknownElement indicates an atomic number outside [MinZ, MaxZ].
	ErrUnknownElement = errors.New("element: unknown atomic number")

	// ErrUnknownSymbol indicates a symbol with no entry in the table.
	ErrUnknownSymbol = errors.New("element: unknown symbol")
)

// Supported atomic-number range.
const (
	MinZ = 1
	MaxZ = 99
)

// Element identifies a chemical element by atomic number.
//
// The zero value is not a valid element; use FromZ, BySymbol, or the named
// constants. Elements compare and sort by Z.
type Element int

//go:embed data/elements.yaml
var rawTable []byte

// row mirrors one entry of data/elements.yaml.
type row struct {
	Z      int     `yaml:"z"`
	Symbol string  `yaml:"symbol"`
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

var (
	table    []row          // indexed by Z-1
	bySymbol map[string]int // symbol -> Z
)

func init() {
	var doc struct {
		Elements []row `yaml:"elements"`
	}
	if err := yaml.Unmarshal(rawTable, &doc); err != nil {
		panic(fmt.Sprintf("element: embedded table unreadable: %v", err))
	}
	if len(doc.Elements) != MaxZ-MinZ+1 {
		panic(fmt.Sprintf("element: table has %d rows, want %d", len(doc.Elements), MaxZ-MinZ+1))
	}
	bySymbol = make(map[string]int, len(doc.Elements))
	for i, r := range doc.Elements {
		if r.Z != i+MinZ {
			panic(fmt.Sprintf("element: row %d out of order (z=%d)", i, r.Z))
		}
		if r.Symbol == "" || r.Name == "" || r.Weight <= 0 {
			panic(fmt.Sprintf("element: incomplete row for z=%d", r.Z))
		}
		if _, dup := bySymbol[r.Symbol]; dup {
			panic(fmt.Sprintf("element: duplicate symbol %q", r.Symbol))
		}
		bySymbol[r.Symbol] = r.Z
	}
	table = doc.Elements
}

// FromZ returns the element with atomic number z, or ErrUnknownElement.
func FromZ(z int) (Element, error) {
	if z < MinZ || z > MaxZ {
		return 0, fmt.Errorf("%w: %d", ErrUnknownElement, z)
	}
	return Element(z), nil
}

// BySymbol returns the element with the given symbol ("Fe", "Si", ...),
// or ErrUnknownSymbol. Matching is case-sensitive, as element symbols are.
func BySymbol(sym string) (Element, error) {
	z, ok := bySymbol[sym]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, sym)
	}
	return Element(z), nil
}

// Valid reports whether e lies in the supported range.
func (e Element) Valid() bool { return e >= MinZ && e <= MaxZ }

// Z returns the atomic number.
func (e Element) Z() int { return int(e) }

// Symbol returns the chemical symbol, or "" for an invalid element.
func (e Element) Symbol() string {
	if !e.Valid() {
		return ""
	}
	return table[e-MinZ].Symbol
}

// Name returns the English element name, or "" for an invalid element.
func (e Element) Name() string {
	if !e.Valid() {
		return ""
	}
	return table[e-MinZ].Name
}

// AtomicWeight returns the mean atomic weight in u, or 0 for an invalid
// element.
func (e Element) AtomicWeight() float64 {
	if !e.Valid() {
		return 0
	}
	return table[e-MinZ].Weight
}

// String implements fmt.Stringer; it returns the symbol for valid elements
// and "Element(z)" otherwise.
func (e Element) String() string {
	if e.Valid() {
		return e.Symbol()
	}
	return fmt.Sprintf("Element(%d)", int(e))
}

// Sort orders a slice of elements by ascending atomic number, in place.
func Sort(elms []Element) {
	sort.Slice(elms, func(i, j int) bool { return elms[i] < elms[j] })
}
