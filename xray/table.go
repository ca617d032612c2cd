package xray

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/epmalab/microquant/element"
)

//go:embed data/lines.yaml
var rawTable []byte

type lineKey struct {
	elm element.Element
	ln  Line
}

type edgeKey struct {
	elm element.Element
	sh  Shell
}

type lineDatum struct {
	energy float64 // keV
	weight float64 // family-normalized, (0, 1]
}

var (
	lineTable map[lineKey]lineDatum
	edgeTable map[edgeKey]float64 // keV
)

func init() {
	var doc struct {
		Edges []struct {
			Symbol string  `yaml:"symbol"`
			Shell  string  `yaml:"shell"`
			Energy float64 `yaml:"energy"`
		} `yaml:"edges"`
		Lines []struct {
			Symbol string  `yaml:"symbol"`
			Line   string  `yaml:"line"`
			Energy float64 `yaml:"energy"`
			Weight float64 `yaml:"weight"`
		} `yaml:"lines"`
	}
	if err := yaml.Unmarshal(rawTable, &doc); err != nil {
		panic(fmt.Sprintf("xray: embedded table unreadable: %v", err))
	}

	edgeTable = make(map[edgeKey]float64, len(doc.Edges))
	for _, e := range doc.Edges {
		elm, err := element.BySymbol(e.Symbol)
		if err != nil {
			panic(fmt.Sprintf("xray: edge row references %q: %v", e.Symbol, err))
		}
		sh, ok := shellByName(e.Shell)
		if !ok {
			panic(fmt.Sprintf("xray: edge row for %s has unknown shell %q", e.Symbol, e.Shell))
		}
		if e.Energy <= 0 {
			panic(fmt.Sprintf("xray: non-positive edge energy for %s %s", e.Symbol, e.Shell))
		}
		k := edgeKey{elm, sh}
		if _, dup := edgeTable[k]; dup {
			panic(fmt.Sprintf("xray: duplicate edge row %s %s", e.Symbol, e.Shell))
		}
		edgeTable[k] = e.Energy
	}

	lineTable = make(map[lineKey]lineDatum, len(doc.Lines))
	for _, l := range doc.Lines {
		elm, err := element.BySymbol(l.Symbol)
		if err != nil {
			panic(fmt.Sprintf("xray: line row references %q: %v", l.Symbol, err))
		}
		ln, ok := lineByName(l.Line)
		if !ok {
			panic(fmt.Sprintf("xray: line row for %s has unknown line %q", l.Symbol, l.Line))
		}
		if l.Energy <= 0 || l.Weight <= 0 || l.Weight > 1 {
			panic(fmt.Sprintf("xray: bad line row %s %s", l.Symbol, l.Line))
		}
		// Every line must be at or below its own ionization edge.
		edge, ok := edgeTable[edgeKey{elm, ln.Shell()}]
		if !ok {
			panic(fmt.Sprintf("xray: line %s %s has no matching edge row", l.Symbol, l.Line))
		}
		if l.Energy >= edge {
			panic(fmt.Sprintf("xray: line %s %s energy %.3f ≥ edge %.3f", l.Symbol, l.Line, l.Energy, edge))
		}
		k := lineKey{elm, ln}
		if _, dup := lineTable[k]; dup {
			panic(fmt.Sprintf("xray: duplicate line row %s %s", l.Symbol, l.Line))
		}
		lineTable[k] = lineDatum{energy: l.Energy, weight: l.Weight}
	}
}

func shellByName(name string) (Shell, bool) {
	for i, n := range shellNames {
		if n == name {
			return Shell(i), true
		}
	}
	return 0, false
}

func lineByName(name string) (Line, bool) {
	for i, n := range lineNames {
		if n == name {
			return Line(i), true
		}
	}
	return 0, false
}
