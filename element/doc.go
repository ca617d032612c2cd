// Package element identifies chemical elements by atomic number and serves
// the static per-element data (symbol, name, mean atomic weight) that the
// quantification packages need.
//
// An Element is just its atomic number — cheap to copy, usable as a map key,
// totally ordered by Z. The per-element table is an embedded YAML document
// parsed and validated once at package load; a malformed table is a build
// defect and fails loudly rather than producing wrong chemistry.
//
// ⚙️ Usage:
//
//	import "github.com/epmalab/microquant/element"
//
//	fe := element.Fe                       // named constant, Z = 26
//	si, err := element.BySymbol("Si")      // lookup by symbol
//	w := fe.AtomicWeight()                 // 55.845 u
//
// Supported range: Z ∈ [1, 99] (hydrogen through einsteinium), which covers
// every element with usable characteristic x-ray lines in EPMA practice.
package element
