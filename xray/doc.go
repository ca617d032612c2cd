// Package xray models characteristic x-ray transitions: atomic shells,
// line families (K/L/M), transition energies, absorption-edge energies,
// and single-element transition sets — the vocabulary every matrix
// correction and k-ratio speaks.
//
// 🚀 What lives here?
//
//   - Shell       — K, L1..L3, M1..M5, with its line Family
//   - Line        — Siegbahn line labels (Kα1, Kβ1, Lα1, Lβ1, Mα1)
//   - Transition  — one element emitting one line, with Energy/EdgeEnergy/Weight
//   - TransitionSet — the non-empty set of an element's lines measured together
//
// TransitionSet is the key type of the quantification pipeline: a k-ratio is
// measured for a set of lines of one element (a line family, typically), and
// the invariant that all lines in a set share an element is enforced at
// construction, never re-checked downstream.
//
// Line and edge energies come from an embedded YAML table validated at
// package load. Elements without shipped data return ErrNoTransitionData —
// they are not guessed.
//
// Energies are in keV throughout, matching instrument conventions.
package xray
