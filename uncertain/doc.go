// Package uncertain provides a small value type for numbers carrying a
// one-sigma uncertainty, with first-order (linear) error propagation.
//
// Measured x-ray intensities, k-ratios, and derived mass fractions are all
// uncertain quantities: every arithmetic step in a quantification pipeline
// should carry its uncertainty along rather than discard it.
//
// ✨ Key features:
//   - immutable Value semantics — every operation returns a new Value
//   - first-order propagation for +, −, ×, ÷ and scalar multiplication
//   - explicit ErrDivideByZero instead of silent NaN/Inf
//
// ⚙️ Usage:
//
//	import "github.com/epmalab/microquant/uncertain"
//
//	k := uncertain.New(0.486, 0.004)     // k-ratio ± counting statistics
//	c := k.Scale(0.5)                    // pure-element standard, C_std = 0.5
//	fmt.Println(c)                       // 0.2430 ± 0.0020
//
// Propagation assumes the operands are uncorrelated; correlated inputs must
// be combined by the caller before constructing a Value.
package uncertain
