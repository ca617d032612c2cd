package uncertain

import (
	"errors"
	"fmt"
	"math"
)

// ErrDivideByZero indicates a division whose denominator is exactly zero.
var ErrDivideByZero = errors.New("uncertain: divide by zero")

// Value is a number with an associated one-sigma uncertainty.
//
// The zero Value is 0 ± 0 and is ready to use. Sigma is stored as an
// absolute (not relative) uncertainty and is never negative.
type Value struct {
	val   float64
	sigma float64
}

// New constructs a Value of val ± sigma. A negative sigma is folded to its
// absolute value; uncertainty has no sign.
func New(val, sigma float64) Value {
	return Value{val: val, sigma: math.Abs(sigma)}
}

// Exact constructs a Value with zero uncertainty.
func Exact(val float64) Value {
	return Value{val: val}
}

// Float returns the central value.
func (v Value) Float() float64 { return v.val }

// Sigma returns the absolute one-sigma uncertainty.
func (v Value) Sigma() float64 { return v.sigma }

// Variance returns Sigma squared.
func (v Value) Variance() float64 { return v.sigma * v.sigma }

// Fractional returns the relative uncertainty |Sigma/Value|.
// A zero central value yields +Inf unless Sigma is also zero.
func (v Value) Fractional() float64 {
	if v.sigma == 0 {
		return 0
	}
	return math.Abs(v.sigma / v.val)
}

// Add returns v + u with uncertainties combined in quadrature.
func (v Value) Add(u Value) Value {
	return Value{
		val:   v.val + u.val,
		sigma: math.Hypot(v.sigma, u.sigma),
	}
}

// Sub returns v − u with uncertainties combined in quadrature.
func (v Value) Sub(u Value) Value {
	return Value{
		val:   v.val - u.val,
		sigma: math.Hypot(v.sigma, u.sigma),
	}
}

// Mul returns v × u with first-order propagation:
// σ² = (u·σv)² + (v·σu)².
func (v Value) Mul(u Value) Value {
	return Value{
		val:   v.val * u.val,
		sigma: math.Hypot(u.val*v.sigma, v.val*u.sigma),
	}
}

// Div returns v ÷ u with first-order propagation. A zero denominator
// returns ErrDivideByZero rather than an Inf/NaN Value.
func (v Value) Div(u Value) (Value, error) {
	if u.val == 0 {
		return Value{}, ErrDivideByZero
	}
	q := v.val / u.val
	return Value{
		val:   q,
		sigma: math.Abs(q) * math.Hypot(safeFrac(v), safeFrac(u)),
	}, nil
}

// Scale returns v multiplied by the exact scalar s.
func (v Value) Scale(s float64) Value {
	return Value{val: v.val * s, sigma: math.Abs(s) * v.sigma}
}

// ClampNonNegative returns v with a negative central value replaced by
// exactly zero, preserving the uncertainty. Used when a physical quantity
// (a mass fraction) came out negative within its statistical error.
func (v Value) ClampNonNegative() Value {
	if v.val < 0 {
		return Value{val: 0, sigma: v.sigma}
	}
	return v
}

// WithinSigmaOfZero reports whether |Value| ≤ n·Sigma, i.e. the value is
// statistically indistinguishable from zero at n sigma.
func (v Value) WithinSigmaOfZero(n float64) bool {
	return math.Abs(v.val) <= n*v.sigma
}

// String renders the value as "v ± σ" with four significant digits.
func (v Value) String() string {
	return fmt.Sprintf("%.4g ± %.2g", v.val, v.sigma)
}

// safeFrac is Fractional guarded against a zero central value: the
// quotient rule breaks down there, so the operand contributes nothing.
func safeFrac(v Value) float64 {
	if v.val == 0 {
		return 0
	}
	return v.sigma / v.val
}
