package uncertain_test

import (
	"fmt"

	"github.com/epmalab/microquant/uncertain"
)

// ExampleValue_Mul multiplies two measured quantities; the uncertainty of
// the product combines the operands' relative uncertainties in quadrature.
func ExampleValue_Mul() {
	a := uncertain.New(2, 0.1)
	b := uncertain.New(3, 0.2)
	fmt.Println(a.Mul(b))
	// Output: 6 ± 0.5
}

// ExampleValue_Div shows the zero-denominator guard: division never
// produces Inf or NaN, it reports ErrDivideByZero instead.
func ExampleValue_Div() {
	_, err := uncertain.Exact(1).Div(uncertain.Exact(0))
	fmt.Println(err)
	// Output: uncertain: divide by zero
}
