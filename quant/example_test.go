package quant_test

import (
	"fmt"
	"log"
	"math"

	"github.com/epmalab/microquant/composition"
	"github.com/epmalab/microquant/correction"
	"github.com/epmalab/microquant/element"
	"github.com/epmalab/microquant/kratio"
	"github.com/epmalab/microquant/quant"
	"github.com/epmalab/microquant/uncertain"
	"github.com/epmalab/microquant/xray"
)

// ExampleSolver_Solve quantifies a 50/50 Fe-Ni alloy against pure-element
// standards. With the identity correction the k-ratios map straight to
// mass fractions, so the loop settles immediately.
func ExampleSolver_Solve() {
	cond := correction.Conditions{BeamEnergy: 15.0, TakeOffAngle: 40 * math.Pi / 180}
	solver := quant.NewSolver(correction.NewNull(), nil)

	for _, elm := range []element.Element{element.Fe, element.Ni} {
		std, err := composition.Pure(elm)
		if err != nil {
			log.Fatal(err)
		}
		if err := solver.AddStandard(elm, std, cond); err != nil {
			log.Fatal(err)
		}
	}

	krs := kratio.NewSet()
	for _, elm := range []element.Element{element.Fe, element.Ni} {
		ts, err := xray.FamilySet(elm, xray.FamilyK)
		if err != nil {
			log.Fatal(err)
		}
		if err := krs.Add(ts, uncertain.Exact(0.50)); err != nil {
			log.Fatal(err)
		}
	}

	res, err := solver.Solve(krs, cond)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("converged:", res.Converged)
	fmt.Println(res.Comp)
	// Output:
	// converged: true
	// Fe:0.5000 Ni:0.5000
}
