package kratio_test

import (
	"fmt"
	"log"

	"github.com/epmalab/microquant/element"
	"github.com/epmalab/microquant/kratio"
	"github.com/epmalab/microquant/uncertain"
	"github.com/epmalab/microquant/xray"
)

// ExampleSet_Optimal: copper measured on both its K and L families. At
// 25 keV the K edge (8.979 keV) is comfortably overvolted, so the K-family
// measurement wins; the L entry is dropped from the working set.
func ExampleSet_Optimal() {
	s := kratio.NewSet()
	for _, fam := range []xray.Family{xray.FamilyK, xray.FamilyL} {
		ts, err := xray.FamilySet(element.Cu, fam)
		if err != nil {
			log.Fatal(err)
		}
		if err := s.Add(ts, uncertain.New(0.31, 0.01)); err != nil {
			log.Fatal(err)
		}
	}

	for _, e := range s.Optimal(25.0, kratio.DefaultOvervoltageRatio).Entries() {
		fmt.Println(e.Transitions.Key())
	}
	// Output: Cu[Ka1+Kb1]
}
