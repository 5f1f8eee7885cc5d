package bp_test

import (
	"fmt"

	"github.com/veldtkamp/inferno/bp"
	"github.com/veldtkamp/inferno/factor"
	"github.com/veldtkamp/inferno/factorgraph"
	"github.com/veldtkamp/inferno/props"
	"github.com/veldtkamp/inferno/varset"
)

// ExampleBP runs belief propagation on a two-variable model with an
// attractive coupling and a biased unary factor, then reads the resulting
// marginals.
func ExampleBP() {
	x := varset.NewVar(0, 2)
	y := varset.NewVar(1, 2)

	coupling, _ := factor.NewFromSlice(varset.New(x, y), []float64{2, 1, 1, 2})
	bias, _ := factor.NewFromSlice(varset.New(x), []float64{3, 1})

	g, _ := factorgraph.New([]factor.Factor{coupling, bias})

	ps := props.FromMap(map[string]any{
		"updates":   "SEQFIX",
		"tol":       1e-9,
		"maxiter":   100,
		"verbose":   0,
		"logdomain": false,
	})

	engine, _ := bp.New(g, ps)
	maxDiff, _ := engine.Run()

	bx, _ := engine.BeliefOf(x)
	by, _ := engine.BeliefOf(y)
	fmt.Printf("converged: %v\n", maxDiff <= 1e-9)
	fmt.Printf("P(x) = [%.4f %.4f]\n", bx.At(0), bx.At(1))
	fmt.Printf("P(y) = [%.4f %.4f]\n", by.At(0), by.At(1))
	// Output:
	// converged: true
	// P(x) = [0.7500 0.2500]
	// P(y) = [0.5833 0.4167]
}
