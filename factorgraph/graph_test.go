package factorgraph_test

import (
	"errors"
	"testing"

	"github.com/veldtkamp/inferno/factor"
	"github.com/veldtkamp/inferno/factorgraph"
	"github.com/veldtkamp/inferno/varset"
)

func pairwise(t *testing.T, a, b varset.Var, xs []float64) factor.Factor {
	t.Helper()
	f, err := factor.NewFromSlice(varset.New(a, b), xs)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

// TestConstruction builds a 3-variable chain and checks sizes, the label
// ordering of the roster, and edge counting.
func TestConstruction(t *testing.T) {
	x := varset.NewVar(0, 2)
	y := varset.NewVar(1, 2)
	z := varset.NewVar(2, 2)

	g, err := factorgraph.New([]factor.Factor{
		pairwise(t, x, y, []float64{1, 2, 3, 4}),
		pairwise(t, y, z, []float64{4, 3, 2, 1}),
	})
	if err != nil {
		t.Fatal(err)
	}
	if g.NVars() != 3 || g.NFactors() != 2 || g.NEdges() != 4 {
		t.Fatalf("sizes = (%d,%d,%d); want (3,2,4)", g.NVars(), g.NFactors(), g.NEdges())
	}
	for i, want := range []varset.Var{x, y, z} {
		if g.Var(i) != want {
			t.Errorf("Var(%d) = %v; want %v", i, g.Var(i), want)
		}
	}
	if len(g.NbV(1)) != 2 {
		t.Errorf("middle variable should touch both factors")
	}
	if len(g.NbF(0)) != 2 || g.NbF(0)[0].Node != 0 || g.NbF(0)[1].Node != 1 {
		t.Errorf("NbF(0) = %v", g.NbF(0))
	}
}

// TestDualConsistency verifies the defining cross-reference identity
// NbF(I)[NbV(i)[_I].Dual].Node == i for every edge, and the mirror
// direction.
func TestDualConsistency(t *testing.T) {
	x := varset.NewVar(0, 2)
	y := varset.NewVar(1, 3)
	z := varset.NewVar(2, 2)

	g, err := factorgraph.New([]factor.Factor{
		pairwise(t, x, y, make([]float64, 6)),
		pairwise(t, y, z, make([]float64, 6)),
		pairwise(t, x, z, make([]float64, 4)),
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < g.NVars(); i++ {
		for _, I := range g.NbV(i) {
			if I.Iter >= len(g.NbV(i)) {
				t.Fatalf("iter out of range")
			}
			back := g.NbF(I.Node)[I.Dual]
			if back.Node != i {
				t.Errorf("dual of variable %d via factor %d points to %d", i, I.Node, back.Node)
			}
			if back.Dual != I.Iter {
				t.Errorf("reciprocal dual mismatch on edge (%d,%d)", i, I.Iter)
			}
		}
	}
	for I := 0; I < g.NFactors(); I++ {
		for _, j := range g.NbF(I) {
			back := g.NbV(j.Node)[j.Dual]
			if back.Node != I || back.Dual != j.Iter {
				t.Errorf("reciprocal mismatch on factor %d slot %d", I, j.Iter)
			}
		}
	}
}

// TestFindVar checks label lookup, including misses.
func TestFindVar(t *testing.T) {
	x := varset.NewVar(4, 2)
	y := varset.NewVar(9, 2)
	g, err := factorgraph.New([]factor.Factor{pairwise(t, x, y, make([]float64, 4))})
	if err != nil {
		t.Fatal(err)
	}
	if i, ok := g.FindVar(y); !ok || i != 1 {
		t.Errorf("FindVar(y) = (%d,%v)", i, ok)
	}
	if _, ok := g.FindVar(varset.NewVar(5, 2)); ok {
		t.Errorf("unknown label should not resolve")
	}
}

// TestCardinalityClash rejects graphs whose factors disagree on a
// variable's state count.
func TestCardinalityClash(t *testing.T) {
	a2 := varset.NewVar(0, 2)
	a3 := varset.NewVar(0, 3)
	b := varset.NewVar(1, 2)
	_, err := factorgraph.New([]factor.Factor{
		pairwise(t, a2, b, make([]float64, 4)),
		pairwise(t, a3, b, make([]float64, 6)),
	})
	if !errors.Is(err, factorgraph.ErrCardinalityClash) {
		t.Errorf("want ErrCardinalityClash, got %v", err)
	}
}
