package varset_test

import (
	"errors"
	"testing"

	"github.com/veldtkamp/inferno/varset"
)

// TestIndexMapCorrectness checks the defining property of the translator:
// for every joint assignment x of the outer set,
// table[σ_out(x)] == σ_in(x restricted to inner).
func TestIndexMapCorrectness(t *testing.T) {
	x := varset.NewVar(0, 2)
	y := varset.NewVar(1, 3)
	z := varset.NewVar(2, 2)
	outer := varset.New(x, y, z)

	inners := []varset.VarSet{
		varset.New(),
		varset.New(x),
		varset.New(y),
		varset.New(z),
		varset.New(x, z),
		varset.New(y, z),
		outer,
	}
	for _, inner := range inners {
		m, err := varset.NewIndexMap(inner, outer)
		if err != nil {
			t.Fatalf("NewIndexMap(%v): %v", inner, err)
		}
		if m.Len() != outer.States() {
			t.Fatalf("Len = %d; want %d", m.Len(), outer.States())
		}
		for k := 0; k < outer.States(); k++ {
			assignment := outer.CalcStates(k)
			if got, want := m.At(k), inner.CalcState(assignment); got != want {
				t.Errorf("inner %v: At(%d) = %d; want %d", inner, k, got, want)
			}
		}
	}
}

// TestIndexMapNotSubset verifies the subset precondition.
func TestIndexMapNotSubset(t *testing.T) {
	a := varset.New(varset.NewVar(0, 2))
	b := varset.New(varset.NewVar(1, 2))
	if _, err := varset.NewIndexMap(a, b); !errors.Is(err, varset.ErrNotSubset) {
		t.Errorf("want ErrNotSubset, got %v", err)
	}
}

// TestIndexMapIdentity checks that mapping a set into itself enumerates the
// identity.
func TestIndexMapIdentity(t *testing.T) {
	s := varset.New(varset.NewVar(0, 3), varset.NewVar(1, 2))
	m, err := varset.NewIndexMap(s, s)
	if err != nil {
		t.Fatal(err)
	}
	for k := 0; k < s.States(); k++ {
		if m.At(k) != k {
			t.Errorf("At(%d) = %d", k, m.At(k))
		}
	}
}
