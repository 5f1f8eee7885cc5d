package varset_test

import (
	"reflect"
	"testing"

	"github.com/veldtkamp/inferno/varset"
)

// TestVarOrdering verifies label-based comparison and state clamping.
func TestVarOrdering(t *testing.T) {
	a := varset.NewVar(3, 2)
	b := varset.NewVar(7, 4)
	if !a.Less(b) || b.Less(a) {
		t.Errorf("x3 should order before x7")
	}
	if got := varset.NewVar(1, 0).States(); got != 1 {
		t.Errorf("states clamp: got %d; want 1", got)
	}
	if s := a.String(); s != "x3" {
		t.Errorf("String = %q; want x3", s)
	}
}

// TestNewSortsAndDedups verifies construction order and duplicate handling.
func TestNewSortsAndDedups(t *testing.T) {
	x, y, z := varset.NewVar(5, 2), varset.NewVar(1, 3), varset.NewVar(3, 2)
	s := varset.New(x, y, z, x)
	if s.Size() != 3 {
		t.Fatalf("Size = %d; want 3", s.Size())
	}
	want := []varset.Var{y, z, x}
	if got := s.Vars(); !reflect.DeepEqual(got, want) {
		t.Errorf("Vars = %v; want %v", got, want)
	}
}

// TestSetAlgebra covers union, intersection, difference and the subset
// relations on overlapping sets.
func TestSetAlgebra(t *testing.T) {
	x, y, z := varset.NewVar(0, 2), varset.NewVar(1, 2), varset.NewVar(2, 2)
	xy := varset.New(x, y)
	yz := varset.New(y, z)

	if got := xy.Union(yz); !got.Equal(varset.New(x, y, z)) {
		t.Errorf("Union = %v", got)
	}
	if got := xy.Intersect(yz); !got.Equal(varset.New(y)) {
		t.Errorf("Intersect = %v", got)
	}
	if got := xy.Minus(yz); !got.Equal(varset.New(x)) {
		t.Errorf("Minus = %v", got)
	}
	if !varset.New(y).SubsetOf(xy) || xy.SubsetOf(yz) {
		t.Errorf("SubsetOf misbehaves")
	}
	if !xy.ContainsAll(varset.New(x)) || !xy.Contains(y) || xy.Contains(z) {
		t.Errorf("containment misbehaves")
	}
	empty := varset.New()
	if !empty.SubsetOf(xy) || !empty.Empty() {
		t.Errorf("empty set should be a subset of everything")
	}
}

// TestJointStates verifies the joint-state product, including the empty set.
func TestJointStates(t *testing.T) {
	if got := varset.New().States(); got != 1 {
		t.Errorf("empty States = %d; want 1", got)
	}
	s := varset.New(varset.NewVar(0, 2), varset.NewVar(1, 3), varset.NewVar(2, 4))
	if got := s.States(); got != 24 {
		t.Errorf("States = %d; want 24", got)
	}
}

// TestCalcStateRoundTrip checks that CalcStates inverts CalcState for every
// linear index, and that the lowest label is the least-significant digit.
func TestCalcStateRoundTrip(t *testing.T) {
	x, y := varset.NewVar(2, 3), varset.NewVar(9, 2)
	s := varset.New(x, y)

	// x is least significant: state (x=2, y=1) encodes as 2 + 1*3 = 5.
	if got := s.CalcState(map[varset.Var]int{x: 2, y: 1}); got != 5 {
		t.Errorf("CalcState = %d; want 5", got)
	}
	for k := 0; k < s.States(); k++ {
		if got := s.CalcState(s.CalcStates(k)); got != k {
			t.Errorf("round trip at %d gave %d", k, got)
		}
	}
}

// TestString verifies the diagnostic rendering.
func TestString(t *testing.T) {
	s := varset.New(varset.NewVar(4, 2), varset.NewVar(1, 2))
	if got := s.String(); got != "{x1, x4}" {
		t.Errorf("String = %q", got)
	}
	if got := varset.New().String(); got != "{}" {
		t.Errorf("empty String = %q", got)
	}
}
