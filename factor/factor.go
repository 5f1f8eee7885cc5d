package factor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/veldtkamp/inferno/prob"
	"github.com/veldtkamp/inferno/varset"
)

// Sentinel errors for factor operations.
var (
	// ErrShapeMismatch indicates a value vector whose length does not equal
	// the joint-state count of the variable set.
	ErrShapeMismatch = errors.New("factor: value vector length does not match joint-state count")

	// ErrVarSetMismatch indicates equal-shape arithmetic on factors with
	// different variable sets.
	ErrVarSetMismatch = errors.New("factor: variable sets differ")

	// ErrNotSubset indicates a slice or embed whose subset/superset
	// precondition is violated.
	ErrNotSubset = errors.New("factor: subset precondition violated")

	// ErrVarNotFound indicates a strength query for a variable the factor
	// does not depend on.
	ErrVarNotFound = errors.New("factor: variable not in factor")
)

// Factor is a function from the joint states of a variable set to the reals,
// stored as a dense table in linear-encoding order. The zero value is the
// empty-set factor with an empty table; use New for the scalar-1 factor.
type Factor struct {
	vs varset.VarSet
	p  prob.Vector
}

// New returns the empty-VarSet factor with value 1 — the neutral element of
// the generalized product.
func New() Factor { return NewScalar(1) }

// NewScalar returns the empty-VarSet factor with the given value.
func NewScalar(x float64) Factor {
	return Factor{p: prob.NewFilled(1, x)}
}

// NewUniform returns a factor over vs with every entry 1/States(vs).
func NewUniform(vs varset.VarSet) Factor {
	return Factor{vs: vs, p: prob.NewUniform(vs.States())}
}

// NewFilled returns a factor over vs with every entry set to x.
func NewFilled(vs varset.VarSet, x float64) Factor {
	return Factor{vs: vs, p: prob.NewFilled(vs.States(), x)}
}

// NewFromVar returns the uniform factor over the single variable v.
func NewFromVar(v varset.Var) Factor {
	return NewUniform(varset.New(v))
}

// NewFromVector wraps vs and p into a factor without copying p.
// Returns ErrShapeMismatch unless len(p) == States(vs).
func NewFromVector(vs varset.VarSet, p prob.Vector) (Factor, error) {
	if p.Len() != vs.States() {
		return Factor{}, ErrShapeMismatch
	}
	return Factor{vs: vs, p: p}, nil
}

// NewFromSlice copies xs into a factor over vs.
// Returns ErrShapeMismatch unless len(xs) == States(vs).
func NewFromSlice(vs varset.VarSet, xs []float64) (Factor, error) {
	return NewFromVector(vs, prob.FromSlice(xs))
}

// Vars returns the factor's variable set.
func (f Factor) Vars() varset.VarSet { return f.vs }

// P returns the backing value vector. The slice is shared with the factor;
// treat it as read-only unless you own the factor.
func (f Factor) P() prob.Vector { return f.p }

// States returns the number of joint states, equal to the table length.
func (f Factor) States() int { return f.p.Len() }

// At returns the value at linear index k.
func (f Factor) At(k int) float64 { return f.p[k] }

// Clone returns a deep copy of f.
func (f Factor) Clone() Factor { return Factor{vs: f.vs, p: f.p.Clone()} }

// Fill sets every entry to x.
func (f Factor) Fill(x float64) { f.p.Fill(x) }

// --- scalar arithmetic ---

// TimesScalar returns f scaled by t.
func (f Factor) TimesScalar(t float64) Factor { return Factor{vs: f.vs, p: f.p.MulScalar(t)} }

// DividedByScalar returns f divided by t.
func (f Factor) DividedByScalar(t float64) Factor { return Factor{vs: f.vs, p: f.p.DivScalar(t)} }

// PlusScalar returns f with t added to every entry.
func (f Factor) PlusScalar(t float64) Factor { return Factor{vs: f.vs, p: f.p.AddScalar(t)} }

// MinusScalar returns f with t subtracted from every entry.
func (f Factor) MinusScalar(t float64) Factor { return Factor{vs: f.vs, p: f.p.SubScalar(t)} }

// PowScalar returns f with every entry raised to the power a.
func (f Factor) PowScalar(a float64) Factor { return Factor{vs: f.vs, p: f.p.Pow(a)} }

// --- equal-VarSet elementwise arithmetic ---

// Plus returns f + g. Returns ErrVarSetMismatch unless the variable sets
// are equal.
func (f Factor) Plus(g Factor) (Factor, error) { return f.zipEq(g, prob.Vector.Plus) }

// Minus returns f − g over an equal variable set.
func (f Factor) Minus(g Factor) (Factor, error) { return f.zipEq(g, prob.Vector.Minus) }

// TimesEq returns the pointwise product of two factors over the same
// variable set. For differing sets use Times.
func (f Factor) TimesEq(g Factor) (Factor, error) { return f.zipEq(g, prob.Vector.Times) }

// DividedByEq returns the pointwise quotient over the same variable set.
// For differing sets use DividedBy.
func (f Factor) DividedByEq(g Factor) (Factor, error) { return f.zipEq(g, prob.Vector.DividedBy) }

func (f Factor) zipEq(g Factor, op func(prob.Vector, prob.Vector) (prob.Vector, error)) (Factor, error) {
	if !f.vs.Equal(g.vs) {
		return Factor{}, ErrVarSetMismatch
	}
	p, err := op(f.p, g.p)
	if err != nil {
		return Factor{}, err
	}
	return Factor{vs: f.vs, p: p}, nil
}

// --- pointwise transforms and reductions ---

// Exp returns the pointwise exponential of f.
func (f Factor) Exp() Factor { return Factor{vs: f.vs, p: f.p.Exp()} }

// Log returns the pointwise natural logarithm of f.
// If keepZero, log(0) is defined as 0.
func (f Factor) Log(keepZero bool) Factor { return Factor{vs: f.vs, p: f.p.Log(keepZero)} }

// Abs returns the pointwise absolute value of f.
func (f Factor) Abs() Factor { return Factor{vs: f.vs, p: f.p.Abs()} }

// Inverse returns the pointwise reciprocal of f.
// If keepZero, 1/0 is defined as 0.
func (f Factor) Inverse(keepZero bool) Factor { return Factor{vs: f.vs, p: f.p.Inverse(keepZero)} }

// MakeZero zeroes every entry with absolute value below eps, in place.
func (f Factor) MakeZero(eps float64) { f.p.MakeZero(eps) }

// MakePositive raises every entry below eps to eps, in place.
func (f Factor) MakePositive(eps float64) { f.p.MakePositive(eps) }

// TotalSum returns the sum of all entries.
func (f Factor) TotalSum() float64 { return f.p.TotalSum() }

// MaxVal returns the largest entry.
func (f Factor) MaxVal() float64 { return f.p.Max() }

// MinVal returns the smallest entry.
func (f Factor) MinVal() float64 { return f.p.Min() }

// MaxAbs returns the largest absolute entry.
func (f Factor) MaxAbs() float64 { return f.p.MaxAbs() }

// Entropy returns −Σ p·log p over the nonzero entries of the table.
func (f Factor) Entropy() float64 { return f.p.Entropy() }

// HasNaN reports whether the table contains a NaN.
func (f Factor) HasNaN() bool { return f.p.HasNaN() }

// HasNegatives reports whether the table contains a negative entry.
func (f Factor) HasNegatives() bool { return f.p.HasNegative() }

// Normalize rescales f in place under the given norm and returns the
// divisor. Returns prob.ErrNonNormalizable when the norm is zero.
func (f Factor) Normalize(kind prob.NormType) (float64, error) { return f.p.Normalize(kind) }

// Normalized returns a normalized copy of f.
func (f Factor) Normalized(kind prob.NormType) (Factor, error) {
	p, err := f.p.Normalized(kind)
	if err != nil {
		return Factor{}, err
	}
	return Factor{vs: f.vs, p: p}, nil
}

// Distance returns the distance between two factors over the same variable
// set under the given measure. Returns ErrVarSetMismatch on shape clash.
func Distance(f, g Factor, kind prob.DistType) (float64, error) {
	if !f.vs.Equal(g.vs) {
		return 0, ErrVarSetMismatch
	}
	return prob.Distance(f.p, g.p, kind)
}

// String renders the factor in the diagnostic dump format
// "({x0, x1} <v0 v1 ...>)".
func (f Factor) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(f.vs.String())
	sb.WriteString(" <")
	for i, x := range f.p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%g", x)
	}
	sb.WriteString(">)")
	return sb.String()
}
