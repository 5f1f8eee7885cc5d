package factor

import (
	"errors"
	"math"

	"github.com/veldtkamp/inferno/prob"
	"github.com/veldtkamp/inferno/varset"
)

// strengthEps clamps slice denominators so the quotients in Strength stay
// finite even when the factor table contains exact zeros.
const strengthEps = 1e-290

// ErrNotPairwise is returned by MutualInfo for factors that do not depend on
// exactly two variables.
var ErrNotPairwise = errors.New("factor: mutual information needs a pairwise factor")

// Strength computes the interaction strength between variables i and j
// under f, following Mooij & Kappen (2007), eq. 52:
//
//	tanh(¼·log M),  M = max over α₁≠α₂, β₁≠β₂ of Φ(α₁,β₁,α₂,β₁)·Φ(α₂,β₂,α₁,β₂)
//
// where Φ(α,β,α',β') maximizes the ratio of the two corresponding slices
// over the remaining variables. Denominator slices are clamped with
// MakePositive(1e-290) before dividing, so zeros in the table yield a large
// finite ratio rather than ±Inf or NaN.
//
// Returns ErrVarNotFound unless both variables are in Vars(f), and
// ErrVarSetMismatch when i equals j.
func (f Factor) Strength(i, j varset.Var) (float64, error) {
	if i == j {
		return 0, ErrVarSetMismatch
	}
	if !f.vs.Contains(i) || !f.vs.Contains(j) {
		return 0, ErrVarNotFound
	}
	ij := varset.New(i, j)

	// Digit strides of i and j inside the {i,j} encoding.
	as, bs := 1, 1
	if i.Less(j) {
		bs = i.States()
	} else {
		as = j.States()
	}

	phi := func(num, den int) (float64, error) {
		fn, err := f.Slice(ij, num)
		if err != nil {
			return 0, err
		}
		fd, err := f.Slice(ij, den)
		if err != nil {
			return 0, err
		}
		fd.MakePositive(strengthEps)
		q, err := fn.P().DividedBy(fd.P())
		if err != nil {
			return 0, err
		}
		return q.Max(), nil
	}

	max := 0.0
	for a1 := 0; a1 < i.States(); a1++ {
		for a2 := 0; a2 < i.States(); a2++ {
			if a2 == a1 {
				continue
			}
			for b1 := 0; b1 < j.States(); b1++ {
				for b2 := 0; b2 < j.States(); b2++ {
					if b2 == b1 {
						continue
					}
					f1, err := phi(a1*as+b1*bs, a2*as+b1*bs)
					if err != nil {
						return 0, err
					}
					f2, err := phi(a2*as+b2*bs, a1*as+b2*bs)
					if err != nil {
						return 0, err
					}
					if v := f1 * f2; v > max {
						max = v
					}
				}
			}
		}
	}
	return math.Tanh(0.25 * math.Log(max)), nil
}

// MutualInfo computes the mutual information between the two variables a
// pairwise factor depends on, under the distribution the factor encodes:
// KL(f ‖ marginal(i)·marginal(j)). Returns ErrNotPairwise for factors with
// a different arity.
func MutualInfo(f Factor) (float64, error) {
	if f.vs.Size() != 2 {
		return 0, ErrNotPairwise
	}
	vi, vj := f.vs.At(0), f.vs.At(1)
	mi, err := f.Marginal(varset.New(vi), true)
	if err != nil {
		return 0, err
	}
	mj, err := f.Marginal(varset.New(vj), true)
	if err != nil {
		return 0, err
	}
	joint, err := f.Normalized(prob.NormProb)
	if err != nil {
		return 0, err
	}
	return Distance(joint, mi.Times(mj), prob.DistKL)
}
