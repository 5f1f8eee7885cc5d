package factor

import (
	"github.com/veldtkamp/inferno/prob"
	"github.com/veldtkamp/inferno/varset"
)

// Times returns the generalized factor product f·g. The result ranges over
// the union of the two variable sets; its value at a joint state is the
// product of f and g evaluated at the state's restrictions.
func (f Factor) Times(g Factor) Factor { return f.join(g, false) }

// DividedBy returns the generalized quotient f/g over the union variable
// set. Division by zero follows IEEE semantics; callers wanting zeros apply
// MakeZero afterwards.
func (f Factor) DividedBy(g Factor) Factor { return f.join(g, true) }

func (f Factor) join(g Factor, quotient bool) Factor {
	if f.vs.Equal(g.vs) {
		p := f.p.Clone()
		if quotient {
			_ = p.DivAssign(g.p)
		} else {
			_ = p.MulAssign(g.p)
		}
		return Factor{vs: f.vs, p: p}
	}
	union := f.vs.Union(g.vs)
	// Both operands are subsets of their union, so map construction cannot
	// fail.
	i1, _ := varset.NewIndexMap(f.vs, union)
	i2, _ := varset.NewIndexMap(g.vs, union)
	t1, t2 := i1.Table(), i2.Table()

	p := prob.NewVector(union.States())
	if quotient {
		for k := range p {
			p[k] = f.p[t1[k]] / g.p[t2[k]]
		}
	} else {
		for k := range p {
			p[k] = f.p[t1[k]] * g.p[t2[k]]
		}
	}
	return Factor{vs: union, p: p}
}

// Marginal sums f down onto vs ∩ Vars(f) and, when normed, renormalizes the
// result under the probability norm. Returns prob.ErrNonNormalizable when a
// requested normalization hits an all-zero table.
func (f Factor) Marginal(vs varset.VarSet, normed bool) (Factor, error) {
	res := vs.Intersect(f.vs)
	idx, _ := varset.NewIndexMap(res, f.vs)
	t := idx.Table()

	p := prob.NewVector(res.States())
	for k := range f.p {
		p[t[k]] += f.p[k]
	}
	out := Factor{vs: res, p: p}
	if normed {
		if _, err := out.Normalize(prob.NormProb); err != nil {
			return Factor{}, err
		}
	}
	return out, nil
}

// PartSum is the un-normalized marginal: the partial sum of f onto
// vs ∩ Vars(f).
func (f Factor) PartSum(vs varset.VarSet) Factor {
	out, _ := f.Marginal(vs, false)
	return out
}

// Slice fixes the variables in fix to the joint state encoded by stateIndex
// and returns the restriction of f to the remaining variables.
// Returns ErrNotSubset unless fix ⊆ Vars(f); stateIndex must be below
// States(fix).
func (f Factor) Slice(fix varset.VarSet, stateIndex int) (Factor, error) {
	if !fix.SubsetOf(f.vs) {
		return Factor{}, ErrNotSubset
	}
	rem := f.vs.Minus(fix)
	iFix, _ := varset.NewIndexMap(fix, f.vs)
	iRem, _ := varset.NewIndexMap(rem, f.vs)
	tFix, tRem := iFix.Table(), iRem.Table()

	p := prob.NewVector(rem.States())
	for k := range f.p {
		if tFix[k] == stateIndex {
			p[tRem[k]] = f.p[k]
		}
	}
	return Factor{vs: rem, p: p}, nil
}

// Embed lifts f onto the superset vs by multiplying with the all-ones
// factor over vs \ Vars(f). Returns ErrNotSubset unless Vars(f) ⊆ vs.
func (f Factor) Embed(vs varset.VarSet) (Factor, error) {
	if !f.vs.SubsetOf(vs) {
		return Factor{}, ErrNotSubset
	}
	if f.vs.Equal(vs) {
		return f, nil
	}
	return f.Times(NewFilled(vs.Minus(f.vs), 1)), nil
}

// Max returns the pointwise maximum of two factors over the same variable
// set. Returns ErrVarSetMismatch on shape clash.
func Max(f, g Factor) (Factor, error) { return pick(f, g, true) }

// Min returns the pointwise minimum of two factors over the same variable
// set. Returns ErrVarSetMismatch on shape clash.
func Min(f, g Factor) (Factor, error) { return pick(f, g, false) }

func pick(f, g Factor, wantMax bool) (Factor, error) {
	if !f.vs.Equal(g.vs) {
		return Factor{}, ErrVarSetMismatch
	}
	p := prob.NewVector(f.p.Len())
	for i := range p {
		if (f.p[i] > g.p[i]) == wantMax {
			p[i] = f.p[i]
		} else {
			p[i] = g.p[i]
		}
	}
	return Factor{vs: f.vs, p: p}, nil
}
