package bp

import (
	"github.com/pkg/errors"

	"github.com/veldtkamp/inferno/factor"
	"github.com/veldtkamp/inferno/prob"
	"github.com/veldtkamp/inferno/varset"
)

// beliefVVec combines variable i's staged incoming messages into its
// normalized belief vector.
func (b *BP) beliefVVec(i int) (prob.Vector, error) {
	prod := prob.NewFilled(b.g.Var(i).States(), b.neutral())
	for _, I := range b.g.NbV(i) {
		if b.logDomain {
			_ = prod.AddAssign(b.edges[i][I.Iter].newMessage)
		} else {
			_ = prod.MulAssign(b.edges[i][I.Iter].newMessage)
		}
	}
	if b.logDomain {
		prod.ShiftAssign(-prod.Max())
		prod.ExpAssign()
	}
	if _, err := prod.Normalize(prob.NormProb); err != nil {
		return nil, errors.Wrapf(err, "bp: belief of variable %d", i)
	}
	return prod, nil
}

// BeliefVar returns the belief of the i'th variable as a factor over that
// single variable.
func (b *BP) BeliefVar(i int) (factor.Factor, error) {
	p, err := b.beliefVVec(i)
	if err != nil {
		return factor.Factor{}, err
	}
	return factor.NewFromVector(varset.New(b.g.Var(i)), p)
}

// BeliefOf returns the belief of the given variable, looked up by label.
// Returns ErrVarNotFound for variables outside the graph.
func (b *BP) BeliefOf(v varset.Var) (factor.Factor, error) {
	i, ok := b.g.FindVar(v)
	if !ok {
		return factor.Factor{}, ErrVarNotFound
	}
	return b.BeliefVar(i)
}

// BeliefFactor returns the joint belief over factor I's variables: the
// factor table times every neighbor's other staged incoming messages,
// normalized. It mirrors the message update without the final
// marginalization.
func (b *BP) BeliefFactor(I int) (factor.Factor, error) {
	fI := b.g.Factor(I)
	prod := fI.P().Clone()
	if b.logDomain {
		prod.LogAssign(false)
	}

	for _, j := range b.g.NbF(I) {
		ind := b.edges[j.Node][j.Dual].index

		prodJ := prob.NewFilled(b.g.Var(j.Node).States(), b.neutral())
		for _, J := range b.g.NbV(j.Node) {
			if J.Node == I {
				continue
			}
			if b.logDomain {
				_ = prodJ.AddAssign(b.edges[j.Node][J.Iter].newMessage)
			} else {
				_ = prodJ.MulAssign(b.edges[j.Node][J.Iter].newMessage)
			}
		}

		if b.logDomain {
			for r := range prod {
				prod[r] += prodJ[ind[r]]
			}
		} else {
			for r := range prod {
				prod[r] *= prodJ[ind[r]]
			}
		}
	}

	if b.logDomain {
		prod.ShiftAssign(-prod.Max())
		prod.ExpAssign()
	}
	if _, err := prod.Normalize(prob.NormProb); err != nil {
		return factor.Factor{}, errors.Wrapf(err, "bp: belief of factor %d", I)
	}
	return factor.NewFromVector(fI.Vars(), prod)
}

// Belief returns the joint belief over ns. A single variable resolves to
// its variable belief; larger sets are answered by marginalizing the belief
// of any factor covering ns. Returns ErrNoContainingFactor when no factor
// does.
func (b *BP) Belief(ns varset.VarSet) (factor.Factor, error) {
	if ns.Size() == 1 {
		return b.BeliefOf(ns.At(0))
	}
	for I := 0; I < b.g.NFactors(); I++ {
		if ns.SubsetOf(b.g.Factor(I).Vars()) {
			bf, err := b.BeliefFactor(I)
			if err != nil {
				return factor.Factor{}, err
			}
			return bf.Marginal(ns, true)
		}
	}
	return factor.Factor{}, errors.Wrapf(ErrNoContainingFactor, "%v", ns)
}

// Beliefs returns the variable beliefs followed by the factor beliefs.
func (b *BP) Beliefs() ([]factor.Factor, error) {
	out := make([]factor.Factor, 0, b.g.NVars()+b.g.NFactors())
	for i := 0; i < b.g.NVars(); i++ {
		f, err := b.BeliefVar(i)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	for I := 0; I < b.g.NFactors(); I++ {
		f, err := b.BeliefFactor(I)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// LogZ returns the Bethe free-energy approximation of the log partition
// function:
//
//	Σ_i (1 − deg(i))·H(belief(x_i)) − Σ_I KL(belief(x_I) ‖ factor_I)
//
// Exact on trees once the run has converged.
func (b *BP) LogZ() (float64, error) {
	sum := 0.0
	for i := 0; i < b.g.NVars(); i++ {
		bi, err := b.beliefVVec(i)
		if err != nil {
			return 0, err
		}
		sum += float64(1-len(b.g.NbV(i))) * bi.Entropy()
	}
	for I := 0; I < b.g.NFactors(); I++ {
		bf, err := b.BeliefFactor(I)
		if err != nil {
			return 0, err
		}
		kl, err := factor.Distance(bf, b.g.Factor(I), prob.DistKL)
		if err != nil {
			return 0, err
		}
		sum -= kl
	}
	return sum, nil
}
