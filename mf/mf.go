package mf

import (
	stderrors "errors"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/veldtkamp/inferno/diffs"
	"github.com/veldtkamp/inferno/factor"
	"github.com/veldtkamp/inferno/factorgraph"
	"github.com/veldtkamp/inferno/prob"
	"github.com/veldtkamp/inferno/props"
	"github.com/veldtkamp/inferno/varset"
)

// Name identifies the algorithm in Identify output.
const Name = "MF"

// Sentinel errors for mean-field runs and queries.
var (
	// ErrNaNBelief indicates a site update that produced NaN values.
	ErrNaNBelief = stderrors.New("mf: belief update produced NaN")

	// ErrBadTolerance indicates a tol property that is not strictly positive.
	ErrBadTolerance = stderrors.New("mf: tolerance must be > 0")

	// ErrNotSingleton indicates a joint belief query; mean field only
	// carries single-variable beliefs.
	ErrNotSingleton = stderrors.New("mf: only single-variable beliefs exist")

	// ErrVarNotFound indicates a belief query for a variable the graph does
	// not contain.
	ErrVarNotFound = stderrors.New("mf: variable not in graph")
)

// GraphView is the read-only factor-graph surface the engine consumes;
// *factorgraph.Graph satisfies it.
type GraphView interface {
	NVars() int
	NFactors() int
	Var(i int) varset.Var
	Factor(i int) factor.Factor
	NbV(i int) []factorgraph.Neighbor
	NbF(i int) []factorgraph.Neighbor
	FindVar(v varset.Var) (int, bool)
}

// Option tweaks engine behavior beyond the property surface.
type Option func(*MF)

// WithRand sets the random source that draws update sites. The default
// source is deterministically seeded.
func WithRand(r *rand.Rand) Option {
	return func(m *MF) {
		if r != nil {
			m.rng = r
		}
	}
}

// MF is a naive mean-field engine bound to one factor graph. Not safe for
// concurrent use.
type MF struct {
	g  GraphView
	ps props.Set

	tol     float64
	maxIter uint
	verbose uint

	rng     *rand.Rand
	beliefs []factor.Factor
	maxDiff float64
}

// New constructs an engine against g, configured by the mandatory
// properties tol, maxiter and verbose, with all site beliefs uniform.
func New(g GraphView, ps props.Set, opts ...Option) (*MF, error) {
	m := &MF{
		g:   g,
		ps:  ps,
		rng: rand.New(rand.NewSource(42)),
	}
	var err error
	if m.tol, err = ps.GetFloat("tol"); err != nil {
		return nil, err
	}
	if m.tol <= 0 {
		return nil, errors.Wrapf(ErrBadTolerance, "tol=%g", m.tol)
	}
	if m.maxIter, err = ps.GetUint("maxiter"); err != nil {
		return nil, err
	}
	if m.verbose, err = ps.GetUint("verbose"); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(m)
	}
	m.beliefs = make([]factor.Factor, g.NVars())
	for i := range m.beliefs {
		m.beliefs[i] = factor.NewFromVar(g.Var(i))
	}
	m.Init()
	return m, nil
}

// Init resets every site belief to the all-ones table.
func (m *MF) Init() {
	for i := range m.beliefs {
		m.beliefs[i].Fill(1)
	}
}

// InitVars resets the site beliefs of the variables in ns.
func (m *MF) InitVars(ns varset.VarSet) {
	for _, v := range ns.Vars() {
		if i, ok := m.g.FindVar(v); ok {
			m.beliefs[i].Fill(1)
		}
	}
}

// update recomputes the site belief of variable i from its Markov blanket:
// the product over adjacent factors of exp(E_q[log factor]).
func (m *MF) update(i int) (factor.Factor, error) {
	jan := factor.New()
	for _, I := range m.g.NbV(i) {
		henk := factor.New()
		for _, j := range m.g.NbF(I.Node) {
			if j.Node != i {
				henk = henk.Times(m.beliefs[j.Node])
			}
		}
		piet := m.g.Factor(I.Node).Log(true)
		piet = piet.Times(henk)
		piet = piet.PartSum(varset.New(m.g.Var(i)))
		jan = jan.Times(piet.Exp())
	}
	if _, err := jan.Normalize(prob.NormProb); err != nil {
		return factor.Factor{}, errors.Wrapf(err, "mf: belief of variable %d", i)
	}
	if jan.HasNaN() {
		return factor.Factor{}, errors.Wrapf(ErrNaNBelief, "variable %d", i)
	}
	return jan, nil
}

// Run performs random single-site updates until the largest site change
// over a window of recent updates drops to tol or maxiter passes have been
// spent. Returns the final maximum change; a value above tol means
// non-convergence, which is reported but is not an error.
func (m *MF) Run() (float64, error) {
	if m.verbose >= 1 {
		klog.Infof("starting %s", m.Identify())
	}

	passSize := len(m.beliefs)
	history := diffs.New(passSize*3, 1.0)

	var t uint
	for t = 0; t < m.maxIter*uint(passSize) && history.Max() > m.tol; t++ {
		i := m.rng.Intn(m.g.NVars())
		jan, err := m.update(i)
		if err != nil {
			return 0, err
		}
		d, err := factor.Distance(jan, m.beliefs[i], prob.DistLInf)
		if err != nil {
			return 0, err
		}
		history.Push(d)
		m.beliefs[i] = jan
	}

	m.maxDiff = history.Max()

	if m.verbose >= 1 {
		if m.maxDiff > m.tol {
			klog.Warningf("MF.Run: not converged within %d passes, final maxdiff %g", m.maxIter, m.maxDiff)
		} else {
			klog.Infof("MF.Run: converged in %d passes", t/uint(passSize))
		}
	}
	return m.maxDiff, nil
}

// BeliefVar returns the normalized site belief of the i'th variable.
func (m *MF) BeliefVar(i int) (factor.Factor, error) {
	return m.beliefs[i].Normalized(prob.NormProb)
}

// BeliefOf returns the site belief of the given variable, looked up by
// label.
func (m *MF) BeliefOf(v varset.Var) (factor.Factor, error) {
	i, ok := m.g.FindVar(v)
	if !ok {
		return factor.Factor{}, ErrVarNotFound
	}
	return m.BeliefVar(i)
}

// Belief returns the belief over ns, which must contain exactly one
// variable. Returns ErrNotSingleton otherwise.
func (m *MF) Belief(ns varset.VarSet) (factor.Factor, error) {
	if ns.Size() != 1 {
		return factor.Factor{}, ErrNotSingleton
	}
	return m.BeliefOf(ns.At(0))
}

// Beliefs returns the site beliefs of all variables.
func (m *MF) Beliefs() ([]factor.Factor, error) {
	out := make([]factor.Factor, m.g.NVars())
	for i := range out {
		f, err := m.BeliefVar(i)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// LogZ returns the mean-field free-energy estimate of the log partition
// function: Σ_i H(q_i) + Σ_I E_q[log factor_I]. It lower-bounds the true
// value.
func (m *MF) LogZ() (float64, error) {
	sum := 0.0
	for i := range m.beliefs {
		bi, err := m.BeliefVar(i)
		if err != nil {
			return 0, err
		}
		sum += bi.Entropy()
	}
	for I := 0; I < m.g.NFactors(); I++ {
		henk := factor.New()
		for _, j := range m.g.NbF(I) {
			henk = henk.Times(m.beliefs[j.Node])
		}
		if _, err := henk.Normalize(prob.NormProb); err != nil {
			return 0, errors.Wrapf(err, "mf: factor %d expectation", I)
		}
		piet := m.g.Factor(I).Log(true)
		piet = piet.Times(henk)
		sum += piet.TotalSum()
	}
	return sum, nil
}

// MaxDiff returns the final maximum site change of the last Run.
func (m *MF) MaxDiff() float64 { return m.maxDiff }

// Identify returns the algorithm name with its serialized configuration.
func (m *MF) Identify() string { return Name + m.ps.String() }
