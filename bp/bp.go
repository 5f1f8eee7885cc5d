package bp

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/veldtkamp/inferno/diffs"
	"github.com/veldtkamp/inferno/prob"
	"github.com/veldtkamp/inferno/props"
	"github.com/veldtkamp/inferno/varset"
)

// Name identifies the algorithm in Identify output.
const Name = "BP"

// edgeProp carries the per-edge state for the edge (variable i, local slot
// _I): the committed and staged messages, the precomputed index table
// mapping factor positions to variable states, and the SEQMAX residual.
type edgeProp struct {
	message    prob.Vector
	newMessage prob.Vector
	index      []int
	residual   float64
}

// BP is a loopy belief propagation engine bound to one factor graph.
// It is not safe for concurrent use; all mutable state is owned by the
// instance and Run executes to completion on the calling goroutine.
type BP struct {
	g  GraphView
	ps props.Set

	updates   UpdateType
	tol       float64
	maxIter   uint
	verbose   uint
	logDomain bool

	normType   prob.NormType
	rng        *rand.Rand
	linearScan bool

	edges   [][]edgeProp
	maxDiff float64
	iters   uint

	// scratch buffers reused across message updates
	prodBuf  prob.Vector
	prodJBuf prob.Vector
}

// New constructs an engine against g, configured by the five mandatory
// properties updates, tol, maxiter, verbose and logdomain. Missing or
// malformed properties fail construction; nothing is allocated in that
// case. The edge table and index maps are built once and live for the
// graph's lifetime, and all messages start at the neutral element.
func New(g GraphView, ps props.Set, opts ...Option) (*BP, error) {
	b := &BP{
		g:        g,
		ps:       ps,
		normType: prob.NormProb,
		rng:      rand.New(rand.NewSource(42)),
	}
	if err := b.readProperties(); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(b)
	}
	if err := b.create(); err != nil {
		return nil, err
	}
	b.Init()
	return b, nil
}

// readProperties validates the mandatory configuration surface before any
// state exists, so a bad property can never fail a run halfway.
func (b *BP) readProperties() error {
	raw, err := b.ps.GetString("updates")
	if err != nil {
		return err
	}
	if b.updates, err = ParseUpdateType(raw); err != nil {
		return err
	}
	if b.tol, err = b.ps.GetFloat("tol"); err != nil {
		return err
	}
	if b.tol <= 0 {
		return errors.Wrapf(ErrBadTolerance, "tol=%g", b.tol)
	}
	if b.maxIter, err = b.ps.GetUint("maxiter"); err != nil {
		return err
	}
	if b.verbose, err = b.ps.GetUint("verbose"); err != nil {
		return err
	}
	if b.logDomain, err = b.ps.GetBool("logdomain"); err != nil {
		return err
	}
	return nil
}

// create allocates the edge table: one edgeProp per (variable, adjacent
// factor) pair, message vectors sized by the variable's cardinality, and
// the index table translating factor positions to variable states.
func (b *BP) create() error {
	nv := b.g.NVars()
	b.edges = make([][]edgeProp, nv)
	maxFactorStates, maxVarStates := 1, 1
	for i := 0; i < nv; i++ {
		vi := b.g.Var(i)
		if vi.States() > maxVarStates {
			maxVarStates = vi.States()
		}
		single := varset.New(vi)
		nb := b.g.NbV(i)
		b.edges[i] = make([]edgeProp, len(nb))
		for _, I := range nb {
			fI := b.g.Factor(I.Node)
			idx, err := varset.NewIndexMap(single, fI.Vars())
			if err != nil {
				return errors.Wrapf(err, "bp: variable %d absent from factor %d", i, I.Node)
			}
			if fI.States() > maxFactorStates {
				maxFactorStates = fI.States()
			}
			b.edges[i][I.Iter] = edgeProp{
				message:    prob.NewVector(vi.States()),
				newMessage: prob.NewVector(vi.States()),
				index:      idx.Table(),
			}
		}
	}
	b.prodBuf = prob.NewVector(maxFactorStates)
	b.prodJBuf = prob.NewVector(maxVarStates)
	return nil
}

// neutral is the multiplicative identity in the active domain.
func (b *BP) neutral() float64 {
	if b.logDomain {
		return 0
	}
	return 1
}

// Init resets every committed and staged message to the neutral element and
// clears the residuals.
func (b *BP) Init() {
	for i := range b.edges {
		for e := range b.edges[i] {
			ep := &b.edges[i][e]
			ep.message.Fill(b.neutral())
			ep.newMessage.Fill(b.neutral())
			ep.residual = 0
		}
	}
}

// InitVars resets the committed messages of the variables in ns, leaving
// staged messages alone. Variables absent from the graph are skipped.
func (b *BP) InitVars(ns varset.VarSet) {
	for _, v := range ns.Vars() {
		i, ok := b.g.FindVar(v)
		if !ok {
			continue
		}
		for e := range b.edges[i] {
			b.edges[i][e].message.Fill(b.neutral())
		}
	}
}

// message returns the committed message on edge (i, _I).
func (b *BP) message(i, _I int) prob.Vector { return b.edges[i][_I].message }

// calcNewMessage recomputes the staged message on edge (i, _I), i.e. the
// message from factor I = NbV(i)[_I] to variable i:
// the factor table times the aggregated incoming messages of every other
// neighbor variable, marginalized onto i and normalized.
func (b *BP) calcNewMessage(i, _I int) error {
	I := b.g.NbV(i)[_I].Node
	fI := b.g.Factor(I)

	prod := b.prodBuf[:fI.States()]
	copy(prod, fI.P())
	if b.logDomain {
		prod.LogAssign(false)
	}

	// Fold in, per neighbor j ≠ i, the product of j's other incoming
	// messages, routed through the precomputed index table.
	for _, j := range b.g.NbF(I) {
		if j.Node == i {
			continue
		}
		ind := b.edges[j.Node][j.Dual].index

		prodJ := b.prodJBuf[:b.g.Var(j.Node).States()]
		prodJ.Fill(b.neutral())
		for _, J := range b.g.NbV(j.Node) {
			if J.Node == I {
				continue
			}
			if b.logDomain {
				_ = prodJ.AddAssign(b.message(j.Node, J.Iter))
			} else {
				_ = prodJ.MulAssign(b.message(j.Node, J.Iter))
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

	// Marginalize onto variable i.
	ep := &b.edges[i][_I]
	marg := ep.newMessage
	marg.Fill(0)
	for r, target := range ep.index {
		marg[target] += prod[r]
	}
	if _, err := marg.Normalize(b.normType); err != nil {
		return errors.Wrapf(err, "bp: message from factor %d to variable %d", I, i)
	}
	if b.logDomain {
		marg.LogAssign(false)
	}
	return nil
}

// Run iterates the configured schedule until the largest per-variable
// belief change over a sweep drops to tol or maxiter sweeps have passed.
// It returns the final maximum change; a value above tol means the run did
// not converge, which is reported but is not an error. A non-normalizable
// message aborts the run.
func (b *BP) Run() (float64, error) {
	if b.verbose >= 1 {
		klog.Infof("starting %s", b.Identify())
	}

	history := diffs.New(b.g.NVars(), 1.0)

	oldBeliefs := make([]prob.Vector, b.g.NVars())
	for i := range oldBeliefs {
		v, err := b.beliefVVec(i)
		if err != nil {
			return 0, err
		}
		oldBeliefs[i] = v
	}

	var picker residualPicker
	var updateSeq [][2]int
	if b.updates == UpdatesSeqMax {
		// first pass: stage every message and seed the residuals
		for i := range b.edges {
			for e := range b.edges[i] {
				if err := b.calcNewMessage(i, e); err != nil {
					return 0, err
				}
				b.edges[i][e].residual = b.residualOf(i, e)
			}
		}
		picker = b.newPicker()
	} else {
		updateSeq = make([][2]int, 0, b.g.NEdges())
		for i := range b.edges {
			for e := range b.edges[i] {
				updateSeq = append(updateSeq, [2]int{i, e})
			}
		}
	}

	var iter uint
	for iter = 0; iter < b.maxIter && history.Max() > b.tol; iter++ {
		var err error
		switch b.updates {
		case UpdatesSeqMax:
			err = b.seqMaxSweep(picker)
		case UpdatesParallel:
			err = b.parallelSweep()
		default:
			if b.updates == UpdatesSeqRnd {
				b.rng.Shuffle(len(updateSeq), func(x, y int) {
					updateSeq[x], updateSeq[y] = updateSeq[y], updateSeq[x]
				})
			}
			err = b.sequentialSweep(updateSeq)
		}
		if err != nil {
			return 0, err
		}

		for i := range oldBeliefs {
			nb, err := b.beliefVVec(i)
			if err != nil {
				return 0, err
			}
			d, _ := prob.Distance(nb, oldBeliefs[i], prob.DistLInf)
			history.Push(d)
			oldBeliefs[i] = nb
		}

		if b.verbose >= 3 {
			klog.Infof("BP.Run: maxdiff %.3g after %d passes", history.Max(), iter+1)
		}
	}

	b.maxDiff = history.Max()
	b.iters = iter

	if b.verbose >= 1 {
		if b.maxDiff > b.tol {
			klog.Warningf("BP.Run: not converged within %d passes, final maxdiff %g", b.maxIter, b.maxDiff)
		} else {
			klog.Infof("BP.Run: converged in %d passes", iter)
		}
	}
	return b.maxDiff, nil
}

// parallelSweep stages every message from the current committed state and
// commits them all at once.
func (b *BP) parallelSweep() error {
	for i := range b.edges {
		for e := range b.edges[i] {
			if err := b.calcNewMessage(i, e); err != nil {
				return err
			}
		}
	}
	for i := range b.edges {
		for e := range b.edges[i] {
			copy(b.edges[i][e].message, b.edges[i][e].newMessage)
		}
	}
	return nil
}

// sequentialSweep walks seq, staging and committing one edge at a time.
func (b *BP) sequentialSweep(seq [][2]int) error {
	for _, edge := range seq {
		if err := b.calcNewMessage(edge[0], edge[1]); err != nil {
			return err
		}
		ep := &b.edges[edge[0]][edge[1]]
		copy(ep.message, ep.newMessage)
	}
	return nil
}

// seqMaxSweep performs nEdges residual-priority steps: commit the staged
// message with the largest residual, then restage every message that read
// the committed one and refresh its residual.
func (b *BP) seqMaxSweep(picker residualPicker) error {
	for t := 0; t < b.g.NEdges(); t++ {
		i, _I, ok := picker.pick()
		if !ok {
			return nil
		}
		ep := &b.edges[i][_I]
		copy(ep.message, ep.newMessage)
		picker.update(i, _I, ep.residual, 0)
		ep.residual = 0

		for _, J := range b.g.NbV(i) {
			if J.Iter == _I {
				continue
			}
			for _, j := range b.g.NbF(J.Node) {
				if j.Node == i {
					continue
				}
				if err := b.calcNewMessage(j.Node, j.Dual); err != nil {
					return err
				}
				dep := &b.edges[j.Node][j.Dual]
				r := b.residualOf(j.Node, j.Dual)
				picker.update(j.Node, j.Dual, dep.residual, r)
				dep.residual = r
			}
		}
	}
	return nil
}

// residualOf measures how far the staged message has moved from the
// committed one, in the L∞ norm.
func (b *BP) residualOf(i, _I int) float64 {
	ep := &b.edges[i][_I]
	d, _ := prob.Distance(ep.newMessage, ep.message, prob.DistLInf)
	return d
}

// MaxDiff returns the final maximum belief change of the last Run.
func (b *BP) MaxDiff() float64 { return b.maxDiff }

// Iterations returns the number of sweeps the last Run performed.
func (b *BP) Iterations() uint { return b.iters }

// Identify returns the algorithm name with its serialized configuration.
func (b *BP) Identify() string { return Name + b.ps.String() }
