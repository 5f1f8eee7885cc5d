package factorgraph

import (
	"errors"
	"sort"

	"github.com/veldtkamp/inferno/factor"
	"github.com/veldtkamp/inferno/varset"
)

// ErrCardinalityClash indicates two factors that disagree on the state
// count of a shared variable label.
var ErrCardinalityClash = errors.New("factorgraph: variable label used with different state counts")

// Neighbor is one entry of a neighbor list. Node is the index of the
// adjacent node (a factor index in NbV lists, a variable index in NbF
// lists); Iter is the entry's own position within its list; Dual is the
// position of the reciprocal entry in the adjacent node's list, so that
//
//	NbF(I)[NbV(i)[_I].Dual].Node == i
//
// holds for every edge (i, _I).
type Neighbor struct {
	Node int
	Iter int
	Dual int
}

// Graph is an immutable bipartite factor graph: variables sorted by label,
// factors in construction order, and the neighbor arenas connecting them.
type Graph struct {
	vars    []varset.Var
	factors []factor.Factor
	nbV     [][]Neighbor
	nbF     [][]Neighbor
	edges   int
	byLabel map[int64]int
}

// New builds a graph from the given factors. The variable roster is the
// union of the factors' variable sets, sorted by label. Returns
// ErrCardinalityClash when two factors use one label with different state
// counts.
func New(factors []factor.Factor) (*Graph, error) {
	byLabel := make(map[int64]varset.Var)
	for _, f := range factors {
		for _, v := range f.Vars().Vars() {
			if seen, ok := byLabel[v.Label()]; ok && seen.States() != v.States() {
				return nil, ErrCardinalityClash
			}
			byLabel[v.Label()] = v
		}
	}

	vars := make([]varset.Var, 0, len(byLabel))
	for _, v := range byLabel {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Less(vars[j]) })

	g := &Graph{
		vars:    vars,
		factors: make([]factor.Factor, len(factors)),
		nbV:     make([][]Neighbor, len(vars)),
		nbF:     make([][]Neighbor, len(factors)),
		byLabel: make(map[int64]int, len(vars)),
	}
	copy(g.factors, factors)
	for i, v := range vars {
		g.byLabel[v.Label()] = i
	}

	for fi, f := range factors {
		for _, v := range f.Vars().Vars() {
			vi := g.byLabel[v.Label()]
			// cross-link the two ends of the edge
			g.nbF[fi] = append(g.nbF[fi], Neighbor{
				Node: vi,
				Iter: len(g.nbF[fi]),
				Dual: len(g.nbV[vi]),
			})
			g.nbV[vi] = append(g.nbV[vi], Neighbor{
				Node: fi,
				Iter: len(g.nbV[vi]),
				Dual: len(g.nbF[fi]) - 1,
			})
			g.edges++
		}
	}
	return g, nil
}

// NVars returns the number of variables.
func (g *Graph) NVars() int { return len(g.vars) }

// NFactors returns the number of factors.
func (g *Graph) NFactors() int { return len(g.factors) }

// NEdges returns the number of variable-factor adjacencies.
func (g *Graph) NEdges() int { return g.edges }

// Var returns the i'th variable in label order.
func (g *Graph) Var(i int) varset.Var { return g.vars[i] }

// Vars returns all variables in label order. The slice is a copy.
func (g *Graph) Vars() []varset.Var {
	out := make([]varset.Var, len(g.vars))
	copy(out, g.vars)
	return out
}

// Factor returns the I'th factor. The factor's table is shared with the
// graph; treat it as read-only.
func (g *Graph) Factor(i int) factor.Factor { return g.factors[i] }

// NbV returns variable i's neighbor list (one entry per adjacent factor).
// The slice is the internal arena; do not modify it.
func (g *Graph) NbV(i int) []Neighbor { return g.nbV[i] }

// NbF returns factor I's neighbor list (one entry per variable it depends
// on, in label order). The slice is the internal arena; do not modify it.
func (g *Graph) NbF(i int) []Neighbor { return g.nbF[i] }

// FindVar returns the roster index of v, looked up by label.
func (g *Graph) FindVar(v varset.Var) (int, bool) {
	i, ok := g.byLabel[v.Label()]
	return i, ok
}
