package bp

import (
	"github.com/emirpasic/gods/trees/redblacktree"
)

// residualPicker selects the edge with the largest residual. Ties always
// resolve toward the lowest variable index, then the lowest neighbor slot,
// so every picker implementation observes identical schedules.
type residualPicker interface {
	// pick returns the edge with the current maximum residual.
	// ok is false when the graph has no edges.
	pick() (i, iter int, ok bool)

	// update moves the edge from its old residual to the new one.
	update(i, iter int, old, next float64)
}

// edgeKey orders the residual tree: larger residuals first, ties by
// ascending (variable, slot).
type edgeKey struct {
	res  float64
	i    int
	iter int
}

func edgeKeyComparator(a, b interface{}) int {
	ka, kb := a.(edgeKey), b.(edgeKey)
	switch {
	case ka.res > kb.res:
		return -1
	case ka.res < kb.res:
		return 1
	case ka.i != kb.i:
		return ka.i - kb.i
	default:
		return ka.iter - kb.iter
	}
}

// treePicker keeps every edge in a red-black tree ordered by edgeKey, so
// the maximum residual is the leftmost node and an update is one removal
// plus one insertion.
type treePicker struct {
	tree *redblacktree.Tree
}

func (p *treePicker) pick() (int, int, bool) {
	node := p.tree.Left()
	if node == nil {
		return 0, 0, false
	}
	k := node.Key.(edgeKey)
	return k.i, k.iter, true
}

func (p *treePicker) update(i, iter int, old, next float64) {
	p.tree.Remove(edgeKey{res: old, i: i, iter: iter})
	p.tree.Put(edgeKey{res: next, i: i, iter: iter}, nil)
}

// scanPicker finds the maximum residual by walking every edge, replacing
// the running best only on a strictly larger residual so the first edge in
// (variable, slot) order wins ties — the same edge the tree returns.
type scanPicker struct {
	b *BP
}

func (p *scanPicker) pick() (int, int, bool) {
	bi, biter, best, found := 0, 0, 0.0, false
	for i := range p.b.edges {
		for e := range p.b.edges[i] {
			if r := p.b.edges[i][e].residual; !found || r > best {
				bi, biter, best, found = i, e, r, true
			}
		}
	}
	return bi, biter, found
}

func (p *scanPicker) update(int, int, float64, float64) {}

// newPicker builds the residual selector for a SEQMAX run from the
// residuals currently stored on the edges.
func (b *BP) newPicker() residualPicker {
	if b.linearScan {
		return &scanPicker{b: b}
	}
	t := redblacktree.NewWith(edgeKeyComparator)
	for i := range b.edges {
		for e := range b.edges[i] {
			t.Put(edgeKey{res: b.edges[i][e].residual, i: i, iter: e}, nil)
		}
	}
	return &treePicker{tree: t}
}
