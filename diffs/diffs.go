// Package diffs tracks a bounded history of convergence deltas. An engine
// pushes one belief change per variable per sweep; Max over the window then
// answers "did anything move more than tol during the last sweep?".
package diffs

// Diffs is a fixed-capacity ring of recent deltas. Until the first push,
// Max reports the seed value, so a fresh engine never looks converged.
type Diffs struct {
	ring []float64
	cap  int
	pos  int
	seed float64
}

// New returns a history holding at most size entries, reporting seed as the
// maximum while empty. A size below 1 is treated as 1.
func New(size int, seed float64) *Diffs {
	if size < 1 {
		size = 1
	}
	return &Diffs{ring: make([]float64, 0, size), cap: size, seed: seed}
}

// Push records a delta, evicting the oldest entry once the window is full.
func (d *Diffs) Push(x float64) {
	if len(d.ring) < d.cap {
		d.ring = append(d.ring, x)
		return
	}
	d.ring[d.pos] = x
	d.pos++
	if d.pos == d.cap {
		d.pos = 0
	}
}

// Max returns the largest delta in the window, or the seed while empty.
func (d *Diffs) Max() float64 {
	if len(d.ring) == 0 {
		return d.seed
	}
	m := d.ring[0]
	for _, x := range d.ring[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// Size returns the number of recorded deltas, at most the window capacity.
func (d *Diffs) Size() int { return len(d.ring) }
