package varset

import "errors"

// ErrNotSubset is returned when an IndexMap is requested for a variable set
// that is not contained in the outer set.
var ErrNotSubset = errors.New("varset: inner set is not contained in the outer set")

// IndexMap is a precomputed mixed-radix index translator. For an inner set
// V_in embedded in an outer set V_out it stores, for every linear index of
// the outer joint state space, the linear index of the restriction of that
// state to the inner set.
//
// Construction walks the outer space once with an odometer, so building
// costs O(States(outer)) and each lookup is a single slice read.
type IndexMap struct {
	table []int
}

// NewIndexMap builds the translator from inner into outer.
// Returns ErrNotSubset unless inner ⊆ outer.
func NewIndexMap(inner, outer VarSet) (IndexMap, error) {
	if !inner.SubsetOf(outer) {
		return IndexMap{}, ErrNotSubset
	}

	// Stride of each outer digit inside the inner encoding; zero for outer
	// variables that do not occur in the inner set.
	strides := make([]int, len(outer.vars))
	innerStride := 1
	j := 0
	for i, v := range outer.vars {
		if j < len(inner.vars) && inner.vars[j].label == v.label {
			strides[i] = innerStride
			innerStride *= v.states
			j++
		}
	}

	table := make([]int, outer.States())
	digits := make([]int, len(outer.vars))
	sum := 0
	for k := range table {
		table[k] = sum
		// advance the odometer
		for i, v := range outer.vars {
			digits[i]++
			sum += strides[i]
			if digits[i] < v.states {
				break
			}
			digits[i] = 0
			sum -= strides[i] * v.states
		}
	}
	return IndexMap{table: table}, nil
}

// At returns the inner linear index corresponding to outer index k.
func (m IndexMap) At(k int) int { return m.table[k] }

// Len returns the number of outer joint states covered by the map.
func (m IndexMap) Len() int { return len(m.table) }

// Table exposes the backing lookup table for tight loops.
// The returned slice must not be modified.
func (m IndexMap) Table() []int { return m.table }
