package varset

import (
	"sort"
	"strings"
)

// VarSet is an ordered set of variables, sorted ascending by label and free
// of duplicates. The zero value is the empty set and is ready to use.
//
// All set operations are total and return fresh sets; a VarSet is never
// mutated after construction, so sets may be shared freely.
type VarSet struct {
	vars []Var
}

// New builds a VarSet from the given variables, sorting by label and
// dropping duplicate labels (the first occurrence wins).
func New(vars ...Var) VarSet {
	vs := make([]Var, len(vars))
	copy(vs, vars)
	sort.SliceStable(vs, func(i, j int) bool { return vs[i].Less(vs[j]) })
	out := vs[:0]
	for _, v := range vs {
		if len(out) == 0 || out[len(out)-1].label != v.label {
			out = append(out, v)
		}
	}
	return VarSet{vars: out}
}

// Size returns the number of variables in the set.
func (s VarSet) Size() int { return len(s.vars) }

// Empty reports whether the set has no variables.
func (s VarSet) Empty() bool { return len(s.vars) == 0 }

// Vars returns the variables in label order. The returned slice is a copy.
func (s VarSet) Vars() []Var {
	out := make([]Var, len(s.vars))
	copy(out, s.vars)
	return out
}

// At returns the i'th variable in label order.
func (s VarSet) At(i int) Var { return s.vars[i] }

// Contains reports whether v is a member of the set.
func (s VarSet) Contains(v Var) bool {
	i := sort.Search(len(s.vars), func(i int) bool { return s.vars[i].label >= v.label })
	return i < len(s.vars) && s.vars[i].label == v.label
}

// ContainsAll reports whether s is a superset of o.
func (s VarSet) ContainsAll(o VarSet) bool { return o.SubsetOf(s) }

// SubsetOf reports whether every variable of s is also in o.
func (s VarSet) SubsetOf(o VarSet) bool {
	i, j := 0, 0
	for i < len(s.vars) && j < len(o.vars) {
		switch {
		case s.vars[i].label == o.vars[j].label:
			i++
			j++
		case s.vars[i].label > o.vars[j].label:
			j++
		default:
			return false
		}
	}
	return i == len(s.vars)
}

// Equal reports whether both sets contain exactly the same labels.
func (s VarSet) Equal(o VarSet) bool {
	if len(s.vars) != len(o.vars) {
		return false
	}
	for i := range s.vars {
		if s.vars[i].label != o.vars[i].label {
			return false
		}
	}
	return true
}

// Union returns the set of variables present in s or o.
func (s VarSet) Union(o VarSet) VarSet {
	out := make([]Var, 0, len(s.vars)+len(o.vars))
	i, j := 0, 0
	for i < len(s.vars) && j < len(o.vars) {
		switch {
		case s.vars[i].label < o.vars[j].label:
			out = append(out, s.vars[i])
			i++
		case s.vars[i].label > o.vars[j].label:
			out = append(out, o.vars[j])
			j++
		default:
			out = append(out, s.vars[i])
			i++
			j++
		}
	}
	out = append(out, s.vars[i:]...)
	out = append(out, o.vars[j:]...)
	return VarSet{vars: out}
}

// Intersect returns the set of variables present in both s and o.
func (s VarSet) Intersect(o VarSet) VarSet {
	var out []Var
	i, j := 0, 0
	for i < len(s.vars) && j < len(o.vars) {
		switch {
		case s.vars[i].label < o.vars[j].label:
			i++
		case s.vars[i].label > o.vars[j].label:
			j++
		default:
			out = append(out, s.vars[i])
			i++
			j++
		}
	}
	return VarSet{vars: out}
}

// Minus returns the set of variables present in s but not in o.
func (s VarSet) Minus(o VarSet) VarSet {
	var out []Var
	i, j := 0, 0
	for i < len(s.vars) {
		switch {
		case j >= len(o.vars) || s.vars[i].label < o.vars[j].label:
			out = append(out, s.vars[i])
			i++
		case s.vars[i].label > o.vars[j].label:
			j++
		default:
			i++
			j++
		}
	}
	return VarSet{vars: out}
}

// States returns the number of joint states of the set: the product of the
// member cardinalities, 1 for the empty set.
func (s VarSet) States() int {
	n := 1
	for _, v := range s.vars {
		n *= v.states
	}
	return n
}

// CalcState encodes a joint assignment into its linear index. Variables
// missing from the assignment contribute state 0; keys outside the set are
// ignored. The lowest-labeled variable is the least-significant digit.
func (s VarSet) CalcState(assignment map[Var]int) int {
	state, stride := 0, 1
	for _, v := range s.vars {
		state += assignment[v] * stride
		stride *= v.states
	}
	return state
}

// CalcStates decodes a linear index into the joint assignment it encodes.
// It is the inverse of CalcState for indices below States().
func (s VarSet) CalcStates(state int) map[Var]int {
	out := make(map[Var]int, len(s.vars))
	for _, v := range s.vars {
		out[v] = state % v.states
		state /= v.states
	}
	return out
}

// String renders the set as "{x0, x3, ...}" in label order.
func (s VarSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range s.vars {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
