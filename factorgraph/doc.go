// Package factorgraph provides the bipartite variable-factor container the
// inference engines run against: variable and factor enumeration in a stable
// order, neighbor lists with integer cross-references, and label lookup.
//
// A Graph is immutable after construction and safe to share between engine
// instances; the neighbor slices returned by NbV and NbF are the internal
// arenas and must be treated as read-only.
package factorgraph
