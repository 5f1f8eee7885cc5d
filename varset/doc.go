// Package varset provides the discrete-variable primitives used throughout
// inferno: Var (an immutable label + state-cardinality pair), VarSet (a
// label-ordered set of variables with set algebra and joint-state counting),
// and IndexMap (a precomputed mixed-radix index translator between a VarSet
// and a superset).
//
// The linear encoding of a joint state is contractual: the least-significant
// digit belongs to the lowest-labeled variable. Every table lookup, slice and
// marginalization in the factor and bp packages depends on this ordering.
package varset
