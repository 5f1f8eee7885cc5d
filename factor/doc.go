// Package factor implements nonnegative functions over products of finite
// state spaces: a Factor pairs a varset.VarSet with a prob.Vector whose
// length equals the set's joint-state count, indexed by the contractual
// mixed-radix linear encoding (lowest label = least-significant digit).
//
// The algebra covers scalar and equal-shape elementwise arithmetic, the
// generalized product and quotient over differing variable sets,
// marginalization, slicing, embedding, normalization, and the Mooij-Kappen
// interaction strength. Operations that can violate a shape or subset
// precondition return sentinel errors instead of panicking.
package factor
