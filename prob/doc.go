// Package prob implements the dense real-valued vectors that back factor
// tables and belief-propagation messages: elementwise arithmetic, pointwise
// transforms (log/exp/abs/inverse/power), reductions, normalization under the
// probability and L∞ norms, and the distance measures used for convergence
// checks (L1, L∞, total variation, Kullback-Leibler, Hellinger).
//
// Values are not constrained to be nonnegative at rest — intermediate
// arithmetic may legitimately produce negatives or infinities — and
// normalization under NormProb divides by the total sum, reporting
// ErrNonNormalizable when that sum is zero.
package prob
