// Package mf implements naive mean-field inference over a discrete factor
// graph: a fully factorized belief per variable, updated one random site at
// a time until the largest single-site change drops below a tolerance.
//
// Mean field shares the bp package's configuration surface (properties tol,
// maxiter, verbose) and factor-graph view, and exposes the same belief and
// log-partition queries, though only single-variable beliefs exist. Its
// LogZ lower-bounds the true log partition function.
package mf
