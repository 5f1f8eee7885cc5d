// Package inferno is an in-memory toolkit for approximate inference on
// discrete factor graphs — from the factor algebra up to loopy belief
// propagation and naive mean field.
//
// 🚀 What is inferno?
//
//	A single-threaded, deterministic inference library that brings together:
//		• Core primitives: variables, label-ordered variable sets, dense factor tables
//		• Factor algebra: product, quotient, marginal, slice, embed, normalize
//		• Index machinery: precomputed mixed-radix translators for tight kernels
//		• Loopy BP: parallel, sequential, random and residual-priority schedules
//		• Log-domain messages for numerically hostile models
//		• Mean field: fully factorized variational inference with a logZ lower bound
//
// ✨ Why choose inferno?
//
//   - Explicit failure modes – every precondition is a sentinel error, never a panic
//   - Deterministic by default – seeded shuffles, stable tie-breaks, stable orders
//   - Inspectable – beliefs, the final convergence delta and the Bethe free energy are plain values
//
// Under the hood, everything is organized per concern:
//
//	varset/      — Var, VarSet, mixed-radix state encoding, IndexMap
//	prob/        — dense vectors: arithmetic, norms, entropies, distances
//	factor/      — the factor algebra plus interaction strength and mutual information
//	factorgraph/ — the immutable bipartite container with neighbor cross-references
//	props/       — string-keyed engine configuration, YAML-loadable
//	diffs/       — bounded convergence histories
//	bp/          — the belief propagation engine
//	mf/          — the naive mean-field engine
//
// Quick ASCII example:
//
//	    x0 ──■── x1 ──■── x2
//
//	a chain of three variables joined by two pairwise factors; BP beliefs on
//	it are exact marginals.
//
// Dive into the bp package documentation for the configuration surface and
// convergence semantics.
package inferno
