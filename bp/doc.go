// Package bp implements loopy belief propagation over a discrete factor
// graph. Messages travel along variable-factor edges under one of four
// schedules (parallel, fixed sequential, random sequential, or
// residual-priority), optionally in log-space for numerical stability, until
// the per-variable beliefs stop moving by more than a tolerance or an
// iteration cap is hit.
//
// The engine consumes a read-only GraphView and a props.Set carrying the
// five mandatory properties: updates, tol, maxiter, verbose, logdomain.
// Beliefs (approximate marginals) and the Bethe approximation of the log
// partition function can be queried at any stable point.
//
// Non-convergence is not an error: Run returns the final maximum belief
// change, and a value above tol means the fixed point was not reached. A
// message that cannot be normalized aborts the run with an error.
package bp
