package bp

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/veldtkamp/inferno/factor"
	"github.com/veldtkamp/inferno/factorgraph"
	"github.com/veldtkamp/inferno/prob"
	"github.com/veldtkamp/inferno/varset"
)

// Sentinel errors for engine construction and queries.
var (
	// ErrUnknownUpdates indicates an updates property outside
	// PARALL/SEQFIX/SEQRND/SEQMAX.
	ErrUnknownUpdates = errors.New("bp: unknown update schedule")

	// ErrBadTolerance indicates a tol property that is not strictly positive.
	ErrBadTolerance = errors.New("bp: tolerance must be > 0")

	// ErrVarNotFound indicates a belief query for a variable the graph does
	// not contain.
	ErrVarNotFound = errors.New("bp: variable not in graph")

	// ErrNoContainingFactor indicates a joint belief query over a variable
	// set no single factor covers.
	ErrNoContainingFactor = errors.New("bp: no factor contains the queried variables")
)

// GraphView is the read-only factor-graph surface the engine consumes.
// *factorgraph.Graph satisfies it; any container with the same accessors
// and neighbor cross-reference contract will do.
type GraphView interface {
	NVars() int
	NFactors() int
	NEdges() int
	Var(i int) varset.Var
	Factor(i int) factor.Factor
	NbV(i int) []factorgraph.Neighbor
	NbF(i int) []factorgraph.Neighbor
	FindVar(v varset.Var) (int, bool)
}

// UpdateType selects the message-passing schedule.
type UpdateType int

const (
	// UpdatesParallel computes every message from the previous sweep's
	// values and commits them all at the sweep boundary.
	UpdatesParallel UpdateType = iota

	// UpdatesSeqFix walks the edge list in a fixed order, committing each
	// message immediately.
	UpdatesSeqFix

	// UpdatesSeqRnd walks the edge list in a fresh uniform-random order
	// every sweep, committing each message immediately.
	UpdatesSeqRnd

	// UpdatesSeqMax is residual belief propagation: each step commits the
	// staged message with the largest residual, then refreshes the
	// residuals it invalidated.
	UpdatesSeqMax
)

var updateNames = map[UpdateType]string{
	UpdatesParallel: "PARALL",
	UpdatesSeqFix:   "SEQFIX",
	UpdatesSeqRnd:   "SEQRND",
	UpdatesSeqMax:   "SEQMAX",
}

// ParseUpdateType maps the wire names PARALL, SEQFIX, SEQRND and SEQMAX
// onto their UpdateType. Returns ErrUnknownUpdates otherwise.
func ParseUpdateType(s string) (UpdateType, error) {
	for u, name := range updateNames {
		if name == s {
			return u, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUpdates, s)
}

// String returns the schedule's wire name.
func (u UpdateType) String() string {
	if name, ok := updateNames[u]; ok {
		return name
	}
	return fmt.Sprintf("UpdateType(%d)", int(u))
}

// Option tweaks engine behavior beyond the mandatory property surface.
type Option func(*BP)

// WithRand sets the random source used by the SEQRND schedule. The default
// source is deterministically seeded, so repeated runs shuffle identically;
// pass a differently seeded source for independent runs.
func WithRand(r *rand.Rand) Option {
	return func(b *BP) {
		if r != nil {
			b.rng = r
		}
	}
}

// WithNormType sets the norm applied to freshly computed messages.
// The default is prob.NormProb.
func WithNormType(kind prob.NormType) Option {
	return func(b *BP) { b.normType = kind }
}

// WithMaxResidualScan makes the SEQMAX schedule find the maximum residual
// by a linear scan over all edges instead of the ordered-tree queue. Both
// selectors pick identical edges, ties broken toward the lowest variable
// and then the lowest neighbor slot; the scan exists as a debugging
// cross-check and for very small graphs.
func WithMaxResidualScan() Option {
	return func(b *BP) { b.linearScan = true }
}
