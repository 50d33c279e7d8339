// Package arrowerrors: sentinel error set (unified, consistent) for the
// bottleneck-TSP solver suite.
//
// This file defines ONLY package-level sentinel errors shared across
// costmatrix, transform, subsolver, lowerbound, oracle, driver, and asym.
// All algorithms MUST return these sentinels (or wrap them with %w) and
// tests MUST check them via errors.Is. No algorithm panics on a
// user-triggered error condition; panics stay confined to programmer
// errors in unexported helpers, if any.
//
// Every message is prefixed with "arrow: ..." for consistency and easy
// grepping across logs. Do not %w-wrap these sentinels when returning
// them directly; wrap with fmt.Errorf("context: %w", ErrX) only at an
// outer boundary — callers still match with errors.Is.
package arrowerrors

import "errors"

// Kind classifies an error into the taxonomy of spec.md §7. It exists so
// CLI entry points can decide an exit code without inspecting message
// text.
type Kind int

const (
	// KindNone indicates a nil error was classified (KindNone never
	// appears attached to a real error value).
	KindNone Kind = iota

	// KindInputFormat: unparseable or unsupported TSPLIB input. Fatal.
	KindInputFormat

	// KindInfeasible: a lower-bound routine proved no feasible tour
	// exists in a band, or the oracle exhausted its plan without a tour.
	// Non-fatal; folded by the oracle into a FeasResult with Found == false.
	KindInfeasible

	// KindSubsolverFailure: the length subsolver returned no tour, or a
	// non-Hamiltonian cycle. Fatal for the current driver run.
	KindSubsolverFailure

	// KindInvariantViolation: a verified tour failed the base-matrix
	// check (edge out of band, negative edge, length mismatch). Fatal;
	// indicates a bug in a transform or feasible predicate.
	KindInvariantViolation

	// KindOutOfMemory: allocation of an O(n^2) structure failed. Fatal.
	KindOutOfMemory
)

// String renders a Kind for log lines and CLI diagnostics.
func (k Kind) String() string {
	switch k {
	case KindInputFormat:
		return "input_format"
	case KindInfeasible:
		return "infeasible"
	case KindSubsolverFailure:
		return "subsolver_failure"
	case KindInvariantViolation:
		return "invariant_violation"
	case KindOutOfMemory:
		return "out_of_memory"
	default:
		return "none"
	}
}

// Input-format sentinels (fatal, KindInputFormat).
var (
	// ErrUnsupportedEdgeWeightType indicates an EDGE_WEIGHT_TYPE outside
	// the set supported by tsplib (EUC_2D, CEIL_2D, GEO, ATT, EXPLICIT).
	ErrUnsupportedEdgeWeightType = errors.New("arrow: unsupported EDGE_WEIGHT_TYPE")

	// ErrMalformedTSPLIB indicates a structurally broken TSPLIB file
	// (missing DIMENSION, truncated matrix, bad tour section, ...).
	ErrMalformedTSPLIB = errors.New("arrow: malformed TSPLIB input")

	// ErrNonSquare indicates a cost matrix is not square.
	ErrNonSquare = errors.New("arrow: cost matrix is not square")

	// ErrTooSmall indicates n < 2, too small for a Hamiltonian cycle.
	ErrTooSmall = errors.New("arrow: instance too small (n < 2)")
)

// Feasibility / search sentinels (non-fatal unless noted).
var (
	// ErrNoTour indicates the oracle's plan produced no verified tour in
	// the requested band; the caller (driver) is expected to advance its
	// search, not abort.
	ErrNoTour = errors.New("arrow: no feasible tour found in band")

	// ErrLowerBoundExceedsUpperBound indicates a driver was seeded with
	// an inconsistent [lower_bound, upper_bound] pair.
	ErrLowerBoundExceedsUpperBound = errors.New("arrow: lower bound exceeds upper bound")

	// ErrEmptyCostList indicates ProblemInfo has no distinct finite costs
	// (e.g., an instance with only fixed edges), so no threshold search
	// is possible.
	ErrEmptyCostList = errors.New("arrow: cost list is empty")

	// ErrCostNotIndexed indicates IndexOf was called with a value absent
	// from ProblemInfo.CostList; this is always a caller bug.
	ErrCostNotIndexed = errors.New("arrow: cost not present in problem index")
)

// Subsolver sentinels (fatal, KindSubsolverFailure).
var (
	// ErrSubsolverNoTour indicates the subsolver returned a nil/empty tour.
	ErrSubsolverNoTour = errors.New("arrow: subsolver returned no tour")

	// ErrSubsolverNotHamiltonian indicates the returned permutation is not
	// a valid Hamiltonian cycle (duplicate or missing vertex).
	ErrSubsolverNotHamiltonian = errors.New("arrow: subsolver tour is not Hamiltonian")

	// ErrSubsolverTimeBudget indicates the subsolver's wall-clock budget
	// expired before any tour was produced.
	ErrSubsolverTimeBudget = errors.New("arrow: subsolver exceeded time budget with no tour")
)

// Invariant sentinels (fatal, KindInvariantViolation).
var (
	// ErrEdgeOutOfBand indicates a verified tour uses an edge whose base
	// cost lies outside the band the transform claimed feasibility for.
	ErrEdgeOutOfBand = errors.New("arrow: tour edge outside feasibility band")

	// ErrFixedEdgeMissing indicates a verified tour on a reduced
	// (asymmetric→symmetric) instance omits a mandatory fixed edge.
	ErrFixedEdgeMissing = errors.New("arrow: tour omits a mandatory fixed edge")

	// ErrLengthMismatch indicates a tour's reported length does not equal
	// its length recomputed from the base cost matrix.
	ErrLengthMismatch = errors.New("arrow: reported length does not match recomputed length")

	// ErrLengthCapExceeded indicates a CBTSP tour's length exceeds the
	// caller-supplied cap L.
	ErrLengthCapExceeded = errors.New("arrow: tour length exceeds constraint cap")
)

// Resource sentinels (fatal, KindOutOfMemory).
var (
	// ErrAllocationFailed indicates an O(n^2) allocation (residual graph,
	// distance matrix, ...) could not be satisfied.
	ErrAllocationFailed = errors.New("arrow: allocation of O(n^2) working set failed")
)

// Kindof classifies err into the taxonomy above. A nil error classifies as
// KindNone. Unrecognized errors (those not wrapping one of this package's
// sentinels) classify as KindNone so callers can tell "not our error" from
// "one of our sentinels with kind X" — CLI code should still exit nonzero
// on any non-nil error regardless of Kind.
func Kindof(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnsupportedEdgeWeightType),
		errors.Is(err, ErrMalformedTSPLIB),
		errors.Is(err, ErrNonSquare),
		errors.Is(err, ErrTooSmall):
		return KindInputFormat
	case errors.Is(err, ErrNoTour),
		errors.Is(err, ErrLowerBoundExceedsUpperBound),
		errors.Is(err, ErrEmptyCostList),
		errors.Is(err, ErrCostNotIndexed):
		return KindInfeasible
	case errors.Is(err, ErrSubsolverNoTour),
		errors.Is(err, ErrSubsolverNotHamiltonian),
		errors.Is(err, ErrSubsolverTimeBudget):
		return KindSubsolverFailure
	case errors.Is(err, ErrEdgeOutOfBand),
		errors.Is(err, ErrFixedEdgeMissing),
		errors.Is(err, ErrLengthMismatch),
		errors.Is(err, ErrLengthCapExceeded):
		return KindInvariantViolation
	case errors.Is(err, ErrAllocationFailed):
		return KindOutOfMemory
	default:
		return KindNone
	}
}
