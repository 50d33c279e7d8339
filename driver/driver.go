// Package driver implements the three threshold-search drivers of
// spec.md §4.3-§4.5: EBST/ConstrainedEBST (BTSP/CBTSP), DT (Balanced
// TSP), and IB (Iterative Bottleneck). Each drives package oracle
// through a sequence of probes over a base instance's sorted cost list,
// accumulating Stats and governed by an optional wall-clock Budget.
//
// Grounded on the teacher's tsp/bb.go: branch-and-bound's node-count and
// time-budget bookkeeping is the closest analogue in the teacher corpus
// to a stateful search driver with counters.
package driver

import "time"

// Stats accumulates the counters spec.md §3 requires every driver run
// to track: binary-search steps and per-subsolver attempt bookkeeping.
type Stats struct {
	BinSearchSteps    int
	SubsolverAttempts int
	SubsolverElapsed  time.Duration
}

// Budget governs wall-clock time across an entire driver run (spec.md
// §9: confine global state like a deadline to a driver-local
// configuration record rather than a process global).
type Budget struct {
	Deadline time.Time // zero == unbounded
}

// NewBudget returns a Budget expiring after d (d <= 0 means unbounded).
func NewBudget(d time.Duration) Budget {
	if d <= 0 {
		return Budget{}
	}

	return Budget{Deadline: time.Now().Add(d)}
}

// Expired reports whether the budget's deadline has passed.
func (b Budget) Expired() bool {
	return !b.Deadline.IsZero() && time.Now().After(b.Deadline)
}
