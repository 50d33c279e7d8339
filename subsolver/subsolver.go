// Package subsolver defines the TSPSubsolver black-box interface of
// spec.md §6.1 and ships two concrete implementations: a deterministic
// nearest-neighbour + 2-opt + double-bridge-kick heuristic
// (internal/heuristic, standing in for "Lin-Kernighan 4-opt" per §1's
// external-collaborator note — the core must not depend on a particular
// solver's internals, only on this interface) and a Held-Karp bitmask DP
// exact solver (internal/heldkarp) for small instances.
//
// Every CostTransform in package transform produces a *transform.View,
// which already satisfies CostAccessor, so oracle step execution never
// materializes a derived matrix: each subsolver reads the View through
// Cost into its own working buffer.
package subsolver

import (
	"time"

	"github.com/arrowtsp/arrow/subsolver/internal/heldkarp"
	"github.com/arrowtsp/arrow/subsolver/internal/heuristic"
)

// CostAccessor is the minimal read surface a subsolver needs: Size and
// Cost. Both *costmatrix.CostMatrix and *transform.View satisfy it
// structurally.
type CostAccessor interface {
	Size() int
	Cost(i, j int) int
}

// Mode selects which family of algorithm answers a Solve call (spec.md
// §6.1: "mode ∈ {LinKernighan, Exact}").
type Mode int

const (
	// LinKernighan routes to the heuristic local-search adapter.
	LinKernighan Mode = iota

	// Exact routes to the Held-Karp bitmask DP (bounded to small n).
	Exact
)

// KickType selects the heuristic's diversification move between restarts
// (spec.md §6.1: "kick_type").
type KickType int

const (
	// DoubleBridge is the classic 4-opt non-sequential kick.
	DoubleBridge KickType = iota

	// SegmentReversal reverses a random segment as a cheaper, weaker kick.
	SegmentReversal
)

// Config mirrors spec.md §6.1's params.lk record.
type Config struct {
	RandomRestarts int
	StallCount     int
	Kicks          int
	KickType       KickType
	TimeBound      time.Duration
	LengthBound    int // 0 == unbounded
	Seed           int64
}

// TSPSubsolver is the black-box interface every driver/oracle call goes
// through: run(cost, lk_params|exact, initial) -> (tour, length).
type TSPSubsolver interface {
	// Solve returns a Hamiltonian cycle over cost and its total length.
	// initial may be nil, in which case the subsolver builds its own
	// seed tour.
	Solve(cost CostAccessor, mode Mode, cfg Config, initial []int) (tour []int, length int, err error)
}

// Default is the TSPSubsolver every driver uses unless a caller supplies
// its own (e.g. a test double). It dispatches LinKernighan-mode calls to
// the heuristic adapter and Exact-mode calls to Held-Karp.
type Default struct{}

// Solve implements TSPSubsolver.
func (Default) Solve(cost CostAccessor, mode Mode, cfg Config, initial []int) ([]int, int, error) {
	switch mode {
	case Exact:
		return heldkarp.Solve(cost, heldkarp.Config{TimeBound: cfg.TimeBound})
	default:
		return heuristic.Solve(cost, heuristic.Config{
			RandomRestarts: cfg.RandomRestarts,
			StallCount:     cfg.StallCount,
			Kicks:          cfg.Kicks,
			KickType:       heuristic.KickType(cfg.KickType),
			TimeBound:      cfg.TimeBound,
			Seed:           cfg.Seed,
		}, initial)
	}
}
