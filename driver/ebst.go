package driver

import (
	"math/rand"

	"github.com/arrowtsp/arrow/costmatrix"
	"github.com/arrowtsp/arrow/oracle"
	"github.com/arrowtsp/arrow/subsolver"
	"github.com/arrowtsp/arrow/telemetry"
	"github.com/arrowtsp/arrow/transform"
)

// EBSTConfig parameterises the EBST driver (spec.md §4.3).
type EBSTConfig struct {
	Base            *costmatrix.CostMatrix
	Oracle          *oracle.FeasibilityOracle
	Info            *costmatrix.ProblemInfo
	LowerBoundIdx   int // index into Info.CostList seeding the search
	UpperBoundIdx   int // seed upper bound index; < 0 snaps to the last index
	Mode            subsolver.Mode
	SubsolverConfig subsolver.Config
	Attempts        int
	RNG             *rand.Rand
	Budget          Budget
	// Telemetry is optional; when set, every binary-search step and
	// oracle probe this run makes is recorded against it.
	Telemetry *telemetry.Registry
	Name      string // metric label; defaults to "ebst"
}

// EBST runs the enhanced binary-search threshold driver for plain BTSP
// (spec.md §4.3), probing transform.BTSPBasic at successive delta values.
func EBST(cfg EBSTConfig) (oracle.FeasResult, Stats, error) {
	build := func(delta int) oracle.SolvePlan {
		return oracle.SolvePlan{Steps: []oracle.SolveStep{{
			Transform:        &transform.BTSPBasic{Delta: delta, CostMin: cfg.Info.MinCost()},
			Mode:             cfg.Mode,
			SubsolverConfig:  cfg.SubsolverConfig,
			Attempts:         attemptsOrDefault(cfg.Attempts),
			UpperBoundUpdate: true,
		}}}
	}

	return ebstCore(cfg.Base, cfg.Oracle, cfg.Info, cfg.LowerBoundIdx, cfg.UpperBoundIdx, build, cfg.RNG, cfg.Budget, cfg.Telemetry, nameOrDefault(cfg.Name, "ebst"))
}

// ConstrainedEBSTConfig parameterises CBTSP's EBST variant.
type ConstrainedEBSTConfig struct {
	EBSTConfig
	FeasibleLength int
}

// ConstrainedEBST runs EBST for CBTSP(L): identical binary search, but
// every probe's transform additionally enforces the length cap L
// (spec.md §4.3: "the only differences are (i) length cap L is passed
// into the transform, and (ii) feasibility includes length(τ) <= L").
func ConstrainedEBST(cfg ConstrainedEBSTConfig) (oracle.FeasResult, Stats, error) {
	build := func(delta int) oracle.SolvePlan {
		return oracle.SolvePlan{Steps: []oracle.SolveStep{{
			Transform:        &transform.BTSPConstrained{Delta: delta, FeasibleLength: cfg.FeasibleLength},
			Mode:             cfg.Mode,
			SubsolverConfig:  cfg.SubsolverConfig,
			Attempts:         attemptsOrDefault(cfg.Attempts),
			UpperBoundUpdate: false, // a BTSPConstrained derived tour only ever carries meaning under the length cap
		}}}
	}

	return ebstCore(cfg.Base, cfg.Oracle, cfg.Info, cfg.LowerBoundIdx, cfg.UpperBoundIdx, build, cfg.RNG, cfg.Budget, cfg.Telemetry, nameOrDefault(cfg.Name, "constrained_ebst"))
}

func attemptsOrDefault(n int) int {
	if n < 1 {
		return 1
	}

	return n
}

func nameOrDefault(name, fallback string) string {
	if name == "" {
		return fallback
	}

	return name
}

// ebstCore is the binary search shared by EBST and ConstrainedEBST
// (spec.md §4.3): seed at the lower bound, then binary search indices
// into cost_list, tightening `high` whenever a probe finds a tour
// (possibly at a strictly better objective than the probed value),
// advancing `low` otherwise; an upper-bound tour the oracle returns from
// an infeasible probe can still lower `high` to its own objective.
func ebstCore(
	base *costmatrix.CostMatrix,
	oc *oracle.FeasibilityOracle,
	pi *costmatrix.ProblemInfo,
	lowIdx, highIdxSeed int,
	build func(delta int) oracle.SolvePlan,
	rng *rand.Rand,
	budget Budget,
	reg *telemetry.Registry,
	name string,
) (oracle.FeasResult, Stats, error) {
	stats := Stats{}
	low := lowIdx
	high := highIdxSeed
	if high < 0 || high >= pi.Len() {
		high = pi.Len() - 1
	}

	var best oracle.FeasResult

	probe := func(idx int) (oracle.FeasResult, error) {
		res, err := oc.Feasible(base, build(pi.CostList[idx]), pi.CostList[idx], rng)
		stats.SubsolverAttempts++
		if reg != nil {
			reg.RecordOracleAttempt(name, err == nil && res.Found)
		}

		return res, err
	}

	// Initialisation: a single call at the seeded lower bound.
	res0, err := probe(low)
	if err != nil {
		return oracle.FeasResult{}, stats, err
	}
	if res0.Found {
		if res0.Obj <= pi.CostList[low] {
			res0.OptimalFlag = true

			return res0, stats, nil
		}
		best = res0
		if idx := pi.IndexOfFloor(res0.Obj); idx >= 0 && idx < high {
			high = idx
		}
	}

	for low < high {
		if budget.Expired() {
			break
		}
		mid := (low + high) / 2
		res, err := probe(mid)
		if err != nil {
			return oracle.FeasResult{}, stats, err
		}
		stats.BinSearchSteps++
		if reg != nil {
			reg.RecordStep(name)
		}

		if res.Found && res.Obj <= pi.CostList[mid] {
			best = res
			if idx := pi.IndexOfFloor(res.Obj); idx >= 0 && idx < mid {
				high = idx
			} else {
				high = mid
			}
		} else {
			low = mid + 1
			// A Found result above the probed threshold is an upper-bound
			// tour kept by the oracle, not a feasible one: it only lowers high.
			if res.Found && (!best.Found || res.Obj < best.Obj) {
				best = res
				if idx := pi.IndexOfFloor(res.Obj); idx >= low && idx < high {
					high = idx
				}
			}
		}
	}

	if best.Found && best.Obj == pi.CostList[lowIdx] {
		best.OptimalFlag = true
	}

	return best, stats, nil
}
