package driver

import (
	"math"
	"math/rand"

	"github.com/arrowtsp/arrow/costmatrix"
	"github.com/arrowtsp/arrow/lowerbound"
	"github.com/arrowtsp/arrow/oracle"
	"github.com/arrowtsp/arrow/subsolver"
	"github.com/arrowtsp/arrow/telemetry"
	"github.com/arrowtsp/arrow/transform"
)

// DTConfig parameterises the DT driver for Balanced TSP (spec.md §4.4).
type DTConfig struct {
	Base            *costmatrix.CostMatrix
	Oracle          *oracle.FeasibilityOracle
	Info            *costmatrix.ProblemInfo
	LowIdx          int
	HighIdx         int
	MaxIdx          int // low never advances past this index
	LowerBound      int // the BalTSP lower bound (cost_list[high]-cost_list[low] invariant)
	MSTSPMinCost    int // Theorem-1 termination constant (spec.md §10's MSTSP supplement)
	Asymmetric      bool
	Mode            subsolver.Mode
	SubsolverConfig subsolver.Config
	Attempts        int
	RNG             *rand.Rand
	Budget          Budget
	Telemetry       *telemetry.Registry
	Name            string // metric label; defaults to "dt"
}

// DT runs the double-threshold driver for Balanced TSP (spec.md §4.4):
// at each iteration, first runs the LB feasibility cascade (BBSSP
// biconnectivity, BAP assignment-exists, and — for inputs routed through
// AsymReduction — BSCSSP strong-connectivity) over the current band; a
// cascade failure proves no tour exists in that band without paying for
// an oracle call. Otherwise it probes BalTSP-Basic over the band,
// tightening the band on success and widening it (via the Theorem-2
// improvement) on failure, with the Theorem-1 improvement as an early
// termination test.
func DT(cfg DTConfig) (oracle.FeasResult, Stats, error) {
	pi := cfg.Info
	low, high := cfg.LowIdx, cfg.HighIdx
	maxIdx := cfg.MaxIdx
	if maxIdx <= 0 || maxIdx >= pi.Len() {
		maxIdx = pi.Len() - 1
	}

	var best oracle.FeasResult
	bestLow, bestHigh := -1, -1
	stats := Stats{}
	name := nameOrDefault(cfg.Name, "dt")

	bestGap := func() int {
		if bestLow < 0 {
			return math.MaxInt32
		}

		return pi.CostList[bestHigh] - pi.CostList[bestLow]
	}

	for low <= maxIdx && low <= high {
		if cfg.Budget.Expired() {
			break
		}
		lo, hi := pi.CostList[low], pi.CostList[high]

		cascadeOK := lowerbound.IsBiconnectedBand(cfg.Base, lo, hi) && lowerbound.PerfectMatchingInBand(cfg.Base, lo, hi)
		if cascadeOK && cfg.Asymmetric {
			cascadeOK = lowerbound.IsStronglyConnectedBand(cfg.Base, lo, hi)
		}

		found := false
		if cascadeOK {
			plan := oracle.SolvePlan{Steps: []oracle.SolveStep{{
				Transform:       &transform.BalTSPBasic{Lo: lo, Hi: hi},
				Mode:            cfg.Mode,
				SubsolverConfig: cfg.SubsolverConfig,
				Attempts:        attemptsOrDefault(cfg.Attempts),
			}}}
			res, err := cfg.Oracle.Feasible(cfg.Base, plan, hi-lo, cfg.RNG)
			if err != nil {
				return oracle.FeasResult{}, stats, err
			}
			stats.SubsolverAttempts++
			if cfg.Telemetry != nil {
				cfg.Telemetry.RecordOracleAttempt(name, res.Found)
			}

			if res.Found {
				found = true
				actualMin := cfg.Base.TourMinCost(res.Tour)
				actualMax := cfg.Base.TourMaxCost(res.Tour)
				if bestLow < 0 || (actualMax-actualMin) < bestGap() {
					best = res
					if mi, err := pi.IndexOf(actualMin); err == nil {
						bestLow = mi
					}
					if ma, err := pi.IndexOf(actualMax); err == nil {
						bestHigh = ma
					}
					if cfg.Telemetry != nil {
						cfg.Telemetry.SetBestGap(name, actualMax-actualMin)
					}
				}
				if mi, err := pi.IndexOf(actualMin); err == nil {
					low = mi + 1
				} else {
					low++
				}
				for high < pi.Len()-1 && pi.CostList[high]-pi.CostList[low] < cfg.LowerBound {
					high++
				}
			}
		}

		if !found {
			high++
			if high >= pi.Len() {
				break
			}
			stats.BinSearchSteps++
			if cfg.Telemetry != nil {
				cfg.Telemetry.RecordStep(name)
			}
			for low < high && pi.CostList[high]-pi.CostList[low] > bestGap() {
				low++
			}
		}

		if bestLow >= 0 && high < pi.Len() && (pi.CostList[bestHigh]-pi.CostList[bestLow])+cfg.MSTSPMinCost <= pi.CostList[high] {
			break
		}
	}

	return best, stats, nil
}
