// Package oracle implements the FeasibilityOracle of spec.md §4.2: given
// a base cost matrix and an ordered SolvePlan, it drives one or more
// CostTransform attempts through a TSPSubsolver and reports whether a
// feasible tour exists at the caller's threshold/band, always re-
// measuring the winning tour against the base matrix before returning
// it (spec.md §3's invariant: "if a tour is reported, it has been
// re-verified against C").
//
// Grounded on the teacher's tsp/solve.go staged dispatch-and-validate
// shape; error taxonomy follows tsp/types.go's sentinel-var-block
// convention via package arrowerrors.
package oracle

import (
	"fmt"
	"math/rand"

	"github.com/arrowtsp/arrow/costmatrix"
	"github.com/arrowtsp/arrow/subsolver"
	"github.com/arrowtsp/arrow/transform"
)

// SolveStep is one stage of a SolvePlan (spec.md §3): a transform to
// apply, the subsolver configuration to run against the derived matrix,
// how many reseeded attempts to spend on it, and whether a non-feasible
// attempt may still improve the caller's running upper bound.
type SolveStep struct {
	Transform        transform.Transform
	Mode             subsolver.Mode
	SubsolverConfig  subsolver.Config
	Attempts         int
	UpperBoundUpdate bool
}

// SolvePlan is an ordered, immutable-during-a-run list of SolveSteps
// (spec.md §3).
type SolvePlan struct {
	Steps []SolveStep
}

// FeasResult is either NoTour, or a verified Tour (spec.md §3).
type FeasResult struct {
	Found       bool
	Tour        []int
	Obj         int // min(probed threshold, base max edge) when feasible; the base max edge for an upper-bound-only tour
	Length      int // base.TourLength(Tour); meaningful only if Found
	OptimalFlag bool
}

// FeasibilityOracle drives SolvePlans through a TSPSubsolver.
type FeasibilityOracle struct {
	Subsolver subsolver.TSPSubsolver
}

// New returns a FeasibilityOracle using subsolver.Default.
func New() *FeasibilityOracle {
	return &FeasibilityOracle{Subsolver: subsolver.Default{}}
}

// Feasible runs plan against base at the given objHint (the threshold or
// band value the caller wants the result tagged with), per spec.md §4.2:
//
//  1. Mark NoTour.
//  2. For each step in order, for each of its attempts: reseed the
//     transform, build the derived matrix, solve it, check feasibility.
//     On a feasible attempt, return immediately with the tour
//     re-measured against base. Otherwise, if the step opts into
//     upper_bound_update, keep the best base-measured tour seen so far.
//  3. Return the best-seen result (possibly NoTour).
//
// A subsolver or post-solve validation failure is fatal for this call
// (spec.md §5/§7: "no retries on subsolver failure — failure
// propagates") and is returned immediately, not folded into NoTour: the
// caller needs to tell "no tour exists in this band" apart from "the
// subsolver could not even run here".
//
// rng is threaded explicitly into every Reseed call (spec.md §5: never a
// package-global RNG).
func (o *FeasibilityOracle) Feasible(base *costmatrix.CostMatrix, plan SolvePlan, objHint int, rng *rand.Rand) (FeasResult, error) {
	best := FeasResult{Found: false, Obj: objHint}

	for _, step := range plan.Steps {
		attempts := step.Attempts
		if attempts < 1 {
			attempts = 1
		}
		for a := 0; a < attempts; a++ {
			if step.Transform != nil {
				step.Transform.Reseed(randAdapter{rng})
			}
			view := step.Transform.Apply(base)

			tour, length, err := o.Subsolver.Solve(view, step.Mode, step.SubsolverConfig, nil)
			if err != nil {
				return FeasResult{}, fmt.Errorf("oracle.Feasible: subsolver: %w", err)
			}
			if err := costmatrix.ValidateTour(tour, base.Size()); err != nil {
				return FeasResult{}, fmt.Errorf("oracle.Feasible: %w", err)
			}

			if step.Transform.Feasible(base, tour, length) {
				measured := base.TourMaxCost(tour)
				obj := objHint
				if measured < obj {
					obj = measured
				}

				return FeasResult{
					Found:  true,
					Tour:   tour,
					Obj:    obj,
					Length: base.TourLength(tour),
				}, nil
			}

			if step.UpperBoundUpdate {
				measured := base.TourMaxCost(tour)
				if !best.Found || measured < base.TourMaxCost(best.Tour) {
					best = FeasResult{
						Found:  true,
						Tour:   tour,
						Obj:    measured,
						Length: base.TourLength(tour),
					}
				}
			}
		}
	}

	return best, nil
}

// randAdapter satisfies transform.RNG by delegating to a *rand.Rand.
type randAdapter struct{ r *rand.Rand }

func (a randAdapter) Intn(n int) int { return a.r.Intn(n) }
