// Package lowerbound implements the seven-routine lower-bound battery of
// spec.md §4.6: 2MB, BBSSP, BSCSSP, BAP, CBAP, DCBPB, CBST. Every routine
// reads a dense *costmatrix.CostMatrix directly (as the teacher's flow
// and prim_kruskal packages read a dense/adjacency-backed *core.Graph
// directly) rather than an abstract accessor, since every lower bound
// needs O(1) random access to the full n*n cost surface.
//
// By convention (spec.md §4.6, last paragraph) a routine that cannot
// certify a value reports Obj = maxCost+1 rather than an error, so a
// driver can keep advancing its search; errors are reserved for
// malformed input (ErrTooSmall, or an error from building the
// ProblemInfo cost index).
package lowerbound

import (
	"errors"
	"time"

	"github.com/arrowtsp/arrow/costmatrix"
)

// ErrTooSmall signals a matrix with fewer than 2 vertices (fewer than 3
// for DCBPB).
var ErrTooSmall = errors.New("lowerbound: instance too small (n < 2)")

// Result is the uniform return shape of every battery routine.
type Result struct {
	Obj     int
	Elapsed time.Duration
}

// timed runs fn and wraps its int result with elapsed wall time, matching
// the "{obj, elapsed}" return contract of spec.md §4.6.
func timed(fn func() int) Result {
	start := time.Now()
	obj := fn()

	return Result{Obj: obj, Elapsed: time.Since(start)}
}

// infeasibleObj is the "no certificate found" sentinel value every
// routine below falls back to.
func infeasibleObj(c *costmatrix.CostMatrix) int {
	return maxCost(c) + 1
}

func maxCost(c *costmatrix.CostMatrix) int {
	n := c.Size()
	best := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if v := c.Cost(i, j); v > best {
				best = v
			}
		}
	}

	return best
}
