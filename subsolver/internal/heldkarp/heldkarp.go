// Package heldkarp implements the Held-Karp dynamic-programming exact
// TSP solver: O(n^2 * 2^n) time, O(n * 2^n) memory.
//
// Grounded on the teacher's tsp/exact.go: a dense weight prefetch into a
// flat buffer to remove interface indirection from the DP's hot loop, a
// soft size guard (MaxN), and the same bitmask-DP recurrence shape.
// Unlike the teacher's version this one tolerates negative costs (fixed
// edges introduced by package asym carry negative costs by convention;
// Held-Karp's recurrence is agnostic to sign, it just needs the minimum).
//
// Every failure mode wraps the matching arrowerrors sentinel (per
// arrowerrors' own "all algorithms MUST return these sentinels, or wrap
// them with %w" contract) so callers and Kindof can classify it without
// inspecting this package's messages directly.
package heldkarp

import (
	"fmt"
	"time"

	"github.com/arrowtsp/arrow/arrowerrors"
)

// MaxN bounds problem size for the exact solver (time/memory guard);
// 2^20 subsets * 20 vertices already exceeds what a CLI invocation
// should attempt, so MaxN is set conservatively below that.
const MaxN = 18

// ErrSizeTooLarge signals n > MaxN. Wraps arrowerrors.ErrSubsolverNoTour:
// the exact solver cannot even attempt this size, so no tour is produced.
var ErrSizeTooLarge = fmt.Errorf("heldkarp: instance too large for exact DP: %w", arrowerrors.ErrSubsolverNoTour)

// ErrTimeLimit signals cfg.TimeBound elapsed before the DP completed.
// Wraps arrowerrors.ErrSubsolverTimeBudget.
var ErrTimeLimit = fmt.Errorf("heldkarp: time bound exceeded: %w", arrowerrors.ErrSubsolverTimeBudget)

// ErrNoHamiltonianCycle signals the DP completed but no Hamiltonian
// cycle exists over the given cost accessor. Wraps
// arrowerrors.ErrSubsolverNotHamiltonian.
var ErrNoHamiltonianCycle = fmt.Errorf("heldkarp: no Hamiltonian cycle exists: %w", arrowerrors.ErrSubsolverNotHamiltonian)

// costAccessor is the minimal read surface needed; kept private and
// structural so this package never imports subsolver (would cycle).
type costAccessor interface {
	Size() int
	Cost(i, j int) int
}

// Config configures the exact solver.
type Config struct {
	TimeBound time.Duration
}

// Solve runs Held-Karp DP over cost, starting and ending at vertex 0.
//
// Complexity: O(n^2 * 2^n) time, O(n * 2^n) int memory.
func Solve(cost costAccessor, cfg Config) (tour []int, length int, err error) {
	n := cost.Size()
	if n < 2 {
		return nil, 0, fmt.Errorf("heldkarp: %w", arrowerrors.ErrTooSmall)
	}
	if n > MaxN {
		return nil, 0, ErrSizeTooLarge
	}

	w := make([]int, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			w[i*n+j] = cost.Cost(i, j)
		}
	}
	at := func(u, v int) int { return w[u*n+v] }

	const inf = 1 << 30
	full := 1 << uint(n)

	// dp[mask*n+j] = min cost of a path starting at 0, visiting exactly
	// the vertices in mask, ending at j. parent[mask*n+j] = predecessor.
	dp := make([]int, full*n)
	parent := make([]int32, full*n)
	for i := range dp {
		dp[i] = inf
	}
	dp[(1<<0)*n+0] = 0

	deadline := time.Time{}
	if cfg.TimeBound > 0 {
		deadline = timeNow().Add(cfg.TimeBound)
	}

	for mask := 1; mask < full; mask++ {
		if mask&1 == 0 {
			continue // every valid mask must include vertex 0
		}
		if !deadline.IsZero() && timeNow().After(deadline) {
			return nil, 0, ErrTimeLimit
		}
		for last := 0; last < n; last++ {
			if mask&(1<<uint(last)) == 0 {
				continue
			}
			cur := dp[mask*n+last]
			if cur >= inf {
				continue
			}
			for next := 0; next < n; next++ {
				if mask&(1<<uint(next)) != 0 {
					continue
				}
				nmask := mask | (1 << uint(next))
				cand := cur + at(last, next)
				if cand < dp[nmask*n+next] {
					dp[nmask*n+next] = cand
					parent[nmask*n+next] = int32(last)
				}
			}
		}
	}

	fullMask := full - 1
	best := inf
	bestLast := -1
	for last := 1; last < n; last++ {
		v := dp[fullMask*n+last]
		if v >= inf {
			continue
		}
		v += at(last, 0)
		if v < best {
			best = v
			bestLast = last
		}
	}
	if bestLast < 0 {
		return nil, 0, ErrNoHamiltonianCycle
	}

	// Reconstruct the path by walking parent pointers backward.
	path := make([]int, 0, n)
	mask := fullMask
	cur := bestLast
	for {
		path = append(path, cur)
		if mask == 1 && cur == 0 {
			break
		}
		prev := int(parent[mask*n+cur])
		mask &^= 1 << uint(cur)
		cur = prev
	}
	// Reverse into forward order (path was built end-to-start).
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, best, nil
}

// timeNow is a indirection point kept so tests could substitute a clock;
// production callers always get wall time.
var timeNow = time.Now
