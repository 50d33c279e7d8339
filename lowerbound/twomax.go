package lowerbound

import "github.com/arrowtsp/arrow/costmatrix"

// TwoMaxBound computes the 2MB lower bound (spec.md §4.6): for each vertex
// i, alpha is its smallest incident cost; beta is the second-smallest
// incident cost on symmetric instances, or the smallest cost *into* i on
// asymmetric instances (every Hamiltonian cycle uses one outgoing and one
// incoming edge at i, so min(alpha,beta) always lower-bounds i's
// contribution). The bound is the maximum over i of min(alpha,beta).
//
// Complexity: O(n^2) time, O(1) extra memory beyond the matrix itself.
func TwoMaxBound(c *costmatrix.CostMatrix) (Result, error) {
	n := c.Size()
	if n < 2 {
		return Result{}, ErrTooSmall
	}

	return timed(func() int {
		best := 0
		for i := 0; i < n; i++ {
			alpha, beta := twoSmallestOut(c, i)
			if !c.Symmetric() {
				beta = smallestIn(c, i)
			}
			m := alpha
			if beta < m {
				m = beta
			}
			if m > best {
				best = m
			}
		}

		return best
	}), nil
}

// twoSmallestOut returns the two smallest costs on row i (excluding the
// diagonal), in ascending order.
func twoSmallestOut(c *costmatrix.CostMatrix, i int) (int, int) {
	n := c.Size()
	const inf = 1 << 30
	a, b := inf, inf
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		v := c.Cost(i, j)
		if v < a {
			a, b = v, a
		} else if v < b {
			b = v
		}
	}

	return a, b
}

// smallestIn returns the smallest cost on column i (excluding the
// diagonal) — the cheapest arc entering i in an asymmetric matrix.
func smallestIn(c *costmatrix.CostMatrix, i int) int {
	n := c.Size()
	const inf = 1 << 30
	best := inf
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		if v := c.Cost(j, i); v < best {
			best = v
		}
	}

	return best
}
