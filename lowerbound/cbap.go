package lowerbound

import "github.com/arrowtsp/arrow/costmatrix"

// cbapExcluded marks an edge forbidden by the delta cap; large enough
// that any assignment using it is never mistaken for a genuine optimum,
// small enough that n*cbapExcluded never overflows the potentials'
// int arithmetic for any realistic instance size.
const cbapExcluded = 1 << 20

// CBAP solves the constrained bottleneck assignment problem: the
// minimum-cost perfect assignment using only edges with cost <= delta,
// via the shortest-augmenting-path method with vertex potentials
// (Jonker-Volgenant style, spec.md §4.6) — the classic O(n^3) successive-
// shortest-path Hungarian algorithm, specialised with reduced costs so
// every augmenting search is a single Dijkstra-like relaxation sweep
// rather than a full Bellman-Ford.
//
// Returns infeasibleObj(c) if no perfect assignment respects delta.
func CBAP(c *costmatrix.CostMatrix, delta int) (Result, error) {
	n := c.Size()
	if n < 2 {
		return Result{}, ErrTooSmall
	}

	return timed(func() int {
		cost := make([][]int, n)
		for i := 0; i < n; i++ {
			cost[i] = make([]int, n)
			for j := 0; j < n; j++ {
				if i == j || c.Cost(i, j) > delta {
					cost[i][j] = cbapExcluded
				} else {
					cost[i][j] = c.Cost(i, j)
				}
			}
		}

		total, assignment := hungarian(cost, n)
		for i, j := range assignment {
			if cost[i][j] >= cbapExcluded {
				return infeasibleObj(c)
			}
		}

		return total
	}), nil
}

// hungarian solves the n x n assignment problem by successive shortest
// augmenting paths with vertex potentials. assignment[i] = j, the column
// matched to row i. 1-indexed internally, the idiom this textbook
// algorithm is always written in.
func hungarian(cost [][]int, n int) (int, []int) {
	const inf = 1 << 30
	u := make([]int, n+1)
	v := make([]int, n+1)
	p := make([]int, n+1) // p[j] = row matched to column j (1-indexed), 0 == unmatched
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]int, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = inf
		}
		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	assignment := make([]int, n)
	total := 0
	for j := 1; j <= n; j++ {
		if p[j] != 0 {
			assignment[p[j]-1] = j - 1
			total += cost[p[j]-1][j-1]
		}
	}

	return total, assignment
}
