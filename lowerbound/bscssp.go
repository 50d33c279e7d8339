package lowerbound

import "github.com/arrowtsp/arrow/costmatrix"

// BSCSSP binary-searches cost_list for the smallest threshold that admits
// a strongly-connected spanning subgraph using directed edges of cost
// <= threshold (spec.md §4.6's un-banded form, used for reduced
// asymmetric instances). IsStronglyConnectedBand exposes the banded
// predicate DT's LB cascade (spec.md §4.4) needs directly.
//
// Grounded on the teacher's graph/dfs.go traversal bookkeeping, made
// iterative per spec.md §9: the band is strongly connected when every
// vertex is reachable from vertex 0 both forwards and in reverse.
func BSCSSP(c *costmatrix.CostMatrix) (Result, error) {
	n := c.Size()
	if n < 2 {
		return Result{}, ErrTooSmall
	}

	pi, err := costmatrix.NewProblemInfo(c)
	if err != nil {
		return Result{}, err
	}

	return timed(func() int {
		lo, hi := 0, pi.Len()-1
		ans := infeasibleObj(c)
		for lo <= hi {
			mid := (lo + hi) / 2
			threshold := pi.CostList[mid]
			if IsStronglyConnectedBand(c, pi.MinCost(), threshold) {
				ans = threshold
				hi = mid - 1
			} else {
				lo = mid + 1
			}
		}

		return ans
	}), nil
}

// IsStronglyConnectedBand reports whether the directed subgraph using
// only arcs with cost in [lo, hi] is strongly connected. n < 2 is
// trivially strongly connected.
func IsStronglyConnectedBand(c *costmatrix.CostMatrix, lo, hi int) bool {
	n := c.Size()
	if n < 2 {
		return true
	}

	fwd := directedAdjacencyBand(c, lo, hi, false)
	if reachableCount(fwd, 0, n) != n {
		return false
	}
	rev := directedAdjacencyBand(c, lo, hi, true)

	return reachableCount(rev, 0, n) == n
}

func directedAdjacencyBand(c *costmatrix.CostMatrix, lo, hi int, reversed bool) [][]int {
	n := c.Size()
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v := c.Cost(i, j)
			if v < lo || v > hi {
				continue
			}
			if reversed {
				adj[j] = append(adj[j], i)
			} else {
				adj[i] = append(adj[i], j)
			}
		}
	}

	return adj
}

// reachableCount performs an iterative DFS from start and counts reached
// vertices (including start).
func reachableCount(adj [][]int, start, n int) int {
	visited := make([]bool, n)
	visited[start] = true
	stack := []int{start}
	count := 1
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, v := range adj[u] {
			if !visited[v] {
				visited[v] = true
				count++
				stack = append(stack, v)
			}
		}
	}

	return count
}
