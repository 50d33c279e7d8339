package lowerbound

import (
	"github.com/arrowtsp/arrow/costmatrix"
)

// BBSSP binary-searches cost_list for the smallest threshold that admits
// a biconnected spanning subgraph using only edges of cost <= threshold
// (spec.md §4.6). Grounded on the teacher's graph/dfs.go traversal
// bookkeeping (Depth/Parent maps), but made iterative per spec.md §9's
// "Recursive DFS... must be made iterative" design note — the teacher's
// own dfsTraverse recurses, we diverge here deliberately.
//
// Complexity: O(log(cost_list) * n^2) — each probe's biconnectivity test
// is O(n^2) against the dense matrix.
func BBSSP(c *costmatrix.CostMatrix) (Result, error) {
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
			if IsBiconnectedBand(c, 0, threshold) {
				ans = threshold
				hi = mid - 1
			} else {
				lo = mid + 1
			}
		}

		return ans
	}), nil
}

// IsBiconnectedBand reports whether the undirected skeleton restricted to
// edges with min(cost(i,j), cost(j,i)) in [lo, hi] is connected with no
// articulation point (trivially biconnected for n < 3). Exposed directly
// for driver.DT's LB feasibility cascade (spec.md §4.4), which probes
// biconnectivity over a band rather than a single threshold.
func IsBiconnectedBand(c *costmatrix.CostMatrix, lo, hi int) bool {
	n := c.Size()
	adj := undirectedAdjacencyBand(c, lo, hi)

	disc := make([]int, n)
	low := make([]int, n)
	visited := make([]bool, n)
	for i := range disc {
		disc[i] = -1
	}
	articulation := make([]bool, n)
	timer := 0
	visitedCount := 0

	type frame struct {
		u, parent, childIdx int
	}

	// Iterative Tarjan articulation-point DFS (explicit stack replaces
	// recursion to bound stack depth on large n).
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		rootChildren := 0
		stack := []frame{{u: start, parent: -1, childIdx: 0}}
		visited[start] = true
		disc[start] = timer
		low[start] = timer
		timer++
		visitedCount++

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.childIdx < len(adj[top.u]) {
				v := adj[top.u][top.childIdx]
				top.childIdx++
				if v == top.parent {
					continue
				}
				if !visited[v] {
					visited[v] = true
					disc[v] = timer
					low[v] = timer
					timer++
					visitedCount++
					if top.u == start {
						rootChildren++
					}
					stack = append(stack, frame{u: v, parent: top.u, childIdx: 0})
				} else if disc[v] < low[top.u] {
					low[top.u] = disc[v]
				}
			} else {
				stack = stack[:len(stack)-1]
				if len(stack) > 0 {
					parentFrame := &stack[len(stack)-1]
					p := parentFrame.u
					if low[top.u] < low[p] {
						low[p] = low[top.u]
					}
					if p != start && low[top.u] >= disc[p] {
						articulation[p] = true
					}
				}
			}
		}
		if rootChildren > 1 {
			articulation[start] = true
		}
	}

	if visitedCount != n {
		return false // disconnected
	}
	if n < 3 {
		return true
	}
	for _, a := range articulation {
		if a {
			return false
		}
	}

	return true
}

func undirectedAdjacencyBand(c *costmatrix.CostMatrix, lo, hi int) [][]int {
	n := c.Size()
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			cij, cji := c.Cost(i, j), c.Cost(j, i)
			m := cij
			if cji < m {
				m = cji
			}
			if m >= lo && m <= hi {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}

	return adj
}
