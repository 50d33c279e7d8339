package lowerbound

import "github.com/arrowtsp/arrow/costmatrix"

// BAP binary-searches cost_list for the smallest threshold delta that
// admits a perfect matching in the bipartite residual graph of spec.md
// §3 (source -> n left nodes -> n right nodes -> sink, arc (i, n+j)
// present iff i != j and cost(i,j) <= delta). Matching is found via a
// Kuhn-style augmenting-path search, the same "find an augmenting path,
// push flow, repeat" discipline as the teacher's flow/ford_fulkerson.go,
// specialised to unit-capacity bipartite flow.
//
// Complexity: O(log(cost_list) * n^3) (each probe is one bipartite
// matching, O(n*E) with Kuhn's algorithm).
func BAP(c *costmatrix.CostMatrix) (Result, error) {
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
			delta := pi.CostList[mid]
			if _, ok := PerfectMatchingAt(c, delta); ok {
				ans = delta
				hi = mid - 1
			} else {
				lo = mid + 1
			}
		}

		return ans
	}), nil
}

// PerfectMatchingAt attempts to find a perfect matching using only arcs
// (i,j) with i != j and cost(i,j) <= delta, returning matchRight[j] = i
// (the left node matched to right node j) and whether every left node
// was matched.
func PerfectMatchingAt(c *costmatrix.CostMatrix, delta int) ([]int, bool) {
	n := c.Size()
	matchRight := make([]int, n)
	for j := range matchRight {
		matchRight[j] = -1
	}

	matched := 0
	for i := 0; i < n; i++ {
		visited := make([]bool, n)
		if tryAugment(c, delta, i, visited, matchRight) {
			matched++
		}
	}

	return matchRight, matched == n
}

// tryAugment performs a single Kuhn augmenting-path DFS rooted at left
// node i.
func tryAugment(c *costmatrix.CostMatrix, delta, i int, visited []bool, matchRight []int) bool {
	n := c.Size()
	for j := 0; j < n; j++ {
		if i == j || c.Cost(i, j) > delta || visited[j] {
			continue
		}
		visited[j] = true
		if matchRight[j] == -1 || tryAugment(c, delta, matchRight[j], visited, matchRight) {
			matchRight[j] = i

			return true
		}
	}

	return false
}

// PerfectMatchingInBand reports whether a perfect bipartite matching
// exists using only arcs (i,j), i != j, with cost(i,j) in [lo, hi].
// Exposed for driver.DT's LB feasibility cascade (spec.md §4.4), which
// probes BAP-assignment-exists over a band rather than a single
// threshold.
func PerfectMatchingInBand(c *costmatrix.CostMatrix, lo, hi int) bool {
	n := c.Size()
	matchRight := make([]int, n)
	for j := range matchRight {
		matchRight[j] = -1
	}
	matched := 0
	for i := 0; i < n; i++ {
		visited := make([]bool, n)
		if tryAugmentBand(c, lo, hi, i, visited, matchRight) {
			matched++
		}
	}

	return matched == n
}

func tryAugmentBand(c *costmatrix.CostMatrix, lo, hi, i int, visited []bool, matchRight []int) bool {
	n := c.Size()
	for j := 0; j < n; j++ {
		v := c.Cost(i, j)
		if i == j || v < lo || v > hi || visited[j] {
			continue
		}
		visited[j] = true
		if matchRight[j] == -1 || tryAugmentBand(c, lo, hi, matchRight[j], visited, matchRight) {
			matchRight[j] = i

			return true
		}
	}

	return false
}
