package costmatrix

import (
	"fmt"
	"sort"

	"github.com/arrowtsp/arrow/arrowerrors"
)

// ProblemInfo is an in-order, duplicate-free sequence of every distinct
// finite non-fixed cost appearing in a CostMatrix, plus the derived
// MinCost/MaxCost and an O(log n) IndexOf lookup (spec.md §3).
//
// A ProblemInfo is built once per base CostMatrix (in NewProblemInfo) and
// reused by every driver/oracle call against that matrix; derived
// matrices produced by package transform do not get their own
// ProblemInfo — threshold search always walks the BASE instance's
// CostList (spec.md §4.3: "State over indices into cost_list").
type ProblemInfo struct {
	// CostList is sorted ascending, each value distinct.
	CostList []int
}

// NewProblemInfo scans c for every cost(i,j), i != j, that is >= 0 and
// not a fixed edge, deduplicates, and sorts ascending.
//
// Complexity: O(n^2 log n) (an O(n^2) scan, an O(n^2 log n) sort).
func NewProblemInfo(c *CostMatrix) (*ProblemInfo, error) {
	n := c.Size()
	seen := make(map[int]struct{}, n*2)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if c.IsFixed(i, j) {
				continue
			}
			v := c.Cost(i, j)
			if v < 0 {
				continue
			}
			seen[v] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return nil, arrowerrors.ErrEmptyCostList
	}

	list := make([]int, 0, len(seen))
	for v := range seen {
		list = append(list, v)
	}
	sort.Ints(list)

	return &ProblemInfo{CostList: list}, nil
}

// MinCost returns CostList[0].
func (p *ProblemInfo) MinCost() int { return p.CostList[0] }

// MaxCost returns CostList[len(CostList)-1].
func (p *ProblemInfo) MaxCost() int { return p.CostList[len(p.CostList)-1] }

// Len returns len(CostList).
func (p *ProblemInfo) Len() int { return len(p.CostList) }

// IndexOf returns the index i such that CostList[i] == cost, via binary
// search. Returns arrowerrors.ErrCostNotIndexed if cost is absent.
//
// Complexity: O(log n).
func (p *ProblemInfo) IndexOf(cost int) (int, error) {
	i := sort.SearchInts(p.CostList, cost)
	if i >= len(p.CostList) || p.CostList[i] != cost {
		return 0, fmt.Errorf("costmatrix.ProblemInfo.IndexOf(%d): %w", cost, arrowerrors.ErrCostNotIndexed)
	}

	return i, nil
}

// IndexOfFloor returns the largest index i such that CostList[i] <= cost,
// or -1 if cost is smaller than every entry. Used by drivers to snap an
// externally supplied lower/upper bound onto the nearest valid index
// (spec.md §4.3: "fall back to last index").
func (p *ProblemInfo) IndexOfFloor(cost int) int {
	i := sort.SearchInts(p.CostList, cost+1) - 1
	if i < 0 {
		return -1
	}
	if i >= len(p.CostList) {
		return len(p.CostList) - 1
	}

	return i
}

// IndexOfCeil returns the smallest index i such that CostList[i] >= cost,
// or len(CostList) if cost exceeds every entry.
func (p *ProblemInfo) IndexOfCeil(cost int) int {
	return sort.SearchInts(p.CostList, cost)
}
