// Package costmatrix provides the read-only dense cost-matrix view that
// every other package in this module builds on: CostMatrix (§3 of
// SPEC_FULL.md) and ProblemInfo, its derived sorted/deduplicated cost
// index.
//
// Design follows the teacher corpus's dense-matrix discipline
// (lvlath/matrix): a single row-major []int buffer, bounds-checked
// accessors, and a small Options-free constructor surface, rather than a
// sparse map-of-maps representation — every lower-bound routine in this
// suite (BAP's residual graph, CBST's Prim heap, DCBPB's Floyd-Warshall
// pass) wants O(1) random access to cost(i,j) and never iterates sparse
// neighbour lists.
package costmatrix

import (
	"fmt"

	"github.com/arrowtsp/arrow/arrowerrors"
)

// FixedEdge is an ordered pair (i, j) that any accepted tour MUST use.
// Fixed edges are introduced only by the asymmetric→symmetric reduction
// (package asym) and carry a negative cost by convention (spec.md §3).
type FixedEdge struct {
	I, J int
}

// CostMatrix is a complete directed weighted graph on n vertices
// {0..n-1}. Cost(i,i) is undefined and never consulted. A cost < 0
// denotes a fixed edge (mandatory in any accepted tour); otherwise the
// cost is >= 0. Symmetric == true implies Cost(i,j) == Cost(j,i) for all
// i != j.
//
// CostMatrix is immutable after construction: every transform in package
// transform produces a *new* derived matrix (a lazy transform.View, or a
// deep CostMatrix copy via View.Materialize) rather than mutating one in
// place, so a CostMatrix may be
// shared freely across oracle attempts without synchronization.
type CostMatrix struct {
	n         int
	data      []int // row-major, len == n*n; data[i*n+j] == Cost(i,j)
	symmetric bool
	fixed     map[[2]int]struct{}
}

// New builds a CostMatrix from a dense row-major cost slice. data must
// have exactly n*n entries; diagonal entries are ignored by every
// accessor but must still be present for indexing arithmetic. fixed may
// be nil (no fixed edges).
func New(n int, data []int, symmetric bool, fixed []FixedEdge) (*CostMatrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("costmatrix.New: negative size: %w", arrowerrors.ErrNonSquare)
	}
	if len(data) != n*n {
		return nil, fmt.Errorf("costmatrix.New: want %d entries, got %d: %w", n*n, len(data), arrowerrors.ErrNonSquare)
	}

	buf := make([]int, n*n)
	copy(buf, data)

	fixedSet := make(map[[2]int]struct{}, len(fixed))
	for _, fe := range fixed {
		fixedSet[[2]int{fe.I, fe.J}] = struct{}{}
	}

	return &CostMatrix{n: n, data: buf, symmetric: symmetric, fixed: fixedSet}, nil
}

// Size returns n, the number of vertices.
func (c *CostMatrix) Size() int { return c.n }

// Symmetric reports whether Cost(i,j) == Cost(j,i) for all i != j.
func (c *CostMatrix) Symmetric() bool { return c.symmetric }

// Cost returns the cost of the directed edge i->j. The caller must never
// invoke Cost(i,i); that value is unspecified (stored as whatever was
// passed to New, typically 0, and never consulted by any algorithm in
// this module).
func (c *CostMatrix) Cost(i, j int) int {
	return c.data[i*c.n+j]
}

// IsFixed reports whether (i,j) is a mandatory fixed edge.
func (c *CostMatrix) IsFixed(i, j int) bool {
	_, ok := c.fixed[[2]int{i, j}]
	return ok
}

// FixedEdges returns the set of mandatory fixed edges, or nil if none.
func (c *CostMatrix) FixedEdges() []FixedEdge {
	if len(c.fixed) == 0 {
		return nil
	}
	out := make([]FixedEdge, 0, len(c.fixed))
	for k := range c.fixed {
		out = append(out, FixedEdge{I: k[0], J: k[1]})
	}

	return out
}

// FixedEdgeCount returns the number of fixed edges.
func (c *CostMatrix) FixedEdgeCount() int { return len(c.fixed) }

// TourLength sums Cost(tour[k], tour[k+1 mod n]) over a closed tour,
// a permutation of {0..n-1} given WITHOUT the trailing repeat of
// tour[0] (len(tour) == n).
func (c *CostMatrix) TourLength(tour []int) int {
	n := len(tour)
	total := 0
	for k := 0; k < n; k++ {
		next := (k + 1) % n
		total += c.Cost(tour[k], tour[next])
	}

	return total
}

// TourMaxCost returns max_k cost(tour[k], tour[k+1 mod n]).
func (c *CostMatrix) TourMaxCost(tour []int) int {
	n := len(tour)
	if n == 0 {
		return 0
	}
	maxc := c.Cost(tour[0], tour[(1)%n])
	for k := 1; k < n; k++ {
		next := (k + 1) % n
		if v := c.Cost(tour[k], tour[next]); v > maxc {
			maxc = v
		}
	}

	return maxc
}

// TourMinCost returns min_k cost(tour[k], tour[k+1 mod n]).
func (c *CostMatrix) TourMinCost(tour []int) int {
	n := len(tour)
	if n == 0 {
		return 0
	}
	minc := c.Cost(tour[0], tour[(1)%n])
	for k := 1; k < n; k++ {
		next := (k + 1) % n
		if v := c.Cost(tour[k], tour[next]); v < minc {
			minc = v
		}
	}

	return minc
}

// FixedEdgesUsed counts how many of the matrix's fixed edges appear
// consecutively on tour, in either direction (a tour edge {tour[k],
// tour[k+1]} may be read by the reduction in either orientation). A pair
// stored as a fixed edge in both orientations therefore counts twice, so
// a tour covers every fixed edge exactly when the result equals
// FixedEdgeCount().
func (c *CostMatrix) FixedEdgesUsed(tour []int) int {
	if len(c.fixed) == 0 {
		return 0
	}
	n := len(tour)
	used := 0
	for k := 0; k < n; k++ {
		next := (k + 1) % n
		u, v := tour[k], tour[next]
		if c.IsFixed(u, v) {
			used++
		}
		if c.IsFixed(v, u) {
			used++
		}
	}

	return used
}

// ValidateTour reports whether tour is a permutation of {0..n-1} of
// length exactly n. It performs no cost-band checks; those are made by
// each transform's Feasible predicate, which package oracle calls.
func ValidateTour(tour []int, n int) error {
	if len(tour) != n {
		return fmt.Errorf("costmatrix.ValidateTour: length %d != n %d: %w", len(tour), n, arrowerrors.ErrNonSquare)
	}
	seen := make([]bool, n)
	for _, v := range tour {
		if v < 0 || v >= n {
			return fmt.Errorf("costmatrix.ValidateTour: vertex %d out of range [0,%d): %w", v, n, arrowerrors.ErrSubsolverNotHamiltonian)
		}
		if seen[v] {
			return fmt.Errorf("costmatrix.ValidateTour: vertex %d repeated: %w", v, arrowerrors.ErrSubsolverNotHamiltonian)
		}
		seen[v] = true
	}

	return nil
}
