// Package asym implements the asymmetric-to-symmetric reduction of
// spec.md §4.7: a 2n-node symmetric instance built from an n-node
// asymmetric one, plus recover/expand to translate tours between the
// two representations.
//
// Grounded on matrix/ops/inverse.go (the pack's only other
// "build a derived structure, then recover the original" transform) and
// tsp/tour.go's orientation/canonicalisation helpers — Recover's
// direction-detection logic plays the same role tour.go's rotation
// normalisation does: pin down a canonical reading of an otherwise
// ambiguous cyclic sequence.
package asym

import (
	"errors"
	"fmt"

	"github.com/arrowtsp/arrow/costmatrix"
	"github.com/arrowtsp/arrow/transform"
)

// ErrTooSmall signals an asymmetric instance with fewer than 2 cities.
var ErrTooSmall = errors.New("asym: instance too small (n < 2)")

// ErrTourLengthMismatch signals a tour whose length doesn't match the
// expected node count for the reduction being applied.
var ErrTourLengthMismatch = errors.New("asym: tour length does not match instance size")

// ErrInvalidTour signals a symmetric tour that cannot be read back into
// a valid asymmetric tour (missing city, wrong real-node count).
var ErrInvalidTour = errors.New("asym: tour cannot be recovered")

// Reduce builds the symmetric 2n-node instance C' from an asymmetric
// n-node instance C (spec.md §4.7):
//
//	C'(i,j)     = Sentinel           if i,j in the same half (both real or both ghost)
//	C'(i+n, i)  = -Sentinel          the mandatory fixed edge, both orientations
//	C'(i+n, j)  = C(j,i)             for i != j (cross-half, non-partner)
//
// The returned matrix is always Symmetric() == true and carries exactly
// n real-ghost partner pairs as fixed edges, each stored in both
// orientations (FixedEdgeCount() == 2n).
func Reduce(c *costmatrix.CostMatrix) (*costmatrix.CostMatrix, error) {
	n := c.Size()
	if n < 2 {
		return nil, fmt.Errorf("asym.Reduce: %w", ErrTooSmall)
	}

	m := 2 * n
	data := make([]int, m*m)
	fixed := make([]costmatrix.FixedEdge, 0, 2*n)

	for a := 0; a < m; a++ {
		for b := 0; b < m; b++ {
			if a == b {
				continue
			}
			halfA, realA := a/n, a%n
			halfB, realB := b/n, b%n

			var cost int
			switch {
			case halfA == halfB:
				cost = transform.Sentinel
			case realA == realB:
				cost = -transform.Sentinel
			default:
				// Whichever of a,b sits in the real half is j; the
				// other (ghost half) contributes i via realA/realB.
				j, i := realB, realA
				if halfA == 0 {
					j, i = realA, realB
				}
				cost = c.Cost(j, i)
			}
			data[a*m+b] = cost
		}
	}

	for i := 0; i < n; i++ {
		fixed = append(fixed, costmatrix.FixedEdge{I: i + n, J: i}, costmatrix.FixedEdge{I: i, J: i + n})
	}

	return costmatrix.New(m, data, true, fixed)
}

// Recover translates a Hamiltonian cycle of the 2n-node symmetric
// instance (using every fixed edge) back into the n-node asymmetric
// tour it encodes (spec.md §4.7). n is the original asymmetric
// instance's size; symTour must have length 2n.
//
// Direction is ambiguous from the symmetric cycle alone (it can be read
// in either rotational sense); Recover disambiguates by inspecting the
// first real->ghost transition at city 0: if city 0's forward neighbour
// in symTour is its own ghost (0+n), the cycle was read in the
// "right-owned" sense and the extracted real-node order must be
// reversed to recover the original directed cost sum; otherwise the
// forward order is already correct.
func Recover(symTour []int, n int) ([]int, error) {
	m := 2 * n
	if len(symTour) != m {
		return nil, fmt.Errorf("asym.Recover: want len %d, got %d: %w", m, len(symTour), ErrTourLengthMismatch)
	}

	pos0 := -1
	for idx, v := range symTour {
		if v == 0 {
			pos0 = idx

			break
		}
	}
	if pos0 < 0 {
		return nil, fmt.Errorf("asym.Recover: city 0 missing from tour: %w", ErrInvalidTour)
	}

	reals := collectReals(symTour, pos0, n)
	if len(reals) != n {
		return nil, fmt.Errorf("asym.Recover: expected %d real nodes, found %d: %w", n, len(reals), ErrInvalidTour)
	}

	forward := symTour[(pos0+1)%m]
	if forward == n { // city 0's own ghost is its forward neighbour: right-owned.
		reverseInts(reals)
	}

	return reals, nil
}

// Expand is Recover's inverse: given an n-city asymmetric tour, builds
// the corresponding 2n-node symmetric tour (right-owned convention,
// matching Recover's direction test) by interleaving each real node
// with its own ghost, in reversed visiting order.
func Expand(asymTour []int, n int) ([]int, error) {
	if len(asymTour) != n {
		return nil, fmt.Errorf("asym.Expand: want len %d, got %d: %w", n, len(asymTour), ErrTourLengthMismatch)
	}

	vSeq := make([]int, n)
	copy(vSeq, asymTour)
	reverseInts(vSeq)

	sym := make([]int, 0, 2*n)
	for _, v := range vSeq {
		sym = append(sym, v, v+n)
	}

	return sym, nil
}

// FixedEdgesUsed reports whether symTour uses every one of the n
// mandatory real-ghost fixed edges exactly once — the ATSP feasible
// predicate of spec.md §4.7 ("requires exactly n fixed edges in τ").
func FixedEdgesUsed(c *costmatrix.CostMatrix, symTour []int) bool {
	m := len(symTour)
	count := 0
	for k := 0; k < m; k++ {
		next := (k + 1) % m
		if c.IsFixed(symTour[k], symTour[next]) {
			count++
		}
	}

	return count == m/2
}

func collectReals(tour []int, start, n int) []int {
	m := len(tour)
	out := make([]int, 0, n)
	for step := 0; step < m; step++ {
		v := tour[(start+step)%m]
		if v < n {
			out = append(out, v)
		}
	}

	return out
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
