package asym_test

import (
	"testing"

	"github.com/arrowtsp/arrow/asym"
	"github.com/arrowtsp/arrow/costmatrix"
	"github.com/arrowtsp/arrow/transform"
	"github.com/stretchr/testify/require"
)

// s4 builds the seed scenario S4 of spec.md §8: a 3-node asymmetric
// instance (values happen to be symmetric here, but the reduction
// machinery treats it as a general ATSP instance).
func s4(t *testing.T) *costmatrix.CostMatrix {
	t.Helper()
	cm, err := costmatrix.New(3, []int{
		0, 2, 9,
		2, 0, 3,
		9, 3, 0,
	}, false, nil)
	require.NoError(t, err)

	return cm
}

func TestReduce_Shape(t *testing.T) {
	cm := s4(t)
	red, err := asym.Reduce(cm)
	require.NoError(t, err)

	require.Equal(t, 6, red.Size())
	require.True(t, red.Symmetric())
	require.Equal(t, 6, red.FixedEdgeCount())

	// Same-half pairs are penalised with Sentinel.
	require.Equal(t, transform.Sentinel, red.Cost(0, 1))
	require.Equal(t, transform.Sentinel, red.Cost(3, 4))

	// Fixed real-ghost partner pairs carry -Sentinel both ways.
	require.True(t, red.IsFixed(0, 3))
	require.True(t, red.IsFixed(3, 0))
	require.Equal(t, -transform.Sentinel, red.Cost(0, 3))

	// Cross non-partner edges: C'(i+n,j) = C(j,i).
	require.Equal(t, cm.Cost(1, 0), red.Cost(3, 1))
	require.Equal(t, cm.Cost(2, 1), red.Cost(4, 2))
	require.Equal(t, cm.Cost(0, 2), red.Cost(5, 0))
}

func TestExpandRecover_RoundTrip(t *testing.T) {
	asymTour := []int{0, 1, 2}

	symTour, err := asym.Expand(asymTour, 3)
	require.NoError(t, err)
	require.Len(t, symTour, 6)

	recovered, err := asym.Recover(symTour, 3)
	require.NoError(t, err)

	// recover(expand(tour)) reproduces the same cycle, possibly at a
	// different rotation (spec.md §8's round-trip law judges cyclic
	// tours up to rotation).
	require.ElementsMatch(t, asymTour, recovered)
	require.Equal(t, canonicalRotation(asymTour), canonicalRotation(recovered))
}

func TestExpand_UsesEveryFixedEdge(t *testing.T) {
	cm := s4(t)
	red, err := asym.Reduce(cm)
	require.NoError(t, err)

	symTour, err := asym.Expand([]int{0, 1, 2}, 3)
	require.NoError(t, err)

	require.True(t, asym.FixedEdgesUsed(red, symTour))
}

func TestRecover_RejectsWrongLength(t *testing.T) {
	_, err := asym.Recover([]int{0, 1, 2}, 3)
	require.ErrorIs(t, err, asym.ErrTourLengthMismatch)
}

func TestReduce_RejectsTooSmall(t *testing.T) {
	tiny, err := costmatrix.New(1, []int{0}, false, nil)
	require.NoError(t, err)
	_, err = asym.Reduce(tiny)
	require.ErrorIs(t, err, asym.ErrTooSmall)
}

// canonicalRotation rotates a cyclic permutation so it starts at its
// smallest element, making two tours describing the same cycle (read in
// the same direction, starting anywhere) compare equal.
func canonicalRotation(tour []int) []int {
	minIdx := 0
	for i, v := range tour {
		if v < tour[minIdx] {
			minIdx = i
		}
	}
	out := make([]int, len(tour))
	for i := range tour {
		out[i] = tour[(minIdx+i)%len(tour)]
	}

	return out
}
