package costmatrix_test

import (
	"testing"

	"github.com/arrowtsp/arrow/costmatrix"
	"github.com/stretchr/testify/require"
)

// s1Matrix builds the 4-node symmetric seed scenario S1 from spec.md §8:
//
//	[[-,1,3,2],[1,-,4,5],[3,4,-,6],[2,5,6,-]]
func s1Matrix(t *testing.T) *costmatrix.CostMatrix {
	t.Helper()
	data := []int{
		0, 1, 3, 2,
		1, 0, 4, 5,
		3, 4, 0, 6,
		2, 5, 6, 0,
	}
	cm, err := costmatrix.New(4, data, true, nil)
	require.NoError(t, err)

	return cm
}

func TestCostMatrix_Basics(t *testing.T) {
	cm := s1Matrix(t)
	require.Equal(t, 4, cm.Size())
	require.True(t, cm.Symmetric())
	require.Equal(t, 3, cm.Cost(0, 2))
	require.Equal(t, 3, cm.Cost(2, 0))
	require.Equal(t, 0, cm.FixedEdgeCount())
}

func TestCostMatrix_TourMetrics(t *testing.T) {
	cm := s1Matrix(t)
	// Tour {0,1,3,2} on S1: edges 1,5,6,3, so max edge 6 (the S1 BTSP
	// optimum 5 is reached by {0,2,1,3} instead).
	tour := []int{0, 1, 3, 2}
	require.NoError(t, costmatrix.ValidateTour(tour, 4))
	require.Equal(t, 6, cm.TourMaxCost(tour))
	require.Equal(t, 1, cm.TourMinCost(tour))
	// length = cost(0,1)+cost(1,3)+cost(3,2)+cost(2,0) = 1+5+6+3 = 15
	require.Equal(t, 15, cm.TourLength(tour))
}

func TestCostMatrix_ValidateTour_Errors(t *testing.T) {
	require.Error(t, costmatrix.ValidateTour([]int{0, 1, 2}, 4))
	require.Error(t, costmatrix.ValidateTour([]int{0, 1, 1, 3}, 4))
	require.Error(t, costmatrix.ValidateTour([]int{0, 1, 4, 3}, 4))
}

func TestCostMatrix_FixedEdges(t *testing.T) {
	data := make([]int, 9)
	cm, err := costmatrix.New(3, data, true, []costmatrix.FixedEdge{{I: 0, J: 1}})
	require.NoError(t, err)
	require.True(t, cm.IsFixed(0, 1))
	require.False(t, cm.IsFixed(1, 0))
	require.Equal(t, 1, cm.FixedEdgeCount())

	tour := []int{0, 1, 2}
	require.Equal(t, 1, cm.FixedEdgesUsed(tour))
}

func TestNew_RejectsBadShape(t *testing.T) {
	_, err := costmatrix.New(2, []int{0, 1, 2}, true, nil)
	require.Error(t, err)

	_, err = costmatrix.New(-1, nil, true, nil)
	require.Error(t, err)
}
