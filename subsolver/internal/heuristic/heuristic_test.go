package heuristic_test

import (
	"testing"

	"github.com/arrowtsp/arrow/subsolver/internal/heuristic"
	"github.com/stretchr/testify/require"
)

type matrix struct {
	n    int
	data []int
}

func (m matrix) Size() int { return m.n }
func (m matrix) Cost(i, j int) int {
	return m.data[i*m.n+j]
}

func s1() matrix {
	return matrix{n: 4, data: []int{
		0, 1, 3, 2,
		1, 0, 4, 5,
		3, 4, 0, 6,
		2, 5, 6, 0,
	}}
}

func TestSolve_FindsOptimalOnS1(t *testing.T) {
	tour, length, err := heuristic.Solve(s1(), heuristic.Config{
		RandomRestarts: 3,
		StallCount:     5,
		Kicks:          10,
		Seed:           42,
	}, nil)
	require.NoError(t, err)
	require.Len(t, tour, 4)
	require.Equal(t, 13, length)
}

func TestSolve_DeterministicGivenSeed(t *testing.T) {
	cfg := heuristic.Config{RandomRestarts: 2, StallCount: 4, Kicks: 6, Seed: 7}
	tour1, len1, err := heuristic.Solve(s1(), cfg, nil)
	require.NoError(t, err)
	tour2, len2, err := heuristic.Solve(s1(), cfg, nil)
	require.NoError(t, err)

	require.Equal(t, len1, len2)
	require.Equal(t, tour1, tour2)
}

func TestSolve_HonorsInitialTour(t *testing.T) {
	tour, length, err := heuristic.Solve(s1(), heuristic.Config{Seed: 1}, []int{2, 0, 1, 3})
	require.NoError(t, err)
	require.Len(t, tour, 4)
	require.Greater(t, length, 0)
}

func TestSolve_SegmentReversalKick(t *testing.T) {
	tour, length, err := heuristic.Solve(s1(), heuristic.Config{
		RandomRestarts: 1,
		StallCount:     3,
		Kicks:          5,
		KickType:       heuristic.SegmentReversal,
		Seed:           99,
	}, nil)
	require.NoError(t, err)
	require.Len(t, tour, 4)
	require.Equal(t, 13, length)
}
