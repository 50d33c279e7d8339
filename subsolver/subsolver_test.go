package subsolver_test

import (
	"testing"

	"github.com/arrowtsp/arrow/subsolver"
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

func TestDefault_LinKernighanMode(t *testing.T) {
	var s subsolver.Default
	tour, length, err := s.Solve(s1(), subsolver.LinKernighan, subsolver.Config{
		RandomRestarts: 2,
		StallCount:     4,
		Kicks:          6,
		Seed:           3,
	}, nil)
	require.NoError(t, err)
	require.Len(t, tour, 4)
	require.Equal(t, 13, length)
}

func TestDefault_ExactMode(t *testing.T) {
	var s subsolver.Default
	tour, length, err := s.Solve(s1(), subsolver.Exact, subsolver.Config{}, nil)
	require.NoError(t, err)
	require.Len(t, tour, 4)
	require.Equal(t, 13, length)
}
