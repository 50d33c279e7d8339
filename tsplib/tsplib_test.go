package tsplib_test

import (
	"strings"
	"testing"

	"github.com/arrowtsp/arrow/tsplib"
	"github.com/stretchr/testify/require"
)

func TestReadProblem_EUC2D(t *testing.T) {
	input := `NAME: square
TYPE: TSP
DIMENSION: 4
EDGE_WEIGHT_TYPE: EUC_2D
NODE_COORD_SECTION
1 0 0
2 0 3
3 4 3
4 4 0
EOF
`
	p, err := tsplib.ReadProblem(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, "square", p.Name)
	require.Equal(t, 4, p.Dimension)
	require.Equal(t, 4, p.Matrix.Size())
	require.True(t, p.Matrix.Symmetric())
	// (0,0)-(0,3): distance 3; (0,3)-(4,3): distance 4; (0,0)-(4,0): distance 4.
	require.Equal(t, 3, p.Matrix.Cost(0, 1))
	require.Equal(t, 4, p.Matrix.Cost(1, 2))
	require.Equal(t, 5, p.Matrix.Cost(0, 2)) // diagonal, 3-4-5 triangle
}

func TestReadProblem_ExplicitFullMatrixAsymmetric(t *testing.T) {
	input := `NAME: atsp3
TYPE: ATSP
DIMENSION: 3
EDGE_WEIGHT_TYPE: EXPLICIT
EDGE_WEIGHT_FORMAT: FULL_MATRIX
EDGE_WEIGHT_SECTION
0 2 9
2 0 3
9 3 0
EOF
`
	p, err := tsplib.ReadProblem(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, p.Matrix.Size())
	require.Equal(t, 2, p.Matrix.Cost(0, 1))
	require.Equal(t, 9, p.Matrix.Cost(0, 2))
}

func TestReadProblem_RejectsUnknownWeightType(t *testing.T) {
	input := `NAME: bad
DIMENSION: 2
EDGE_WEIGHT_TYPE: XYZ_9D
NODE_COORD_SECTION
1 0 0
2 1 1
EOF
`
	_, err := tsplib.ReadProblem(strings.NewReader(input))
	require.ErrorIs(t, err, tsplib.ErrUnsupportedEdgeWeightType)
}

func TestReadProblem_RejectsMissingDimension(t *testing.T) {
	input := `NAME: bad
EDGE_WEIGHT_TYPE: EUC_2D
NODE_COORD_SECTION
1 0 0
EOF
`
	_, err := tsplib.ReadProblem(strings.NewReader(input))
	require.ErrorIs(t, err, tsplib.ErrMalformed)
}

func TestTourRoundTrip(t *testing.T) {
	var buf strings.Builder
	tour := []int{2, 0, 3, 1}
	require.NoError(t, tsplib.WriteTour(&buf, "sample", tour))

	got, err := tsplib.ReadTour(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Equal(t, tour, got)
}

func TestReadTour_RejectsMissingSection(t *testing.T) {
	_, err := tsplib.ReadTour(strings.NewReader("NAME: x\nEOF\n"))
	require.ErrorIs(t, err, tsplib.ErrMalformed)
}
