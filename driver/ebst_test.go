package driver_test

import (
	"math/rand"
	"testing"

	"github.com/arrowtsp/arrow/costmatrix"
	"github.com/arrowtsp/arrow/driver"
	"github.com/arrowtsp/arrow/oracle"
	"github.com/arrowtsp/arrow/subsolver"
	"github.com/arrowtsp/arrow/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func s1(t *testing.T) (*costmatrix.CostMatrix, *costmatrix.ProblemInfo) {
	t.Helper()
	cm, err := costmatrix.New(4, []int{
		0, 1, 3, 2,
		1, 0, 4, 5,
		3, 4, 0, 6,
		2, 5, 6, 0,
	}, true, nil)
	require.NoError(t, err)
	pi, err := costmatrix.NewProblemInfo(cm)
	require.NoError(t, err)

	return cm, pi
}

// TestEBST_S1 is the seed scenario S1 of spec.md §8: BTSP optimal obj 5.
func TestEBST_S1(t *testing.T) {
	cm, pi := s1(t)
	res, stats, err := driver.EBST(driver.EBSTConfig{
		Base:            cm,
		Oracle:          oracle.New(),
		Info:            pi,
		LowerBoundIdx:   0,
		UpperBoundIdx:   pi.Len() - 1,
		Mode:            subsolver.Exact,
		SubsolverConfig: subsolver.Config{},
		RNG:             rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)
	require.True(t, res.Found)
	require.Equal(t, 5, cm.TourMaxCost(res.Tour))
	require.GreaterOrEqual(t, stats.BinSearchSteps, 0)
}

// TestConstrainedEBST_S2 is the seed scenario S2 of spec.md §8 on the S1
// matrix: the only tour with max edge 5 is {0,2,1,3}, of length 14, so a
// length cap of 14 still admits the bottleneck optimum 5.
func TestConstrainedEBST_S2(t *testing.T) {
	cm, pi := s1(t)
	res, _, err := driver.ConstrainedEBST(driver.ConstrainedEBSTConfig{
		EBSTConfig: driver.EBSTConfig{
			Base:            cm,
			Oracle:          oracle.New(),
			Info:            pi,
			LowerBoundIdx:   0,
			UpperBoundIdx:   pi.Len() - 1,
			Mode:            subsolver.Exact,
			SubsolverConfig: subsolver.Config{},
			RNG:             rand.New(rand.NewSource(1)),
		},
		FeasibleLength: 14,
	})
	require.NoError(t, err)
	require.True(t, res.Found)
	require.LessOrEqual(t, cm.TourLength(res.Tour), 14)
	require.Equal(t, 5, cm.TourMaxCost(res.Tour))
}

// TestEBST_RecordsTelemetry confirms a caller that opts into a
// *telemetry.Registry actually sees oracle-attempt counters move.
func TestEBST_RecordsTelemetry(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	tel := telemetry.New("test", "ebst")

	cm, pi := s1(t)
	res, _, err := driver.EBST(driver.EBSTConfig{
		Base:            cm,
		Oracle:          oracle.New(),
		Info:            pi,
		LowerBoundIdx:   0,
		UpperBoundIdx:   pi.Len() - 1,
		Mode:            subsolver.Exact,
		SubsolverConfig: subsolver.Config{},
		RNG:             rand.New(rand.NewSource(1)),
		Telemetry:       tel,
		Name:            "ebst_s1",
	})
	require.NoError(t, err)
	require.True(t, res.Found)

	count := testutil.ToFloat64(tel.OracleAttempts.WithLabelValues("ebst_s1", "true"))
	require.Greater(t, count, 0.0)
}
