package lowerbound_test

import (
	"testing"

	"github.com/arrowtsp/arrow/costmatrix"
	"github.com/arrowtsp/arrow/lowerbound"
	"github.com/stretchr/testify/require"
)

func s1(t *testing.T) *costmatrix.CostMatrix {
	t.Helper()
	cm, err := costmatrix.New(4, []int{
		0, 1, 3, 2,
		1, 0, 4, 5,
		3, 4, 0, 6,
		2, 5, 6, 0,
	}, true, nil)
	require.NoError(t, err)

	return cm
}

func TestTwoMaxBound_S1(t *testing.T) {
	r, err := lowerbound.TwoMaxBound(s1(t))
	require.NoError(t, err)
	// Every lower bound must not exceed the known S1 optimum of 5.
	require.LessOrEqual(t, r.Obj, 5)
	require.Greater(t, r.Obj, 0)
}

func TestBBSSP_S1(t *testing.T) {
	r, err := lowerbound.BBSSP(s1(t))
	require.NoError(t, err)
	require.LessOrEqual(t, r.Obj, 5)
}

func TestBSCSSP_FullyConnectedAtMax(t *testing.T) {
	cm := s1(t)
	require.True(t, lowerbound.IsStronglyConnectedBand(cm, 0, 6))
	require.False(t, lowerbound.IsStronglyConnectedBand(cm, 0, 0))
}

// TestBAP_S5 is the seed scenario S5 from spec.md §8. Row 2's cheapest
// off-diagonal cost is 6, so no perfect matching exists below 6.
func TestBAP_S5(t *testing.T) {
	cm, err := costmatrix.New(4, []int{
		0, 5, 1, 4,
		3, 0, 9, 2,
		6, 8, 0, 7,
		2, 5, 4, 0,
	}, false, nil)
	require.NoError(t, err)

	r, err := lowerbound.BAP(cm)
	require.NoError(t, err)
	require.Equal(t, 6, r.Obj)

	matching, ok := lowerbound.PerfectMatchingAt(cm, r.Obj)
	require.True(t, ok)
	require.Len(t, matching, 4)
	_, ok = lowerbound.PerfectMatchingAt(cm, r.Obj-1)
	require.False(t, ok)
}

func TestCBAP_RespectsDelta(t *testing.T) {
	cm := s1(t)
	r, err := lowerbound.CBAP(cm, 6)
	require.NoError(t, err)
	require.Less(t, r.Obj, 1<<20)

	// Excluding every edge but the diagonal must be infeasible.
	rNone, err := lowerbound.CBAP(cm, -1)
	require.NoError(t, err)
	require.GreaterOrEqual(t, rNone.Obj, 1)
}

// TestDCBPB_S6 is the seed scenario S6 from spec.md §8.
func TestDCBPB_S6(t *testing.T) {
	cm, err := costmatrix.New(4, []int{
		0, 1, 2, 3,
		1, 0, 4, 5,
		2, 4, 0, 6,
		3, 5, 6, 0,
	}, true, nil)
	require.NoError(t, err)

	r, err := lowerbound.DCBPB(cm)
	require.NoError(t, err)
	require.Equal(t, 4, r.Obj)
}

func TestCBST_S1(t *testing.T) {
	r, err := lowerbound.CBST(s1(t), nil)
	require.NoError(t, err)
	// MST on S1: edges (0,1)=1,(0,3)=2,(0,2)=3 -> bottleneck 3.
	require.Equal(t, 3, r.Obj)
}

func TestCBST_ForbiddenEdgeEnumeratesAlternate(t *testing.T) {
	cm := s1(t)
	base, err := lowerbound.CBST(cm, nil)
	require.NoError(t, err)

	forbidden := map[[2]int]struct{}{{0, 2}: {}}
	alt, err := lowerbound.CBST(cm, forbidden)
	require.NoError(t, err)
	require.GreaterOrEqual(t, alt.Obj, base.Obj)
}

func TestBandedPredicates_S1(t *testing.T) {
	cm := s1(t)
	require.True(t, lowerbound.IsBiconnectedBand(cm, 1, 6))
	require.False(t, lowerbound.IsBiconnectedBand(cm, 1, 1))
	require.True(t, lowerbound.PerfectMatchingInBand(cm, 1, 6))
	require.False(t, lowerbound.PerfectMatchingInBand(cm, 100, 200))
}

func TestTooSmallInstances(t *testing.T) {
	tiny, err := costmatrix.New(1, []int{0}, true, nil)
	require.NoError(t, err)

	_, err = lowerbound.TwoMaxBound(tiny)
	require.ErrorIs(t, err, lowerbound.ErrTooSmall)
	_, err = lowerbound.BBSSP(tiny)
	require.ErrorIs(t, err, lowerbound.ErrTooSmall)
	_, err = lowerbound.BSCSSP(tiny)
	require.ErrorIs(t, err, lowerbound.ErrTooSmall)
	_, err = lowerbound.BAP(tiny)
	require.ErrorIs(t, err, lowerbound.ErrTooSmall)
	_, err = lowerbound.CBAP(tiny, 0)
	require.ErrorIs(t, err, lowerbound.ErrTooSmall)
	_, err = lowerbound.DCBPB(tiny)
	require.ErrorIs(t, err, lowerbound.ErrTooSmall)
	_, err = lowerbound.CBST(tiny, nil)
	require.ErrorIs(t, err, lowerbound.ErrTooSmall)
}
