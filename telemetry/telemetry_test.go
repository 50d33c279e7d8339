package telemetry_test

import (
	"testing"
	"time"

	"github.com/arrowtsp/arrow/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func freshRegistry(t *testing.T) {
	t.Helper()
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
}

func TestNew_BuildsRegistry(t *testing.T) {
	freshRegistry(t)
	r := telemetry.New("test", "driver")
	require.NotNil(t, r.BinarySearchSteps)
	require.NotNil(t, r.SubsolverCalls)
	require.NotNil(t, r.SubsolverSeconds)
	require.NotNil(t, r.OracleAttempts)
	require.NotNil(t, r.BestGap)
}

func TestRecordStep(t *testing.T) {
	freshRegistry(t)
	r := telemetry.New("test", "step")
	r.RecordStep("ebst")
	r.RecordStep("ebst")
}

func TestRecordSubsolverCall(t *testing.T) {
	freshRegistry(t)
	r := telemetry.New("test", "sub")
	r.RecordSubsolverCall("exact", true, 5*time.Millisecond)
	r.RecordSubsolverCall("heuristic", false, 2*time.Millisecond)
}

func TestRecordOracleAttempt(t *testing.T) {
	freshRegistry(t)
	r := telemetry.New("test", "oracle")
	r.RecordOracleAttempt("dt", true)
	r.RecordOracleAttempt("dt", false)
}

func TestSetBestGap(t *testing.T) {
	freshRegistry(t)
	r := telemetry.New("test", "gap")
	r.SetBestGap("dt", 7)
}

func TestGet_ReturnsSameInstanceAfterNew(t *testing.T) {
	freshRegistry(t)
	r1 := telemetry.New("test", "same")
	r2 := telemetry.Get()
	require.Same(t, r1, r2)
}

func TestHandler_NotNil(t *testing.T) {
	require.NotNil(t, telemetry.Handler())
}
