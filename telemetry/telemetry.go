// Package telemetry exposes the Prometheus counters/histograms of
// SPEC_FULL.md §7.1: per-driver call counts, oracle attempt counts, and
// subsolver timings, scraped over an optional /metrics HTTP endpoint.
//
// Adapted from the teacher corpus's pkg/metrics/prometheus.go: a single
// promauto-built Registry struct plus Record* methods, scoped down from
// that file's gRPC/business/system metric surface to this module's own
// search-driver surface.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every metric this module records.
type Registry struct {
	BinarySearchSteps *prometheus.CounterVec
	SubsolverCalls    *prometheus.CounterVec
	SubsolverSeconds  *prometheus.HistogramVec
	OracleAttempts    *prometheus.CounterVec
	BestGap           *prometheus.GaugeVec
}

var defaultRegistry *Registry

// New builds a Registry under the given namespace/subsystem, registering
// every metric against the default Prometheus registerer.
func New(namespace, subsystem string) *Registry {
	r := &Registry{
		BinarySearchSteps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "bin_search_steps_total",
				Help:      "Number of threshold-search steps taken by a driver",
			},
			[]string{"driver"},
		),
		SubsolverCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "subsolver_calls_total",
				Help:      "Number of subsolver invocations",
			},
			[]string{"mode", "outcome"},
		),
		SubsolverSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "subsolver_seconds",
				Help:      "Wall-clock duration of subsolver invocations",
				Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
			},
			[]string{"mode"},
		),
		OracleAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "oracle_attempts_total",
				Help:      "Number of feasibility-oracle probes attempted",
			},
			[]string{"driver", "found"},
		),
		BestGap: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "best_gap",
				Help:      "Best max-min gap found so far by a balanced driver",
			},
			[]string{"driver"},
		),
	}

	defaultRegistry = r

	return r
}

// Get returns the process-wide Registry, lazily creating one under the
// "arrow" namespace if New was never called explicitly.
func Get() *Registry {
	if defaultRegistry == nil {
		return New("arrow", "")
	}

	return defaultRegistry
}

// RecordStep increments the threshold-search step counter for driver.
func (r *Registry) RecordStep(driver string) {
	r.BinarySearchSteps.WithLabelValues(driver).Inc()
}

// RecordSubsolverCall records one subsolver invocation's outcome and
// duration.
func (r *Registry) RecordSubsolverCall(mode string, found bool, d time.Duration) {
	outcome := "found"
	if !found {
		outcome = "not_found"
	}

	r.SubsolverCalls.WithLabelValues(mode, outcome).Inc()
	r.SubsolverSeconds.WithLabelValues(mode).Observe(d.Seconds())
}

// RecordOracleAttempt records one feasibility-oracle probe.
func (r *Registry) RecordOracleAttempt(driver string, found bool) {
	r.OracleAttempts.WithLabelValues(driver, boolLabel(found)).Inc()
}

// SetBestGap publishes the current best gap found by a balanced driver.
func (r *Registry) SetBestGap(driver string, gap int) {
	r.BestGap.WithLabelValues(driver).Set(float64(gap))
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}

	return "false"
}

// Handler returns the HTTP handler serving /metrics in the Prometheus
// text exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve runs a metrics-only HTTP server on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return server.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}
