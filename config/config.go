// Package config loads the CLI surface of spec.md §6.3 from defaults,
// an optional YAML overlay, and the environment — adapted from the
// teacher corpus's pkg/config, scoped down to this module's own knobs
// instead of a whole microservice's.
package config

import (
	"fmt"
	"strings"
)

// Config mirrors every driver's CLI flag (spec.md §6.3) plus the
// ambient logging/metrics knobs of SPEC_FULL.md §7.1.
type Config struct {
	Input  InputConfig  `koanf:"input"`
	Search SearchConfig `koanf:"search"`
	Log    LogConfig    `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// InputConfig names the problem file and output destinations.
type InputConfig struct {
	ProblemFile string `koanf:"problem_file"` // -i
	XMLPath     string `koanf:"xml_path"`      // -x
	TourPath    string `koanf:"tour_path"`     // -T
}

// SearchConfig mirrors the numeric/boolean driver flags of spec.md §6.3.
type SearchConfig struct {
	Restarts       int  `koanf:"restarts"`         // -r
	StallCount     int  `koanf:"stall_count"`       // -s
	Kicks          int  `koanf:"kicks"`             // -k
	LowerBound     int  `koanf:"lower_bound"`       // -l
	UpperBound     int  `koanf:"upper_bound"`       // -u
	BasicAttempts  int  `koanf:"basic_attempts"`    // -a
	ShakeAttempts  int  `koanf:"shake_attempts"`    // -b
	ShakeRandMin   int  `koanf:"shake_rand_min"`    // -1
	ShakeRandMax   int  `koanf:"shake_rand_max"`    // -2
	Seed           int64 `koanf:"seed"`             // -g
	DeepCopy       bool `koanf:"deep_copy"`         // -d
	Infinity       int  `koanf:"infinity"`          // -I
	ConfirmSol     bool `koanf:"confirm_sol"`       // -c
	SuppressEBST   bool `koanf:"suppress_ebst"`     // -e
	FindShortTour  bool `koanf:"find_short_tour"`   // -S
	Length         int  `koanf:"length"`            // -L (constrained)
	SolveMSTSP     bool `koanf:"solve_mstsp"`       // -m
	LBOnly         bool `koanf:"lb_only"`           // -L (balanced)
	BTSPMinCost    int  `koanf:"btsp_min_cost"`     // -t
	BTSPMaxCost    int  `koanf:"btsp_max_cost"`     // -u (balanced)
	MSTSPMinCost   int  `koanf:"mstsp_min_cost"`    // -v
	TimeBoundSecs  int  `koanf:"time_bound_secs"`
}

// LogConfig controls package logging.
type LogConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	Output     string `koanf:"output"`
	FilePath   string `koanf:"file_path"`
	MaxSize    int    `koanf:"max_size"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"`
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// Validate checks the loaded configuration's invariants.
func (c *Config) Validate() error {
	var errs []string

	if c.Input.ProblemFile == "" {
		errs = append(errs, "input.problem_file is required")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if c.Log.Level != "" && !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of debug/info/warn/error, got %q", c.Log.Level))
	}

	if c.Search.LowerBound > 0 && c.Search.UpperBound > 0 && c.Search.LowerBound > c.Search.UpperBound {
		errs = append(errs, "search.lower_bound must not exceed search.upper_bound")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
