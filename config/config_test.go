package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arrowtsp/arrow/config"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.NewLoader(config.WithConfigPaths("nonexistent.yaml")).Load()
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Search.Restarts)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, ":9090", cfg.Metrics.Addr)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arrow.yaml")
	yamlBody := "search:\n  restarts: 7\n  seed: 42\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o644))

	cfg, err := config.NewLoader(config.WithConfigPaths(path)).Load()
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Search.Restarts)
	require.EqualValues(t, 42, cfg.Search.Seed)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arrow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  restarts: 3\n"), 0o644))

	t.Setenv("ARROW_SEARCH_RESTARTS", "9")

	cfg, err := config.NewLoader(config.WithConfigPaths(path), config.WithEnvPrefix("ARROW_")).Load()
	require.NoError(t, err)
	require.Equal(t, 9, cfg.Search.Restarts)
}

func TestValidate_RejectsMissingProblemFile(t *testing.T) {
	cfg := config.Config{}
	err := cfg.Validate()
	require.Error(t, err)
}

func TestValidate_RejectsBadLogLevel(t *testing.T) {
	cfg := config.Config{Input: config.InputConfig{ProblemFile: "x.tsp"}, Log: config.LogConfig{Level: "verbose"}}
	err := cfg.Validate()
	require.Error(t, err)
}

func TestValidate_RejectsInvertedBounds(t *testing.T) {
	cfg := config.Config{
		Input:  config.InputConfig{ProblemFile: "x.tsp"},
		Search: config.SearchConfig{LowerBound: 10, UpperBound: 5},
	}
	err := cfg.Validate()
	require.Error(t, err)
}

func TestValidate_AcceptsWellFormed(t *testing.T) {
	cfg := config.Config{
		Input:  config.InputConfig{ProblemFile: "x.tsp"},
		Log:    config.LogConfig{Level: "info"},
		Search: config.SearchConfig{LowerBound: 1, UpperBound: 5},
	}
	require.NoError(t, cfg.Validate())
}
