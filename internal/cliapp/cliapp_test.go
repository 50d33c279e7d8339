package cliapp_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/arrowtsp/arrow/internal/cliapp"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_ExplicitValues(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f, err := cliapp.ParseFlags(fs, []string{"-i", "problem.tsp", "-r", "5", "-g", "7"})
	require.NoError(t, err)
	require.Equal(t, "problem.tsp", f.ProblemFile)
	require.Equal(t, 5, f.Restarts)
	require.EqualValues(t, 7, f.Seed)
}

func TestParseFlags_BalancedShortFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f, err := cliapp.ParseFlags(fs, []string{"-i", "x.tsp", "-t", "3", "-v", "1", "-u", "20"})
	require.NoError(t, err)
	require.Equal(t, 3, f.BTSPMinCost)
	require.Equal(t, 1, f.MSTSPMinCost)
	require.Equal(t, 20, f.UpperBound)
	require.Equal(t, 20, f.BTSPMaxCost)
}

func TestLoadConfig_MergesFlagsOverYAML(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "arrow.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("search:\n  restarts: 99\n"), 0o644))

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f, err := cliapp.ParseFlags(fs, []string{"-i", "x.tsp", "-r", "2", "-C", yamlPath})
	require.NoError(t, err)

	cfg, err := cliapp.LoadConfig(f)
	require.NoError(t, err)
	require.Equal(t, "x.tsp", cfg.Input.ProblemFile)
	require.Equal(t, 2, cfg.Search.Restarts) // flag wins over the YAML overlay
}

func TestLoadConfig_RejectsMissingProblemFile(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f, err := cliapp.ParseFlags(fs, []string{})
	require.NoError(t, err)

	_, err = cliapp.LoadConfig(f)
	require.Error(t, err)
}

func TestRun_BTSP_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	problemPath := filepath.Join(dir, "square.tsp")
	body := `NAME: square
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
	require.NoError(t, os.WriteFile(problemPath, []byte(body), 0o644))

	tourPath := filepath.Join(dir, "out.tour")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f, err := cliapp.ParseFlags(fs, []string{"-i", problemPath, "-T", tourPath, "-g", "1"})
	require.NoError(t, err)

	cfg, err := cliapp.LoadConfig(f)
	require.NoError(t, err)

	err = cliapp.Run(cliapp.BTSP, cfg)
	require.NoError(t, err)

	_, statErr := os.Stat(tourPath)
	require.NoError(t, statErr)
}
