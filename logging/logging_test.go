package logging_test

import (
	"path/filepath"
	"testing"

	"github.com/arrowtsp/arrow/logging"
	"github.com/stretchr/testify/require"
)

func TestInit_SetsLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "error", "unknown"}
	for _, lvl := range levels {
		logging.Init(lvl)
		require.NotNil(t, logging.Log)
	}
}

func TestInitWithConfig_TextStderr(t *testing.T) {
	logging.InitWithConfig(logging.Config{Level: "debug", Format: "text", Output: "stderr"})
	require.NotNil(t, logging.Log)
}

func TestInitWithConfig_FileOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.log")

	logging.InitWithConfig(logging.Config{Level: "info", Format: "json", Output: "file", FilePath: path})
	require.NotNil(t, logging.Log)
	logging.Log.Info("hello", "k", "v")
}

func TestWithRun_TagsRunID(t *testing.T) {
	logging.Init("info")
	scoped := logging.WithRun("abc-123")
	require.NotNil(t, scoped)
}
