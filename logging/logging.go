// Package logging configures the process-wide structured logger. Its
// only caller in this module is internal/cliapp, which logs through a
// run-scoped logger (WithRun); the driver, oracle, and lowerbound
// packages do not log.
//
// Adapted from the teacher corpus's pkg/logger: log/slog for structured
// output, gopkg.in/natefinch/lumberjack.v2 for file rotation when
// Output is "file".
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the process-wide logger; the package's init sets it to an
// info-level JSON logger on stdout, and Init/InitWithConfig replace it
// (mirrors the process-wide RNG of spec.md §5: a single deliberately
// shared piece of global state, set at startup).
var Log *slog.Logger

// Config controls the logger's level, format, and destination.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, stderr, file
	FilePath   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// Init sets up a JSON logger on stdout at the given level.
func Init(level string) {
	InitWithConfig(Config{Level: level, Format: "json", Output: "stdout"})
}

// InitWithConfig sets up the logger per cfg.
func InitWithConfig(cfg Config) {
	var lvl slog.Level
	switch cfg.Level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	var writer io.Writer
	switch cfg.Output {
	case "stderr":
		writer = os.Stderr
	case "file":
		path := cfg.FilePath
		if path == "" {
			path = "logs/arrow.log"
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			writer = os.Stdout
		} else {
			writer = &lumberjack.Logger{
				Filename:   path,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   cfg.Compress,
			}
		}
	default:
		writer = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: lvl, AddSource: lvl == slog.LevelDebug}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(writer, opts)
	} else {
		handler = slog.NewJSONHandler(writer, opts)
	}

	Log = slog.New(handler)
}

// WithRun scopes a logger to one driver invocation, tagging every line
// with its run_id (internal/cliapp generates one per run with uuid).
func WithRun(runID string) *slog.Logger {
	return Log.With("run_id", runID)
}

func init() {
	Init("info")
}
