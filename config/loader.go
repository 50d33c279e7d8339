package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// defaultConfigPaths are checked in order; the first one present wins.
var defaultConfigPaths = []string{
	"arrow.yaml",
	"config/arrow.yaml",
	"/etc/arrow/arrow.yaml",
}

const defaultEnvPrefix = "ARROW_"

// Loader builds a Config from, in increasing priority: built-in
// defaults, an optional YAML file, then environment variables. CLI
// flags are the highest-priority layer and are applied afterward by
// internal/cliapp, not by Loader itself.
type Loader struct {
	k           *koanf.Koanf
	configPaths []string
	envPrefix   string
}

// LoaderOption customizes a Loader's search paths or env prefix.
type LoaderOption func(*Loader)

// WithConfigPaths overrides the YAML file search path.
func WithConfigPaths(paths ...string) LoaderOption {
	return func(l *Loader) { l.configPaths = paths }
}

// WithEnvPrefix overrides the environment variable prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) { l.envPrefix = prefix }
}

// NewLoader builds a Loader with the package defaults, then applies opts.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		k:           koanf.New("."),
		configPaths: defaultConfigPaths,
		envPrefix:   defaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load runs the defaults -> YAML file -> env precedence chain and
// returns the resulting Config. It does not call Validate;
// internal/cliapp does so after applying CLI flags.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadDefaults(); err != nil {
		return nil, err
	}
	if err := l.loadConfigFile(); err != nil {
		return nil, err
	}
	if err := l.loadEnv(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (l *Loader) loadDefaults() error {
	defaults := map[string]any{
		"search.restarts":        1,
		"search.stall_count":     0,
		"search.kicks":           0,
		"search.lower_bound":     0,
		"search.upper_bound":     0,
		"search.basic_attempts":  1,
		"search.shake_attempts":  0,
		"search.shake_rand_min":  0,
		"search.shake_rand_max":  0,
		"search.seed":            int64(0),
		"search.deep_copy":       false,
		"search.infinity":        1 << 30,
		"search.confirm_sol":     false,
		"search.suppress_ebst":   false,
		"search.find_short_tour": false,
		"search.length":          0,
		"search.solve_mstsp":     false,
		"search.lb_only":         false,
		"search.btsp_min_cost":   0,
		"search.btsp_max_cost":   0,
		"search.mstsp_min_cost":  0,
		"search.time_bound_secs": 0,
		"log.level":              "info",
		"log.format":             "json",
		"log.output":             "stdout",
		"log.max_size":           100,
		"log.max_backups":        3,
		"log.max_age":            28,
		"log.compress":           true,
		"metrics.enabled":        false,
		"metrics.addr":           ":9090",
	}

	return l.k.Load(confmap.Provider(defaults, "."), nil)
}

// loadConfigFile loads the first existing path in l.configPaths, or the
// path named by ARROW_CONFIG_PATH if set. A missing file is not an error.
func (l *Loader) loadConfigFile() error {
	if override := os.Getenv("ARROW_CONFIG_PATH"); override != "" {
		return l.k.Load(file.Provider(override), yaml.Parser())
	}

	for _, path := range l.configPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		return l.k.Load(file.Provider(path), yaml.Parser())
	}

	return nil
}

func (l *Loader) loadEnv() error {
	return l.k.Load(env.Provider(l.envPrefix, ".", func(s string) string {
		trimmed := strings.TrimPrefix(s, l.envPrefix)

		return strings.ToLower(strings.ReplaceAll(trimmed, "_", "."))
	}), nil)
}

// MustLoad loads the configuration and panics on error, for callers
// that would exit on failure anyway. The cmd/* entry points load their
// configuration through internal/cliapp.LoadConfig instead.
func MustLoad(opts ...LoaderOption) *Config {
	cfg, err := NewLoader(opts...).Load()
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load is a package-level convenience wrapping NewLoader(opts...).Load().
func Load(opts ...LoaderOption) (*Config, error) {
	return NewLoader(opts...).Load()
}
