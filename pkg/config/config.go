// Package config loads tentlabel configuration from TOML files.
//
// Configuration supplies defaults for solver tuning, the result cache, and
// the HTTP server; CLI flags override anything set here. The default location
// follows XDG conventions: ~/.config/tentlabel/config.toml.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/sganbold/tentlabel/pkg/errors"
)

// appName is the directory name used under the XDG config home.
const appName = "tentlabel"

// Config is the root configuration.
type Config struct {
	Solver SolverConfig `toml:"solver"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// SolverConfig tunes the heuristic solvers.
type SolverConfig struct {
	// Mode is the default heuristic mode: "fast" or "accurate".
	Mode string `toml:"mode"`
	// Attempts is the randomized attempt budget per k in accurate mode.
	Attempts int `toml:"attempts"`
	// MaxKMultiplier caps heuristic search at lowerBound * multiplier.
	MaxKMultiplier int `toml:"max_k_multiplier"`
	// Seed fixes the random source when non-zero, for reproducible runs.
	Seed int64 `toml:"seed"`
}

// CacheConfig selects and tunes the result cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir overrides the file cache directory (default: XDG cache home).
	Dir string `toml:"dir"`
	// Addr is the Redis host:port for the redis backend.
	Addr string `toml:"addr"`
	// TTLHours bounds the lifetime of cached results; 0 means no expiry.
	TTLHours int `toml:"ttl_hours"`
}

// ServerConfig tunes the HTTP API.
type ServerConfig struct {
	// Addr is the listen address for `tentlabel serve`.
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Solver: SolverConfig{
			Mode:           "accurate",
			Attempts:       100,
			MaxKMultiplier: 5,
		},
		Cache: CacheConfig{
			Backend: "file",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the TOML file at path, layered over defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDefault loads from the conventional XDG location.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	return Load(path)
}

// DefaultPath returns the conventional config file location,
// honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Validate checks configuration invariants. Violations are coded
// configuration errors, raised before any solve begins.
func (c Config) Validate() error {
	if c.Solver.MaxKMultiplier < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "solver.max_k_multiplier must be at least 1, got %d", c.Solver.MaxKMultiplier)
	}
	if c.Solver.Attempts < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "solver.attempts must be at least 1, got %d", c.Solver.Attempts)
	}
	switch c.Solver.Mode {
	case "fast", "accurate":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "solver.mode must be \"fast\" or \"accurate\", got %q", c.Solver.Mode)
	}
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be \"file\", \"redis\", or \"none\", got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.addr is required for the redis backend")
	}
	return nil
}
