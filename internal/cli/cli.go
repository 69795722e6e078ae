// Package cli implements the tentlabel command-line interface.
//
// This package provides commands for computing edge irregularity strength
// labelings, validating labelings, serving the HTTP API, and managing the
// result cache. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - solve: Search for an edge-irregular labeling of a graph
//   - validate: Check a labeling file for duplicate edge weights
//   - serve: Run the HTTP API
//   - cache: Manage the result cache
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sganbold/tentlabel/pkg/buildinfo"
	"github.com/sganbold/tentlabel/pkg/cache"
	"github.com/sganbold/tentlabel/pkg/config"
	"github.com/sganbold/tentlabel/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "tentlabel"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and the configuration
// loaded from the default path (built-in defaults when no file exists).
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
	cfg, err := config.LoadDefault()
	if err != nil {
		c.Logger.Warn("config load failed, using defaults", "err", err)
		cfg = config.Default()
	}
	c.Config = cfg
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Tentlabel computes edge irregularity strength labelings",
		Long:         `Tentlabel searches for vertex k-labelings of Mongolian tent and circulant graphs in which every edge weight is distinct, and reports the smallest k for which one exists.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(ctx, noCache), c.Logger)
}

// newCache builds the configured cache backend. Any backend setup failure
// degrades to the null cache rather than failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache || c.Config.Cache.Backend == "none" {
		return cache.NewNullCache()
	}
	if c.Config.Cache.Backend == "redis" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.Config.Cache.Addr})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "addr", c.Config.Cache.Addr, "err", err)
			return cache.NewNullCache()
		}
		return rc
	}
	dir := c.Config.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tentlabel/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
