// Package cli implements the chartdoc command-line interface.
//
// This package provides commands for validating chart documents, projecting
// them into renderer-specific shapes, ingesting extraction result batches,
// serving the HTTP API, and managing the shape cache. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - validate: Check candidate documents against the chart document rules
//   - transform: Project a valid document into a target shape
//   - ingest: Validate a batch of extraction results, optionally storing them
//   - serve: Run the HTTP API
//   - cache: Manage the shape cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartdoc/pkg/buildinfo"
	"github.com/matzehuels/chartdoc/pkg/cache"
	"github.com/matzehuels/chartdoc/pkg/pipeline"
	"github.com/matzehuels/chartdoc/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "chartdoc"

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
	Config Config
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "chartdoc",
		Short:        "Chartdoc validates and transforms chart documents",
		Long:         `Chartdoc is a CLI tool for validating chart documents against the canonical schema and projecting them into the shapes charting libraries consume.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/chartdoc/config.toml)")

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.transformCommand())
	root.AddCommand(c.ingestCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The store is opened only
// when persist is set so validate-only commands never touch a database.
func (c *CLI) newRunner(ctx context.Context, noCache, persist bool) (*pipeline.Runner, func(), error) {
	cch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}

	var st store.Store
	if persist {
		st, err = OpenStore(ctx, c.Config.Store)
		if err != nil {
			cch.Close()
			return nil, nil, err
		}
	}

	cleanup := func() {
		cch.Close()
		if st != nil {
			st.Close()
		}
	}
	return pipeline.NewRunner(cch, nil, st, c.Logger), cleanup, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return OpenCache(ctx, c.Config.Cache)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/chartdoc/).
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

// configPath returns the default config file path (~/.config/chartdoc/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
