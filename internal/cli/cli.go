// Package cli implements the sorttrace command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sorttrace/pkg/buildinfo"
	"github.com/matzehuels/sorttrace/pkg/cache"
	"github.com/matzehuels/sorttrace/pkg/config"
	"github.com/matzehuels/sorttrace/pkg/sweep"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "sorttrace"

	// redisKeyPrefix scopes cache keys in a shared Redis instance.
	redisKeyPrefix = appName + ":"
)

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

	configPath string
	noCache    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Sorttrace animates merge sort and steps through quicksort",
		Long: `Sorttrace traces merge sort and quicksort step by step. It animates the
merge sort recursion in the terminal, steps forwards and backwards through a
quicksort call tree, renders both trees with Graphviz, and compares the
comparison counts of both algorithms against the merge sort bounds.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/sorttrace/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the result cache")

	root.AddCommand(c.mergeCommand())
	root.AddCommand(c.quickCommand())
	root.AddCommand(c.boundsCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and attaches the logger to the command
// context. It runs before every subcommand.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	registerLogHooks(c.Logger)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// settings returns the loaded configuration, or the defaults when setup has
// not run.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// newSweepRunner creates a sweep runner backed by the configured cache. The
// caller must close the returned cache.
func (c *CLI) newSweepRunner(ctx context.Context) (*sweep.Runner, cache.Cache, error) {
	store, keyer, err := c.newCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	r := sweep.NewRunner(store, keyer, c.Logger)
	if ttl := c.settings().TTL(); ttl > 0 {
		r.TTL = ttl
	}
	return r, store, nil
}

// newCache opens the cache backend selected by the configuration. --no-cache
// and backend "none" both yield a NullCache.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	cfg := c.settings()
	keyer := cache.NewDefaultKeyer()
	if c.noCache {
		return cache.NewNullCache(), keyer, nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), keyer, nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return rc, cache.NewScopedKeyer(keyer, redisKeyPrefix), nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), keyer, nil
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, keyer, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/sorttrace/).
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
