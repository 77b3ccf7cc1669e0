// Package cli implements the amidakuji command-line interface.
//
// This package provides commands for drawing ladder lotteries, re-rendering
// and browsing stored draws, sharing lottery setups as codes and QR images,
// animating a reveal in the terminal, running the API server, and managing
// the artifact cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - draw: Run a lottery and render the result
//   - render: Re-render a stored draw
//   - reveal: Animate a participant's path in the terminal
//   - share: Encode, decode, and QR-encode lottery setups
//   - history: Browse and manage stored draws
//   - serve: Run the HTTP API server
//   - cache: Manage the artifact cache
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/amidalab/amidakuji/pkg/buildinfo"
	"github.com/amidalab/amidakuji/pkg/cache"
	"github.com/amidalab/amidakuji/pkg/config"
	"github.com/amidalab/amidakuji/pkg/history"
	"github.com/amidalab/amidakuji/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "amidakuji"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and the user's
// config file loaded (defaults if absent).
func New(w io.Writer, level log.Level) *CLI {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})

	cfg, err := config.Load("")
	if err != nil {
		logger.Warn("config file ignored", "err", err)
		cfg = config.Default()
	}

	return &CLI{Logger: logger, Config: cfg}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Amidakuji draws fair ladder lotteries",
		Long:         `Amidakuji is a CLI tool for running ladder lotteries (ghost leg drawings): it assigns participants to results through a randomly runged ladder while keeping every assignment exactly as likely as any other.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.revealCommand())
	root.AddCommand(c.shareCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache builds the cache backend selected by config. Backend failures
// degrade to a null cache so the lottery still runs.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}

	if c.Config.Cache.Backend == config.BackendRedis {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.Redis.Addr,
			Password: c.Config.Cache.Redis.Password,
			DB:       c.Config.Cache.Redis.DB,
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return rc, nil
	}

	fc, err := c.fileCache()
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// newHistoryStore builds the draw store selected by config.
func (c *CLI) newHistoryStore(ctx context.Context) (history.Store, error) {
	if c.Config.History.Backend == config.BackendMongo {
		return history.NewMongoStore(ctx, history.MongoConfig{
			URI:        c.Config.History.Mongo.URI,
			Database:   c.Config.History.Mongo.Database,
			Collection: c.Config.History.Mongo.Collection,
		})
	}
	return history.NewFileStore(c.Config.History.Dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/amidakuji/).
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

// applyLadderDefaults layers the config file's generation settings onto
// options the flags did not set.
func (c *CLI) applyLadderDefaults(opts *pipeline.Options) {
	if opts.MinRows == 0 {
		opts.MinRows = c.Config.Ladder.MinRows
	}
	if opts.RungProb == 0 {
		opts.RungProb = c.Config.Ladder.RungProb
	}
	if opts.FillProb == 0 {
		opts.FillProb = c.Config.Ladder.FillProb
	}
	if !opts.NoFill {
		opts.NoFill = c.Config.Ladder.NoFill
	}
}

// parseFormats parses a comma-separated format string into a slice,
// trimming whitespace around each format.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// splitEntries parses a comma-separated entry list, trimming whitespace
// around each entry.
func splitEntries(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
