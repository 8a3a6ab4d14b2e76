// Package cli implements the vpctree command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vpctree/pkg/buildinfo"
	"github.com/matzehuels/vpctree/pkg/cache"
	"github.com/matzehuels/vpctree/pkg/errors"
	"github.com/matzehuels/vpctree/pkg/pipeline"
	"github.com/matzehuels/vpctree/pkg/source/snapshot"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "vpctree"

	// sharedPingTimeout bounds the reachability check of redis and memcached.
	sharedPingTimeout = 2 * time.Second
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

	configPath   string
	snapshotPath string
	config       Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level. At debug level pipeline and cache
// events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		installDebugHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root command is usable on its own: "vpctree VPC_ID" prints one tree
// and "vpctree -l" lists the VPCs.
func (c *CLI) RootCommand() *cobra.Command {
	var listVPCs bool

	root := &cobra.Command{
		Use:   "vpctree [VPC_ID]",
		Short: "VPC Tree, an AWS resource tree generator",
		Long: `VPC Tree renders the resources of an AWS Virtual Private Cloud as a text tree:
subnets and their instances, security groups, load balancers, target groups
and auto scaling groups.

Resources are read from a snapshot of AWS CLI "describe-*" JSON output, either
a single file or a directory of files.`,
		Example: `  vpctree -s ./snapshot -l
  vpctree -s ./snapshot vpc-0a1b2c3d
  vpctree tree vpc-0a1b2c3d -o vpc.txt`,
		Version:           buildinfo.Get().Version,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case listVPCs:
				return c.runList(cmd.Context(), cmd.OutOrStdout(), pipeline.FormatText)
			case len(args) == 1:
				return c.runTree(cmd.Context(), cmd.OutOrStdout(), args[0], treeOptions{format: pipeline.FormatText})
			}
			return cmd.Help()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.Flags().BoolVarP(&listVPCs, "list-vpcs", "l", false, "generate a list of VPCs")
	root.PersistentFlags().StringVarP(&c.snapshotPath, "snapshot", "s", "",
		"snapshot file or directory (default from config or $"+envSnapshot+")")
	root.PersistentFlags().StringVar(&c.configPath, "config", "",
		"config file (default $XDG_CONFIG_HOME/vpctree/config.toml)")

	root.AddCommand(c.treeCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Source and Runner Factory
// =============================================================================

// snapshot returns the snapshot path: the flag, else $VPCTREE_SNAPSHOT, else
// the config file.
func (c *CLI) snapshot() string {
	if c.snapshotPath != "" {
		return c.snapshotPath
	}
	return c.config.Snapshot
}

// loadSnapshot reads the configured snapshot.
func (c *CLI) loadSnapshot() (*snapshot.Snapshot, error) {
	path := c.snapshot()
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"no snapshot given: use --snapshot, set $%s or add \"snapshot\" to the config file", envSnapshot)
	}
	snap, err := snapshot.Load(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded snapshot", "path", path, "fingerprint", snap.Fingerprint()[:12])
	return snap, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	// Trees rendered by another build are never reused.
	keyer := cache.NewScopedKeyer(nil, buildinfo.Get().Version+":")
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	runner.TTL = c.config.Cache.TTL
	return runner, nil
}

// sharedCache is a cache on another host that can be probed before use.
type sharedCache interface {
	cache.Cache
	Ping(ctx context.Context) error
}

// newCache opens the configured cache backend. An unreachable redis or
// memcached server downgrades to no caching with a warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.config.Cache
	var shared sharedCache
	switch {
	case noCache || cfg.Backend == backendNone:
		return cache.NewNullCache(), nil
	case cfg.Backend == backendRedis:
		shared = cache.NewRedisCache(cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	case cfg.Backend == backendMemcache:
		shared = cache.NewMemcacheCache(cache.MemcacheOptions{
			Servers: cfg.Memcache.Servers,
			Prefix:  cfg.Memcache.Prefix,
		})
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, sharedPingTimeout)
	defer cancel()
	if err := shared.Ping(pingCtx); err != nil {
		c.Logger.Warn("cache unavailable, caching disabled", "backend", cfg.Backend, "err", err)
		_ = shared.Close()
		return cache.NewNullCache(), nil
	}
	return shared, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/vpctree/).
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

// configDir returns the config directory using XDG standard (~/.config/vpctree/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
