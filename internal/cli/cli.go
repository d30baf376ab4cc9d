package cli

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/buildinfo"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/cache"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/config"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/env"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/httputil"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/integrations/crates"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/integrations/goproxy"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/integrations/npm"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/integrations/osv"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/risk"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "fknode"

	// registryTTL is how long registry metadata stays cached.
	registryTTL = 6 * time.Hour
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

	// Config is loaded by the root command before any subcommand runs.
	Config *config.Config

	// Ask answers one interrogation question. When nil, each audit uses an
	// interactive yes/no prompt on the terminal.
	Ask risk.Asker

	// Exec runs an audit command. Defaults to running it as a subprocess.
	Exec AuditRunner

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), Exec: execAudit}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "fknode keeps JavaScript, Deno, Rust and Go projects in shape",
		Long:         `fknode detects a project's runtime and package manager, translates its manifest to and from a canonical package file, and audits its dependencies.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			if cfg.File != "" {
				c.Logger.Debug("loaded config", "file", cfg.File)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/fknode/config.yaml)")

	// Register all subcommands
	root.AddCommand(c.envCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.migrateCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.auditCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

func (c *CLI) settings() *config.Config {
	if c.Config == nil {
		c.Config = config.Default()
	}
	return c.Config
}

func (c *CLI) resolver() *env.Resolver {
	return env.NewResolver(c.settings().ResolverOptions())
}

// newCache returns the configured backend: redis when an address is set and
// reachable, the file cache otherwise.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Store, error) {
	cfg := c.settings().Cache
	switch {
	case noCache:
		return cache.Disabled("--no-cache"), nil
	case cfg.Disabled:
		return cache.Disabled("cache.disabled"), nil
	}
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err == nil {
			return rc, nil
		}
		c.Logger.Warn("redis cache unavailable, falling back to file cache", "addr", cfg.Redis.Addr, "err", err)
	}
	dir, err := c.fileCacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.Disabled("no cache directory"), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

func (c *CLI) fetchers(backend cache.Cache) map[deps.Registry]deps.VersionFetcher {
	return map[deps.Registry]deps.VersionFetcher{
		deps.RegistryNpm:     npm.NewClient(backend, registryTTL),
		deps.RegistryCrates:  crates.NewClient(backend, registryTTL),
		deps.RegistryGoProxy: goproxy.NewClient(backend, registryTTL),
	}
}

func (c *CLI) advisorySource(backend cache.Cache) (*osv.Client, error) {
	cfg := c.settings().Advisory
	client, err := osv.NewClient(backend, cfg.CacheTTL, cfg.MemoSize, osv.WithEndpoint(cfg.Endpoint))
	if err != nil {
		return nil, err
	}
	if cfg.Timeout > 0 {
		client.SetHTTPClient(&http.Client{Timeout: cfg.Timeout})
	}
	client.SetRetryPolicy(retryPolicy(cfg))
	return client, nil
}

func retryPolicy(cfg config.AdvisoryConfig) httputil.Policy {
	return httputil.Policy{Attempts: cfg.Retries, Delay: cfg.RetryDelay, MaxDelay: cfg.RetryMaxDelay}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/fknode/).
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

// projectArg returns the first positional argument, or the working
// directory when there is none.
func projectArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
