// Package config loads fknode's process-wide settings.
//
// Values are layered with viper: built-in defaults, then a YAML config file
// ($XDG_CONFIG_HOME/fknode/config.yaml, ./config.yaml, or an explicit path),
// then FKNODE_* environment variables. Nested keys use underscores in the
// environment: advisory.cache_ttl is FKNODE_ADVISORY_CACHE_TTL.
//
// A Config is built once per process and passed explicitly to the
// components that need it.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/env"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FKNODE"

// Config is the resolved configuration.
type Config struct {
	Linter    string         `mapstructure:"linter"`
	Formatter string         `mapstructure:"formatter"`
	Audit     AuditConfig    `mapstructure:"audit"`
	Advisory  AdvisoryConfig `mapstructure:"advisory"`
	Cache     CacheConfig    `mapstructure:"cache"`
	Server    ServerConfig   `mapstructure:"server"`

	// Tables is built once from the defaults and never mutated.
	Tables env.CommandTables `mapstructure:"-"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

type AuditConfig struct {
	Strict bool `mapstructure:"strict"`
}

type AdvisoryConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	MemoSize int           `mapstructure:"memo_size"`

	// Retry policy for OSV queries; a server Retry-After hint overrides
	// RetryDelay up to RetryMaxDelay.
	Retries       int           `mapstructure:"retries"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
	RetryMaxDelay time.Duration `mapstructure:"retry_max_delay"`
}

type CacheConfig struct {
	Dir      string      `mapstructure:"dir"`
	Disabled bool        `mapstructure:"disabled"`
	Redis    RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("linter", env.DefaultLinter)
	v.SetDefault("formatter", env.DefaultFormatter)
	v.SetDefault("audit.strict", false)
	v.SetDefault("advisory.endpoint", "https://api.osv.dev/v1/query")
	v.SetDefault("advisory.timeout", 30*time.Second)
	v.SetDefault("advisory.cache_ttl", 24*time.Hour)
	v.SetDefault("advisory.memo_size", 512)
	v.SetDefault("advisory.retries", 3)
	v.SetDefault("advisory.retry_delay", time.Second)
	v.SetDefault("advisory.retry_max_delay", 30*time.Second)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.disabled", false)
	v.SetDefault("cache.redis.addr", "")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("server.addr", "127.0.0.1:8787")
}

// Load reads the configuration. If path is empty the default locations are
// searched and a missing file is not an error; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "fknode"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Tables = env.DefaultCommandTables()
	return cfg, nil
}

// Default returns the configuration with no file or environment applied.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	cfg.Tables = env.DefaultCommandTables()
	return cfg
}

// ResolverOptions returns the environment resolver settings.
func (c *Config) ResolverOptions() env.Options {
	return env.Options{
		Tables:    c.Tables,
		Linter:    c.Linter,
		Formatter: c.Formatter,
	}
}
