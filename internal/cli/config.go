package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/vpctree/pkg/errors"
)

// envSnapshot overrides the snapshot path from the config file.
const envSnapshot = "VPCTREE_SNAPSHOT"

// Cache backends selectable in the config file.
const (
	backendFile     = "file"
	backendRedis    = "redis"
	backendMemcache = "memcache"
	backendNone     = "none"
)

// Config is the contents of config.toml.
//
//	snapshot = "~/aws/snapshot"
//
//	[cache]
//	backend = "redis"
//	ttl = "12h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
type Config struct {
	Snapshot string       `toml:"snapshot"`
	Cache    CacheConfig  `toml:"cache"`
	Server   ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the report cache.
type CacheConfig struct {
	Backend  string         `toml:"backend"`
	Dir      string         `toml:"dir"`
	TTL      time.Duration  `toml:"ttl"`
	Redis    RedisConfig    `toml:"redis"`
	Memcache MemcacheConfig `toml:"memcache"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// MemcacheConfig configures the memcache cache backend.
type MemcacheConfig struct {
	Servers []string `toml:"servers"`
	Prefix  string   `toml:"prefix"`
}

// ServerConfig configures "vpctree serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
}

func defaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Backend: backendFile,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: appName + ":",
			},
			Memcache: MemcacheConfig{
				Servers: []string{"localhost:11211"},
				Prefix:  appName + ":",
			},
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// loadConfig reads the config at path. An empty path means the default
// location, which may be absent; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			applyEnv(&cfg)
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err) && !explicit:
		applyEnv(&cfg)
		return cfg, nil
	case os.IsNotExist(err):
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
	case err != nil:
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envSnapshot); v != "" {
		cfg.Snapshot = v
	}
	cfg.Snapshot = expandHome(cfg.Snapshot)
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendMemcache, backendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid cache backend %q (must be one of: file, redis, memcache, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == backendMemcache && len(c.Cache.Memcache.Servers) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "memcache backend needs at least one server")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return nil
}
