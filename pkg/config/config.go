// Package config loads the optional user configuration file.
//
// Configuration lives at ~/.config/amidakuji/config.toml. Every field has a
// working default, so a missing file is not an error and a partial file only
// overrides what it names. Flags always win over file values; the CLI treats
// the file as the flag-default layer.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/amidalab/amidakuji/pkg/errors"
	"github.com/amidalab/amidakuji/pkg/ladder"
)

// Backend names accepted by the cache and history sections.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the full configuration file.
type Config struct {
	Ladder  LadderConfig  `toml:"ladder"`
	Cache   CacheConfig   `toml:"cache"`
	History HistoryConfig `toml:"history"`
	Server  ServerConfig  `toml:"server"`
}

// LadderConfig overrides generation defaults. RungProb must lie in (0, 1)
// and FillProb in [0, 1), the ranges generation honors; a FillProb of 0
// disables decorative filling.
type LadderConfig struct {
	MinRows  int     `toml:"min_rows"`
	RungProb float64 `toml:"rung_prob"`
	FillProb float64 `toml:"fill_prob"`
	NoFill   bool    `toml:"no_fill"`
}

// CacheConfig selects and configures the artifact cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Empty means the default
	// user cache directory.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// HistoryConfig selects and configures the draw history backend.
type HistoryConfig struct {
	// Backend is "file" or "mongo".
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Empty means the default
	// user config directory.
	Dir string `toml:"dir"`

	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig configures the mongo history backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the API server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`

	// ShareBaseURL is the base URL embedded in share links and QR codes.
	ShareBaseURL string `toml:"share_base_url"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Ladder: LadderConfig{
			MinRows:  ladder.DefaultMinRows,
			RungProb: ladder.DefaultRungProbability,
			FillProb: ladder.DefaultFillProbability,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		History: HistoryConfig{
			Backend: BackendFile,
			Mongo:   MongoConfig{URI: "mongodb://localhost:27017"},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ShareBaseURL: "http://localhost:8080/draw",
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "get home dir")
	}
	return filepath.Join(home, ".config", "amidakuji", "config.toml"), nil
}

// Load reads the config file at path, layered over the defaults. An empty
// path means the default location. A missing file returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %q", path)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	switch c.History.Backend {
	case BackendFile, BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid history backend: %q (must be one of: file, mongo)", c.History.Backend)
	}
	if c.Ladder.RungProb <= 0 || c.Ladder.RungProb >= 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"rung_prob must be in (0, 1), got %g", c.Ladder.RungProb)
	}
	if c.Ladder.FillProb < 0 || c.Ladder.FillProb >= 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"fill_prob must be in [0, 1), got %g; set no_fill to disable filling", c.Ladder.FillProb)
	}
	return nil
}
