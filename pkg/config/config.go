// Package config loads sorttrace settings from a TOML file.
//
// The default location is $XDG_CONFIG_HOME/sorttrace/config.toml, falling
// back to ~/.config/sorttrace/config.toml. A missing file is not an error:
// every field has a default, and command-line flags override both.
//
//	[animation]
//	interval_ms = 120
//
//	[input]
//	size = 8
//
//	[sweep]
//	random_lists = 5
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sorttrace/pkg/errors"
)

const appName = "sorttrace"

// Animation limits for the merge sort player.
const (
	DefaultIntervalMS = 120
	MinIntervalMS     = 1
	MaxIntervalMS     = 2000
)

// Random input limits for the merge sort player.
const (
	DefaultInputSize = 8
	MaxInputSize     = 600
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the decoded configuration file.
type Config struct {
	Animation Animation `toml:"animation"`
	Input     Input     `toml:"input"`
	Sweep     Sweep     `toml:"sweep"`
	Cache     Cache     `toml:"cache"`
	Server    Server    `toml:"server"`
}

// Animation configures the merge sort player.
type Animation struct {
	IntervalMS int `toml:"interval_ms"`
}

// Input configures generated arrays. Values, when set, replaces generation.
type Input struct {
	Size     int    `toml:"size"`
	MaxValue int    `toml:"max_value,omitempty"`
	Seed     uint64 `toml:"seed,omitempty"`
	Values   []int  `toml:"values,omitempty"`
}

// Sweep configures the comparison sweep.
type Sweep struct {
	Sizes       []int `toml:"sizes,omitempty"`
	RandomLists int   `toml:"random_lists"`
	MinSize     int   `toml:"min_size"`
	MaxSize     int   `toml:"max_size"`
	MaxValue    int   `toml:"max_value"`
}

// Cache selects and configures the result cache.
type Cache struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir,omitempty"`
	RedisURL string `toml:"redis_url"`
	TTLHours int    `toml:"ttl_hours"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Animation: Animation{IntervalMS: DefaultIntervalMS},
		Input:     Input{Size: DefaultInputSize},
		Sweep: Sweep{
			RandomLists: 5,
			MinSize:     100,
			MaxSize:     10_000,
			MaxValue:    10_000,
		},
		Cache: Cache{
			Backend:  BackendFile,
			RedisURL: "redis://localhost:6379/0",
			TTLHours: 24 * 7,
		},
		Server: Server{Addr: ":8080"},
	}
}

// DefaultPath returns the default configuration file path.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path over the defaults. An empty path means
// DefaultPath. A missing file yields the defaults; unknown keys are errors.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Animation.IntervalMS < MinIntervalMS || c.Animation.IntervalMS > MaxIntervalMS {
		return invalid("animation.interval_ms must be between %d and %d, got %d",
			MinIntervalMS, MaxIntervalMS, c.Animation.IntervalMS)
	}
	if c.Input.Size < 1 || c.Input.Size > MaxInputSize {
		return invalid("input.size must be between 1 and %d, got %d", MaxInputSize, c.Input.Size)
	}
	if c.Input.MaxValue < 0 {
		return invalid("input.max_value must not be negative")
	}
	if c.Sweep.RandomLists < 0 {
		return invalid("sweep.random_lists must not be negative")
	}
	if c.Sweep.MinSize < 1 || c.Sweep.MaxSize < c.Sweep.MinSize {
		return invalid("sweep size range %d..%d is invalid", c.Sweep.MinSize, c.Sweep.MaxSize)
	}
	for _, n := range c.Sweep.Sizes {
		if n < 1 {
			return invalid("sweep.sizes must be positive, got %d", n)
		}
	}
	if c.Sweep.MaxValue < 1 {
		return invalid("sweep.max_value must be positive")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return invalid("cache.redis_url is required for the redis backend")
		}
	default:
		return invalid("cache.backend must be one of file, redis, none; got %q", c.Cache.Backend)
	}
	if c.Cache.TTLHours < 0 {
		return invalid("cache.ttl_hours must not be negative")
	}
	if c.Server.Addr == "" {
		return invalid("server.addr is required")
	}
	return nil
}

// Interval returns the animation tick interval.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Animation.IntervalMS) * time.Millisecond
}

// TTL returns the cache entry lifetime. Zero means no expiry.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// InputMaxValue returns the largest generated value for an array of n
// elements: input.max_value if set, else 5n.
func (c *Config) InputMaxValue(n int) int {
	if c.Input.MaxValue > 0 {
		return c.Input.MaxValue
	}
	return n * 5
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}
