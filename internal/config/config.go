// Package config loads the bridge settings from a YAML (or JSON) file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fdurupinar/bioagents/internal/logging"
	"github.com/fdurupinar/bioagents/pkg/composer"
	"github.com/fdurupinar/bioagents/pkg/diagram"
	"github.com/fdurupinar/bioagents/pkg/session"
	"gopkg.in/yaml.v3"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
)

// Config is the full bridge configuration.
type Config struct {
	Host              string        `yaml:"host" json:"host"`
	Port              int           `yaml:"port" json:"port"`
	Name              string        `yaml:"name" json:"name"`
	Format            string        `yaml:"format" json:"format"`
	RelaySpoken       bool          `yaml:"relay_spoken" json:"relay_spoken"`
	StartConversation bool          `yaml:"start_conversation" json:"start_conversation"`
	ReadBuffer        int           `yaml:"read_buffer" json:"read_buffer"`
	MaxUnit           int           `yaml:"max_unit" json:"max_unit"`
	ReadTimeout       time.Duration `yaml:"read_timeout" json:"read_timeout"`
	LogLevel          string        `yaml:"log_level" json:"log_level"`
	MetricsAddr       string        `yaml:"metrics_addr" json:"metrics_addr"`
	Cache             CacheConfig   `yaml:"cache" json:"cache"`
}

// CacheConfig selects and configures the diagram cache.
type CacheConfig struct {
	Backend string      `yaml:"backend" json:"backend"`
	Dir     string      `yaml:"dir" json:"dir"`
	Redis   RedisConfig `yaml:"redis" json:"redis"`
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Host:       session.DefaultHost,
		Port:       session.DefaultPort,
		Name:       composer.DefaultName,
		Format:     string(diagram.FormatSBGN),
		ReadBuffer: session.DefaultReadBufferSize,
		MaxUnit:    session.DefaultMaxUnitSize,
		LogLevel:   "info",
		Cache: CacheConfig{
			Backend: CacheNone,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "bsb:diagram:",
			},
		},
	}
}

// Load reads path over the defaults. An empty path returns Default().
// Fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		// Durations in JSON are integer nanoseconds.
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Host) == "" {
		errs = append(errs, errors.New("host: must not be empty"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port: %d out of range", c.Port))
	}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, errors.New("name: must not be empty"))
	}
	if _, err := diagram.ParseFormat(c.Format); err != nil {
		errs = append(errs, fmt.Errorf("format: %w", err))
	}
	if c.ReadBuffer <= 0 {
		errs = append(errs, fmt.Errorf("read_buffer: %d must be positive", c.ReadBuffer))
	}
	if c.MaxUnit <= 0 {
		errs = append(errs, fmt.Errorf("max_unit: %d must be positive", c.MaxUnit))
	}
	if c.ReadTimeout < 0 {
		errs = append(errs, fmt.Errorf("read_timeout: %s must not be negative", c.ReadTimeout))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheFile, "":
	case CacheRedis:
		if strings.TrimSpace(c.Cache.Redis.Addr) == "" {
			errs = append(errs, errors.New("cache.redis.addr: required for the redis backend"))
		}
		if c.Cache.Redis.TTL < 0 {
			errs = append(errs, fmt.Errorf("cache.redis.ttl: %s must not be negative", c.Cache.Redis.TTL))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.backend: unknown backend %q", c.Cache.Backend))
	}

	return errors.Join(errs...)
}

// Session derives the session settings.
func (c Config) Session() session.Config {
	return session.Config{
		Host:              c.Host,
		Port:              c.Port,
		Name:              c.Name,
		ReadBufferSize:    c.ReadBuffer,
		MaxUnitSize:       c.MaxUnit,
		ReadTimeout:       c.ReadTimeout,
		RelaySpoken:       c.RelaySpoken,
		StartConversation: c.StartConversation,
	}
}
