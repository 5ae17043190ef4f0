// Package config carries the settings for the CLI and the HTTP server:
// defaults, an optional yaml file and environment overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

type Config struct {
	Server    Server    `yaml:"server"`
	RateLimit RateLimit `yaml:"rate_limit"`
	Cache     Cache     `yaml:"cache"`
	Savings   Savings   `yaml:"savings"`
	SeedFile  string    `yaml:"seed_file"`
	Logging   Logging   `yaml:"logging"`
	AI        AI        `yaml:"ai"`
}

type Server struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type RateLimit struct {
	Capacity int           `yaml:"capacity"`
	Window   time.Duration `yaml:"window"`
}

type Cache struct {
	Backend    string        `yaml:"backend"`
	RedisAddr  string        `yaml:"redis_addr"`
	TTL        time.Duration `yaml:"ttl"`
	KeyPrefix  string        `yaml:"key_prefix"`
	MaxEntries int           `yaml:"max_entries"` // memory backend only
}

type Savings struct {
	IncludeCO2     bool    `yaml:"include_co2"`
	EmissionFactor float64 `yaml:"emission_factor_kg_per_kwh"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type AI struct {
	APIKey  string        `yaml:"api_key"`
	URL     string        `yaml:"url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the settings used when no file or variable overrides them.
func Default() Config {
	return Config{
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		RateLimit: RateLimit{
			Capacity: 30,
			Window:   time.Minute,
		},
		Cache: Cache{
			Backend:    CacheMemory,
			RedisAddr:  "localhost:6379",
			TTL:        24 * time.Hour,
			KeyPrefix:  "ahorro-energia:",
			MaxEntries: 10_000,
		},
		Savings: Savings{
			IncludeCO2:     true,
			EmissionFactor: 0.5,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		AI: AI{
			Timeout: 30 * time.Second,
		},
	}
}

// Load builds the configuration from the defaults, the yaml file at path
// (skipped when path is empty) and the environment.
func Load(path string, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if err := cfg.applyEnv(lookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) error {
	overrides := map[string]*string{
		"AHORRO_ADDR":          &c.Server.Addr,
		"AHORRO_LOG_LEVEL":     &c.Logging.Level,
		"AHORRO_LOG_FORMAT":    &c.Logging.Format,
		"AHORRO_CACHE_BACKEND": &c.Cache.Backend,
		"AHORRO_REDIS_ADDR":    &c.Cache.RedisAddr,
		"AHORRO_SEED_FILE":     &c.SeedFile,
		"OPENAI_API_KEY":       &c.AI.APIKey,
	}
	for name, dst := range overrides {
		if v, ok := lookupEnv(name); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookupEnv("AHORRO_INCLUDE_CO2"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("AHORRO_INCLUDE_CO2: %w", err)
		}
		c.Savings.IncludeCO2 = b
	}
	return nil
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.RateLimit.Capacity <= 0 {
		return fmt.Errorf("rate_limit.capacity must be > 0, got %d", c.RateLimit.Capacity)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be > 0, got %s", c.RateLimit.Window)
	}
	switch c.Cache.Backend {
	case CacheNone:
	case CacheMemory:
		if c.Cache.MaxEntries <= 0 {
			return fmt.Errorf("cache.max_entries must be > 0, got %d", c.Cache.MaxEntries)
		}
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be >= 0, got %s", c.Cache.TTL)
	}
	if c.Savings.EmissionFactor < 0 {
		return fmt.Errorf("savings.emission_factor_kg_per_kwh must be >= 0, got %g", c.Savings.EmissionFactor)
	}
	return nil
}
