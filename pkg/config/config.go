// Package config loads and validates the job configuration for the stagehand
// CLI. Files are YAML; decoding goes through a generic map so unknown keys
// can be rejected explicitly before the typed decode.
package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config describes one dispatch job: how many workers to spawn, how many
// runs each drives, and which listeners to wire in.
type Config struct {
	Job      string        `mapstructure:"job"`
	Workers  int           `mapstructure:"workers"`
	Runs     int           `mapstructure:"runs"`
	LogLevel string        `mapstructure:"log_level"`
	HTTP     HTTPConfig    `mapstructure:"http"`
	Redis    RedisConfig   `mapstructure:"redis"`
	Metrics  MetricsConfig `mapstructure:"metrics"`
}

// HTTPConfig controls the introspection server.
type HTTPConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// RedisConfig controls the Redis-backed run statistics actor.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// MetricsConfig controls the Prometheus listener.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Job:      "stagehand",
		Workers:  4,
		Runs:     10,
		LogLevel: "info",
		HTTP:     HTTPConfig{Addr: ":8135"},
		Redis:    RedisConfig{Addr: "localhost:6379", Prefix: "stagehand:"},
		Metrics:  MetricsConfig{Enabled: true},
	}
}

// Load reads a YAML config file, applies it over the defaults, and validates
// the result. Configuration errors abort setup: they are reported here, never
// discovered mid-run.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes over the defaults and validates.
func Parse(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("build config decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the rest of the program relies on.
func (c *Config) Validate() error {
	if c.Job == "" {
		return fmt.Errorf("invalid config: job name must not be empty")
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid config: workers must be >= 1, got %d", c.Workers)
	}
	if c.Runs < 1 {
		return fmt.Errorf("invalid config: runs must be >= 1, got %d", c.Runs)
	}
	if c.HTTP.Enabled && c.HTTP.Addr == "" {
		return fmt.Errorf("invalid config: http.addr required when http is enabled")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("invalid config: redis.addr required when redis is enabled")
	}
	return nil
}
