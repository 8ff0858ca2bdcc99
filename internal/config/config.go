package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultAddr      = ":8080"
	defaultIdleAfter = 24 * time.Hour
	defaultSweep     = 5 * time.Minute
)

// Config is the server configuration. Zero fields fall back to the environment and then
// to defaults.
type Config struct {
	Addr       string        `yaml:"addr"`
	DSN        string        `yaml:"dsn"`
	Debug      bool          `yaml:"debug"`
	LevelsFile string        `yaml:"levels_file"`
	IdleAfter  time.Duration `yaml:"idle_after"`
	SweepEvery time.Duration `yaml:"sweep_every"`
}

// Load reads a YAML file. An empty path falls back to TINYBOARDS_CONFIG; when that is
// unset too, an empty Config is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("TINYBOARDS_CONFIG")
	}
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ListenAddr returns the address to listen on: config, then TINYBOARDS_ADDR, then :8080.
func (c *Config) ListenAddr() string {
	return withEnvFallback(c.Addr, "TINYBOARDS_ADDR", defaultAddr)
}

// DatabaseDSN returns the Postgres DSN: config, then TINYBOARDS_DSN. Empty disables
// storage.
func (c *Config) DatabaseDSN() string {
	return withEnvFallback(c.DSN, "TINYBOARDS_DSN", "")
}

// IdleTimeout is how long a session may go unseen before it is dropped.
func (c *Config) IdleTimeout() time.Duration {
	if c.IdleAfter > 0 {
		return c.IdleAfter
	}
	return defaultIdleAfter
}

// SweepInterval is how often idle sessions are looked for.
func (c *Config) SweepInterval() time.Duration {
	if c.SweepEvery > 0 {
		return c.SweepEvery
	}
	return defaultSweep
}

func withEnvFallback(v, env, def string) string {
	if v != "" {
		return v
	}
	if e := os.Getenv(env); e != "" {
		return e
	}
	return def
}
