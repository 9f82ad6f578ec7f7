// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config is the server configuration
type Config struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StorageType string        `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string        `env:"REDIS_URL"`
	ResultsTTL  time.Duration `env:"RESULTS_TTL" envDefault:"24h"`
	ResultsMax  int           `env:"RESULTS_MAX" envDefault:"200"`

	AllowedOrigins   []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	ClientSendBuffer int      `env:"CLIENT_SEND_BUFFER" envDefault:"64"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads and validates the server configuration
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the parser cannot
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	switch c.StorageType {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORAGE_TYPE is %s", StorageRedis)
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be %s or %s", c.StorageType, StorageMemory, StorageRedis)
	}
	if c.ResultsMax < 1 {
		return fmt.Errorf("RESULTS_MAX must be positive, got %d", c.ResultsMax)
	}
	if c.ClientSendBuffer < 1 {
		return fmt.Errorf("CLIENT_SEND_BUFFER must be positive, got %d", c.ClientSendBuffer)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level
func (c Config) Level() slog.Level {
	level, _ := ParseLogLevel(c.LogLevel)
	return level
}

// ParseLogLevel maps debug, info, warn and error to slog levels
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
