package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds runtime configuration for the tracker and its serve mode.
type Config struct {
	DefaultTarget int `env:"DREAD_DEFAULT_TARGET" envDefault:"50"`
	Log           LogConfig
	Storage       StorageConfig
	HTTP          HTTPConfig
	Metrics       MetricsConfig
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// ErrInvalidConfig marks configuration values that parse but make no sense.
var ErrInvalidConfig = errors.New("invalid config")

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	var cfg Config
	if err := parseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the tracker cannot run with.
func (c Config) Validate() error {
	if c.DefaultTarget < 0 {
		return fmt.Errorf("%w: %s must be >= 0", ErrInvalidConfig, envDefaultTarget)
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, envShutdownTimeout)
	}
	return nil
}

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration
