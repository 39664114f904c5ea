package config

import (
	"fmt"
	"strings"
)

// StorageConfig selects where the tracker state and week archive live.
type StorageConfig struct {
	Backend        string `env:"DREAD_STORE_BACKEND" envDefault:"file"`
	Path           string `env:"DREAD_STORE_PATH" envDefault:"data/dread-tracker.json"`
	ArchiveDir     string `env:"DREAD_ARCHIVE_DIR" envDefault:"data/weeks"`
	RetentionWeeks int    `env:"DREAD_ARCHIVE_RETENTION_WEEKS" envDefault:"0"`
}

// Validate checks the backend name and path.
func (s StorageConfig) Validate() error {
	switch strings.ToLower(s.Backend) {
	case BackendFile, BackendBolt, BackendSQLite:
	default:
		return fmt.Errorf("%w: %s=%q (want file, bolt or sqlite)", ErrInvalidConfig, envStoreBackend, s.Backend)
	}
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidConfig, envStorePath)
	}
	if s.RetentionWeeks < 0 {
		return fmt.Errorf("%w: %s must be >= 0", ErrInvalidConfig, envArchiveWeeks)
	}
	return nil
}
