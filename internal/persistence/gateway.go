// Package persistence stores the tracker state document in one of several
// local backends. Every backend keeps a single document under one key.
package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/preston-bernstein/dread-tracker/internal/config"
	"github.com/preston-bernstein/dread-tracker/internal/state"
)

// StateKey is the key the state document is stored under.
const StateKey = "dreadCalculatorData"

// Gateway loads and saves the whole state document.
type Gateway interface {
	// Load returns domain.ErrNotFound when nothing has been stored yet.
	Load(ctx context.Context) (state.State, error)
	Save(ctx context.Context, st state.State) error
	Close() error
}

// Open builds the gateway selected by cfg.Backend.
func Open(cfg config.StorageConfig) (Gateway, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", config.BackendFile:
		return NewFileGateway(cfg.Path)
	case config.BackendBolt:
		return OpenBolt(cfg.Path)
	case config.BackendSQLite:
		return OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Name reports the backend name of a gateway for logs and metrics.
func Name(g Gateway) string {
	switch v := g.(type) {
	case *FileGateway:
		return config.BackendFile
	case *BoltGateway:
		return config.BackendBolt
	case *SQLiteGateway:
		return config.BackendSQLite
	case *MemoryGateway:
		return "memory"
	case *RetryingGateway:
		return Name(v.inner)
	default:
		return "unknown"
	}
}
