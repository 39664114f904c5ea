package persistence

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/state"
)

// FileGateway keeps the state document in a single JSON file.
type FileGateway struct {
	path string
}

// NewFileGateway roots the gateway at path. The file is created on first save.
func NewFileGateway(path string) (*FileGateway, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	return &FileGateway{path: filepath.Clean(path)}, nil
}

// Path returns the file the gateway writes.
func (g *FileGateway) Path() string {
	return g.path
}

func (g *FileGateway) Load(ctx context.Context) (state.State, error) {
	if err := ctx.Err(); err != nil {
		return state.State{}, err
	}
	data, err := os.ReadFile(g.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state.State{}, fmt.Errorf("state file %s: %w", g.path, domain.ErrNotFound)
		}
		return state.State{}, fmt.Errorf("read state file: %w", err)
	}
	return state.Decode(data)
}

// Save writes to a temp file and renames it over the target.
func (g *FileGateway) Save(ctx context.Context, st state.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := state.Encode(st)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, g.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func (g *FileGateway) Close() error { return nil }
