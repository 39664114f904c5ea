package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
)

// Store defines how archived weeks are loaded.
type Store interface {
	LoadWeek(weekID string) (weeks.Snapshot, error)
}

// FSStore loads archived weeks from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed archive reader rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadWeek reads {basePath}/weeks/{weekID}.json. A missing file maps to
// domain.ErrNotFound and an undecodable one to domain.ErrInvalidFormat.
func (s *FSStore) LoadWeek(weekID string) (weeks.Snapshot, error) {
	if s == nil {
		return weeks.Snapshot{}, errors.New("archive store not configured")
	}
	if weekID == "" {
		return weeks.Snapshot{}, errors.New("week id required")
	}
	f, err := os.Open(WeekSnapshotPath(s.basePath, weekID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return weeks.Snapshot{}, fmt.Errorf("archived week %s: %w", weekID, domain.ErrNotFound)
		}
		return weeks.Snapshot{}, err
	}
	defer f.Close()

	var snap weeks.Snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return weeks.Snapshot{}, fmt.Errorf("archived week %s: %w: %w", weekID, domain.ErrInvalidFormat, err)
	}
	if snap.WeekID == "" {
		snap.WeekID = weekID
	}
	return snap, nil
}
