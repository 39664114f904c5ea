package store

import (
	"slices"
	"sync"

	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
)

// WeekStore keeps week snapshots keyed by week id. Snapshots are copied on the
// way in and out so a stored week can only change by being replaced.
type WeekStore struct {
	mu    sync.RWMutex
	weeks map[string]weeks.Snapshot
}

// NewWeekStore constructs a store seeded with the given snapshots.
func NewWeekStore(initial map[string]weeks.Snapshot) *WeekStore {
	s := &WeekStore{weeks: make(map[string]weeks.Snapshot, len(initial))}
	for id, snap := range initial {
		if snap.WeekID == "" {
			snap.WeekID = id
		}
		s.weeks[id] = snap.Clone()
	}
	return s
}

// Put upserts a snapshot under its week id, replacing any previous one.
func (s *WeekStore) Put(snap weeks.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.weeks[snap.WeekID] = snap.Clone()
}

// Get retrieves a snapshot by week id.
func (s *WeekStore) Get(id string) (weeks.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.weeks[id]
	if !ok {
		return weeks.Snapshot{}, false
	}
	return snap.Clone(), true
}

// Has reports whether a week was saved.
func (s *WeekStore) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.weeks[id]
	return ok
}

// IDs lists stored week ids, newest first. The zero-padded YYYY-Www format
// makes the lexical order chronological.
func (s *WeekStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.weeks))
	for id := range s.weeks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	slices.Reverse(ids)
	return ids
}

// List returns copies of every snapshot, oldest first.
func (s *WeekStore) List() []weeks.Snapshot {
	ids := s.IDs()
	slices.Reverse(ids)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]weeks.Snapshot, 0, len(ids))
	for _, id := range ids {
		if snap, ok := s.weeks[id]; ok {
			out = append(out, snap.Clone())
		}
	}
	return out
}

// Map returns a copy of the stored weeks for persistence.
func (s *WeekStore) Map() map[string]weeks.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]weeks.Snapshot, len(s.weeks))
	for id, snap := range s.weeks {
		out[id] = snap.Clone()
	}
	return out
}

// Replace swaps every stored week for the given set.
func (s *WeekStore) Replace(all map[string]weeks.Snapshot) {
	fresh := NewWeekStore(all)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.weeks = fresh.weeks
}

// Len reports how many weeks are stored.
func (s *WeekStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.weeks)
}
