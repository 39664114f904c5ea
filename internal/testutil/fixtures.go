package testutil

import (
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
	"github.com/preston-bernstein/dread-tracker/internal/snapshots"
)

// SamplePlayer returns a player fixture with the given counters and coverage.
func SamplePlayer(id, name string, start, end int, coverage ...string) players.Player {
	if coverage == nil {
		coverage = []string{}
	}
	return players.Player{
		ID:         id,
		Name:       name,
		StartCount: start,
		EndCount:   end,
		Coverage:   coverage,
	}
}

// SampleWeek captures a week snapshot of list at a fixed instant inside the week.
func SampleWeek(weekID string, target int, list ...players.Player) weeks.Snapshot {
	at := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	return snapshots.Capture(weekID, at, target, list)
}
