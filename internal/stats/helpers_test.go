package stats

import (
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
)

func p(id, name string, start, end int, coverage ...string) players.Player {
	if coverage == nil {
		coverage = []string{}
	}
	return players.Player{ID: id, Name: name, StartCount: start, EndCount: end, Coverage: coverage}
}

func snapshot(week string, target int, list ...players.Player) weeks.Snapshot {
	entries := make([]weeks.Entry, len(list))
	for i, pl := range list {
		entries[i] = weeks.Entry{Player: pl, Kills: pl.Kills()}
	}
	return weeks.Snapshot{
		WeekID:     week,
		CapturedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Target:     target,
		Players:    entries,
	}
}
