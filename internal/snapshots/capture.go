package snapshots

import (
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/completion"
	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
	"github.com/preston-bernstein/dread-tracker/internal/stats"
)

// Capture freezes the live roster into a week snapshot. Each entry carries its
// kills and completion as they resolve at capture time, so later roster edits
// cannot change what the week recorded.
func Capture(weekID string, now time.Time, target int, list []players.Player) weeks.Snapshot {
	resolver := completion.NewResolver(list, target)
	entries := make([]weeks.Entry, 0, len(list))
	for _, p := range list {
		entries = append(entries, weeks.Entry{
			Player:   p.Clone(),
			Kills:    p.Kills(),
			Complete: resolver.IsComplete(p),
		})
	}
	return weeks.Snapshot{
		WeekID:     weekID,
		CapturedAt: now.UTC(),
		Target:     target,
		Players:    entries,
		Summary:    stats.Summarize(list, target),
	}
}
