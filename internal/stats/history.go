package stats

import (
	"slices"
	"strings"
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
	"github.com/preston-bernstein/dread-tracker/internal/roster"
	"github.com/preston-bernstein/dread-tracker/internal/timeutil"
)

const monthlyTopSize = 5

// PlayerProfile aggregates one player's history across every stored week.
type PlayerProfile struct {
	Name         string  `json:"name"`
	TotalKills   int     `json:"totalKills"`
	AverageKills float64 `json:"averageKills"`
	WeeksActive  int     `json:"weeksActive"`
	BestWeek     int     `json:"bestWeek"`
	BestWeekID   string  `json:"bestWeekId,omitempty"`
}

// Chronological returns the snapshots ordered by week id, oldest first.
func Chronological(snaps []weeks.Snapshot) []weeks.Snapshot {
	out := slices.Clone(snaps)
	slices.SortStableFunc(out, func(a, b weeks.Snapshot) int {
		return strings.Compare(a.WeekID, b.WeekID)
	})
	return out
}

// MonthlyTopPerformers sums kills per player name over the weeks belonging to
// now's calendar month and returns the five highest totals. Ties keep the order
// in which names first appear.
func MonthlyTopPerformers(snaps []weeks.Snapshot, now time.Time) []weeks.Performer {
	var (
		order  []string
		totals = make(map[string]int)
	)
	for _, snap := range Chronological(snaps) {
		if !timeutil.InMonth(snap.WeekID, now) {
			continue
		}
		for _, e := range snap.Players {
			if _, seen := totals[e.Name]; !seen {
				order = append(order, e.Name)
			}
			totals[e.Name] += e.Player.Kills()
		}
	}

	out := make([]weeks.Performer, 0, len(order))
	for _, name := range order {
		out = append(out, weeks.Performer{Name: name, Kills: totals[name]})
	}
	slices.SortStableFunc(out, func(a, b weeks.Performer) int {
		return b.Kills - a.Kills
	})
	if len(out) > monthlyTopSize {
		out = out[:monthlyTopSize]
	}
	return out
}

// Profile scans every snapshot for entries carrying name. Identity across
// weeks is the display name, so a renamed player starts a new history.
func Profile(name string, snaps []weeks.Snapshot) PlayerProfile {
	profile := PlayerProfile{Name: name}
	for _, snap := range Chronological(snaps) {
		entry, ok := findByIdentity(snap, name)
		if !ok {
			continue
		}
		kills := entry.Player.Kills()
		profile.WeeksActive++
		profile.TotalKills += kills
		if kills > profile.BestWeek {
			profile.BestWeek = kills
			profile.BestWeekID = snap.WeekID
		}
	}
	if profile.WeeksActive > 0 {
		profile.AverageKills = float64(profile.TotalKills) / float64(profile.WeeksActive)
	}
	return profile
}

func findByIdentity(snap weeks.Snapshot, name string) (weeks.Entry, bool) {
	for _, e := range snap.Players {
		if roster.SameIdentity(e.Name, name) {
			return e, true
		}
	}
	return weeks.Entry{}, false
}
