package stats

import (
	"slices"

	"github.com/preston-bernstein/dread-tracker/internal/completion"
	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
)

// WeekPoint is one week on the history charts.
type WeekPoint struct {
	WeekID         string  `json:"week"`
	TotalKills     int     `json:"totalKills"`
	CompletionRate float64 `json:"completionRate"`
}

// WeeklyTrend lists total kills and the direct completion rate (percent,
// against each week's own target) for every stored week, oldest first.
func WeeklyTrend(snaps []weeks.Snapshot) []WeekPoint {
	ordered := Chronological(snaps)
	out := make([]WeekPoint, 0, len(ordered))
	for _, snap := range ordered {
		list := make([]players.Player, len(snap.Players))
		for i, e := range snap.Players {
			list[i] = e.Player
		}
		resolver := completion.NewResolver(list, snap.Target)
		point := WeekPoint{WeekID: snap.WeekID, TotalKills: TotalKills(list)}
		if len(list) > 0 {
			direct := 0
			for _, p := range list {
				if resolver.Direct(p) {
					direct++
				}
			}
			point.CompletionRate = float64(direct) / float64(len(list)) * 100
		}
		out = append(out, point)
	}
	return out
}

// Comparison lists the live roster's kills, highest first.
func Comparison(list []players.Player) []weeks.Performer {
	out := make([]weeks.Performer, len(list))
	for i, p := range list {
		out[i] = weeks.Performer{Name: p.Name, Kills: p.Kills()}
	}
	slices.SortStableFunc(out, func(a, b weeks.Performer) int {
		return b.Kills - a.Kills
	})
	return out
}
