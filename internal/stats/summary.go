// Package stats derives summaries, rankings and history views from rosters and
// week snapshots. Every function is pure and recomputes from its inputs.
package stats

import (
	"math"

	"github.com/preston-bernstein/dread-tracker/internal/completion"
	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
)

// Summarize computes the roster totals. The average is rounded half up and is
// 0 for an empty roster, which also has no top performer.
func Summarize(list []players.Player, target int) weeks.Summary {
	resolver := completion.NewResolver(list, target)
	summary := weeks.Summary{TotalPlayers: len(list)}
	for _, p := range list {
		summary.TotalKills += p.Kills()
		if resolver.IsComplete(p) {
			summary.CompletedCount++
		}
	}
	summary.AverageKills = roundedAverage(summary.TotalKills, summary.TotalPlayers)
	summary.TopPerformer = TopPerformer(list)
	return summary
}

// TopPerformer returns the player with the most kills; the earliest wins ties.
func TopPerformer(list []players.Player) *weeks.Performer {
	if len(list) == 0 {
		return nil
	}
	top := list[0]
	for _, p := range list[1:] {
		if p.Kills() > top.Kills() {
			top = p
		}
	}
	return &weeks.Performer{Name: top.Name, Kills: top.Kills()}
}

// TotalKills sums the kills of every player.
func TotalKills(list []players.Player) int {
	total := 0
	for _, p := range list {
		total += p.Kills()
	}
	return total
}

func roundedAverage(total, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Floor(float64(total)/float64(count) + 0.5))
}
