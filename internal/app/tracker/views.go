package tracker

import (
	"github.com/preston-bernstein/dread-tracker/internal/completion"
	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
	"github.com/preston-bernstein/dread-tracker/internal/stats"
)

// PlayerView is a live player with its derived kills and completion.
type PlayerView struct {
	players.Player
	Kills  int               `json:"dreadsKilled"`
	Status completion.Status `json:"status"`
}

// PlayerViews resolves every live player against the active target.
func (t *Tracker) PlayerViews() []PlayerView {
	list := t.roster.Players()
	resolver := completion.NewResolver(list, t.doc.Target)
	out := make([]PlayerView, len(list))
	for i, p := range list {
		out[i] = PlayerView{Player: p, Kills: p.Kills(), Status: resolver.Status(p)}
	}
	return out
}

// Summary aggregates the live roster.
func (t *Tracker) Summary() weeks.Summary {
	return stats.Summarize(t.roster.Players(), t.doc.Target)
}

// Leaderboard ranks the live roster by kills.
func (t *Tracker) Leaderboard() []stats.LeaderboardEntry {
	return stats.Leaderboard(t.roster.Players(), t.doc.Target)
}

// Profile summarises one player name across every saved week.
func (t *Tracker) Profile(name string) stats.PlayerProfile {
	return stats.Profile(name, t.weeks.List())
}

// MonthlyTop lists the best performers of the clock's current month.
func (t *Tracker) MonthlyTop() []weeks.Performer {
	return stats.MonthlyTopPerformers(t.weeks.List(), t.now())
}

// WeeklyTrend returns per-week totals and completion rates, oldest first.
func (t *Tracker) WeeklyTrend() []stats.WeekPoint {
	return stats.WeeklyTrend(t.weeks.List())
}

// Comparison returns the live roster ordered by kills.
func (t *Tracker) Comparison() []weeks.Performer {
	return stats.Comparison(t.roster.Players())
}

// Achievements evaluates the achievement set for the live roster and history.
func (t *Tracker) Achievements() []stats.Achievement {
	return stats.Achievements(t.roster.Players(), t.doc.Target, t.weeks.List())
}

// Milestones evaluates alliance milestones for the live roster.
func (t *Tracker) Milestones() []stats.Milestone {
	return stats.Milestones(t.roster.Players())
}
