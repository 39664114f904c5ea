package stats

import (
	"github.com/preston-bernstein/dread-tracker/internal/completion"
	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
)

// Achievement ids.
const (
	AchievementFirstKill   = "first_kill"
	AchievementPerfectWeek = "perfect_week"
	AchievementDreadMaster = "dread_master"
)

const dreadMasterKills = 100

// Achievement reports whether a badge is unlocked and, for per-player
// badges, by whom.
type Achievement struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Unlocked    bool     `json:"unlocked"`
	Players     []string `json:"players,omitempty"`
}

// Milestone tracks alliance-wide progress toward a round number.
type Milestone struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Target  int    `json:"target"`
	Current int    `json:"current"`
	Reached bool   `json:"reached"`
}

// Achievements evaluates the badges for the live roster. Player badges use
// each player's history across stored weeks; the perfect week badge needs a
// non-empty roster where everyone met the target on their own kills.
func Achievements(list []players.Player, target int, snaps []weeks.Snapshot) []Achievement {
	firstKill := Achievement{
		ID:          AchievementFirstKill,
		Title:       "First Blood",
		Description: "Kill your first dreadnought",
	}
	master := Achievement{
		ID:          AchievementDreadMaster,
		Title:       "Dread Master",
		Description: "Kill 100 dreadnoughts total",
	}

	seen := make(map[string]struct{}, len(list))
	for _, p := range list {
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}
		total := Profile(p.Name, snaps).TotalKills
		if total >= 1 {
			firstKill.Players = append(firstKill.Players, p.Name)
		}
		if total >= dreadMasterKills {
			master.Players = append(master.Players, p.Name)
		}
	}
	firstKill.Unlocked = len(firstKill.Players) > 0
	master.Unlocked = len(master.Players) > 0

	resolver := completion.NewResolver(list, target)
	perfect := Achievement{
		ID:          AchievementPerfectWeek,
		Title:       "Perfect Week",
		Description: "All players reach their targets",
		Unlocked:    len(list) > 0,
	}
	for _, p := range list {
		if !resolver.Direct(p) {
			perfect.Unlocked = false
			break
		}
	}

	return []Achievement{firstKill, perfect, master}
}

// Milestones reports alliance kill totals and active player counts for the
// live roster. A player is active once their kills are positive.
func Milestones(list []players.Player) []Milestone {
	total := TotalKills(list)
	active := 0
	for _, p := range list {
		if p.Kills() > 0 {
			active++
		}
	}
	defs := []struct {
		id, title string
		target    int
		current   int
	}{
		{"total_kills_50", "50 Total Kills", 50, total},
		{"total_kills_100", "100 Total Kills", 100, total},
		{"active_players_10", "10 Active Players", 10, active},
		{"active_players_20", "20 Active Players", 20, active},
	}
	out := make([]Milestone, len(defs))
	for i, d := range defs {
		out[i] = Milestone{ID: d.id, Title: d.title, Target: d.target, Current: d.current, Reached: d.current >= d.target}
	}
	return out
}
