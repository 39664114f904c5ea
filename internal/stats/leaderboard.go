package stats

import (
	"slices"

	"github.com/preston-bernstein/dread-tracker/internal/completion"
	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
)

const podiumSize = 3

// LeaderboardEntry is one ranked roster row.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"playerId"`
	Name        string `json:"name"`
	Kills       int    `json:"kills"`
	Top3        bool   `json:"top3"`
	Complete    bool   `json:"complete"`
	ViaCoverage bool   `json:"viaCoverage"`
}

// Leaderboard ranks the roster by kills, highest first. Equal kills keep
// roster order.
func Leaderboard(list []players.Player, target int) []LeaderboardEntry {
	resolver := completion.NewResolver(list, target)
	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b players.Player) int {
		return b.Kills() - a.Kills()
	})

	out := make([]LeaderboardEntry, len(sorted))
	for i, p := range sorted {
		status := resolver.Status(p)
		out[i] = LeaderboardEntry{
			Rank:        i + 1,
			PlayerID:    p.ID,
			Name:        p.Name,
			Kills:       p.Kills(),
			Top3:        i < podiumSize,
			Complete:    status.Complete,
			ViaCoverage: status.ViaCoverage,
		}
	}
	return out
}
