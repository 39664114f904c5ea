package weeks

import (
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
)

// Entry is a player as captured in a week snapshot, with derived values materialised.
type Entry struct {
	players.Player
	Kills    int  `json:"dreadsKilled"`
	Complete bool `json:"isComplete"`
}

// Performer names a player and their kill total.
type Performer struct {
	Name  string `json:"name"`
	Kills int    `json:"kills"`
}

// Summary holds the aggregate metrics computed when a week is captured.
type Summary struct {
	TotalPlayers   int        `json:"totalPlayers"`
	TotalKills     int        `json:"totalDreads"`
	AverageKills   int        `json:"averageDreads"`
	CompletedCount int        `json:"completedPlayers"`
	TopPerformer   *Performer `json:"topPerformer,omitempty"`
}

// Snapshot is an immutable record of one week's roster. Re-saving a week
// replaces the whole value.
type Snapshot struct {
	WeekID     string    `json:"week"`
	CapturedAt time.Time `json:"date"`
	Target     int       `json:"target"`
	Players    []Entry   `json:"players"`
	Summary    Summary   `json:"summary"`
}

// Clone returns a deep copy so callers can never mutate a stored snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Players = make([]Entry, len(s.Players))
	for i, e := range s.Players {
		out.Players[i] = Entry{Player: e.Player.Clone(), Kills: e.Kills, Complete: e.Complete}
	}
	if s.Summary.TopPerformer != nil {
		top := *s.Summary.TopPerformer
		out.Summary.TopPerformer = &top
	}
	return out
}
