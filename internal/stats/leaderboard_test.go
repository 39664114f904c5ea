package stats

import (
	"testing"

	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
)

func TestLeaderboardCoverageScenario(t *testing.T) {
	list := []players.Player{
		p("player_2", "B", 0, 10, "A"),
		p("player_1", "A", 0, 60),
	}
	board := Leaderboard(list, 50)
	if len(board) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(board))
	}
	if board[0].Name != "A" || board[0].Rank != 1 || board[0].Kills != 60 || board[0].ViaCoverage {
		t.Fatalf("unexpected first entry %+v", board[0])
	}
	if board[1].Name != "B" || board[1].Rank != 2 || !board[1].Complete || !board[1].ViaCoverage {
		t.Fatalf("unexpected second entry %+v", board[1])
	}
}

func TestLeaderboardIsStable(t *testing.T) {
	list := []players.Player{
		p("player_1", "A", 0, 5),
		p("player_2", "B", 0, 7),
		p("player_3", "C", 0, 5),
		p("player_4", "D", 0, 7),
		p("player_5", "E", 0, 5),
	}
	board := Leaderboard(list, 100)
	want := []string{"B", "D", "A", "C", "E"}
	for i, name := range want {
		if board[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, board[i].Name)
		}
		if board[i].Rank != i+1 {
			t.Fatalf("position %d: expected rank %d, got %d", i, i+1, board[i].Rank)
		}
		if board[i].Top3 != (i < 3) {
			t.Fatalf("position %d: unexpected top3 flag", i)
		}
	}
}

func TestLeaderboardIsPermutation(t *testing.T) {
	list := []players.Player{
		p("player_1", "A", 10, 5),
		p("player_2", "B", 0, 0),
		p("player_3", "C", 0, 30),
	}
	board := Leaderboard(list, 10)
	seen := map[string]bool{}
	for i, e := range board {
		seen[e.PlayerID] = true
		if i > 0 && board[i-1].Kills < e.Kills {
			t.Fatalf("expected descending kills, got %+v", board)
		}
	}
	if len(seen) != len(list) {
		t.Fatalf("expected every player once, got %+v", board)
	}
	if list[0].ID != "player_1" {
		t.Fatalf("expected input order untouched")
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	if board := Leaderboard(nil, 50); len(board) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v", board)
	}
}
