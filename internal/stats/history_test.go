package stats

import (
	"testing"
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
)

func TestMonthlyTopPerformers(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	snaps := []weeks.Snapshot{
		snapshot("2024-W11", 50, p("1", "A", 0, 10), p("2", "B", 0, 30)),
		snapshot("2024-W10", 50, p("1", "A", 0, 25), p("2", "C", 0, 5)),
		snapshot("2024-W05", 50, p("1", "B", 0, 500)),
		snapshot("2023-W11", 50, p("1", "C", 0, 900)),
	}
	got := MonthlyTopPerformers(snaps, now)
	want := []weeks.Performer{{Name: "A", Kills: 35}, {Name: "B", Kills: 30}, {Name: "C", Kills: 5}}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestMonthlyTopPerformersLimitsToFiveAndKeepsTieOrder(t *testing.T) {
	now := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	snaps := []weeks.Snapshot{snapshot("2024-W10", 0,
		p("1", "F", 0, 1),
		p("2", "E", 0, 1),
		p("3", "D", 0, 2),
		p("4", "C", 0, 1),
		p("5", "B", 0, 1),
		p("6", "A", 0, 1),
	)}
	got := MonthlyTopPerformers(snaps, now)
	want := []string{"D", "F", "E", "C", "B"}
	if len(got) != 5 {
		t.Fatalf("expected 5 performers, got %d", len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, got[i].Name)
		}
	}
}

func TestMonthlyTopPerformersNoWeeks(t *testing.T) {
	if got := MonthlyTopPerformers(nil, time.Now()); len(got) != 0 {
		t.Fatalf("expected none, got %v", got)
	}
}

func TestProfileMatchesByName(t *testing.T) {
	snaps := []weeks.Snapshot{
		snapshot("2024-W02", 50, p("player_1", "A", 0, 40), p("player_2", "B", 0, 5)),
		snapshot("2024-W01", 50, p("player_9", "A", 10, 80)),
		snapshot("2024-W03", 50, p("player_1", "B", 0, 7)),
	}
	got := Profile("A", snaps)
	if got.TotalKills != 110 || got.WeeksActive != 2 || got.BestWeek != 70 || got.BestWeekID != "2024-W01" {
		t.Fatalf("unexpected profile %+v", got)
	}
	if got.AverageKills != 55 {
		t.Fatalf("expected average 55, got %v", got.AverageKills)
	}
}

func TestProfileUnknownPlayer(t *testing.T) {
	got := Profile("Nobody", []weeks.Snapshot{snapshot("2024-W01", 50, p("1", "A", 0, 4))})
	if got.TotalKills != 0 || got.WeeksActive != 0 || got.AverageKills != 0 || got.BestWeek != 0 || got.BestWeekID != "" {
		t.Fatalf("expected empty profile, got %+v", got)
	}
}

func TestProfileBestWeekFloorIsZero(t *testing.T) {
	got := Profile("A", []weeks.Snapshot{snapshot("2024-W01", 50, p("1", "A", 10, 4))})
	if got.BestWeek != 0 || got.TotalKills != -6 || got.WeeksActive != 1 {
		t.Fatalf("unexpected profile %+v", got)
	}
}

func TestChronologicalDoesNotReorderInput(t *testing.T) {
	snaps := []weeks.Snapshot{snapshot("2024-W03", 0), snapshot("2024-W01", 0)}
	ordered := Chronological(snaps)
	if ordered[0].WeekID != "2024-W01" || snaps[0].WeekID != "2024-W03" {
		t.Fatalf("unexpected ordering %v / %v", ordered, snaps)
	}
}
