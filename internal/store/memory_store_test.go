package store

import (
	"reflect"
	"testing"

	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
)

func snap(id string, target int) weeks.Snapshot {
	return weeks.Snapshot{
		WeekID: id,
		Target: target,
		Players: []weeks.Entry{
			{Player: players.Player{ID: "player_1", Name: "A", Coverage: []string{"B"}}},
		},
	}
}

func TestWeekStorePutAndGet(t *testing.T) {
	s := NewWeekStore(nil)
	s.Put(snap("2024-W10", 50))

	got, ok := s.Get("2024-W10")
	if !ok {
		t.Fatalf("expected to find 2024-W10")
	}
	if got.Target != 50 {
		t.Fatalf("unexpected target %d", got.Target)
	}
	if !s.Has("2024-W10") || s.Has("2024-W11") {
		t.Fatalf("unexpected Has results")
	}
}

func TestWeekStoreGetNotFound(t *testing.T) {
	s := NewWeekStore(nil)
	if _, ok := s.Get("missing"); ok {
		t.Fatalf("expected missing week to return false")
	}
}

func TestWeekStorePutReplacesWholesale(t *testing.T) {
	s := NewWeekStore(nil)
	s.Put(snap("2024-W10", 50))
	replacement := weeks.Snapshot{WeekID: "2024-W10", Target: 10}
	s.Put(replacement)

	got, _ := s.Get("2024-W10")
	if got.Target != 10 || len(got.Players) != 0 {
		t.Fatalf("expected full replacement, got %+v", got)
	}
	if s.Len() != 1 {
		t.Fatalf("expected one week, got %d", s.Len())
	}
}

func TestWeekStoreIsolatesStoredSnapshots(t *testing.T) {
	s := NewWeekStore(nil)
	original := snap("2024-W10", 50)
	s.Put(original)

	original.Players[0].Name = "mutated after put"
	got, _ := s.Get("2024-W10")
	got.Players[0].Coverage[0] = "mutated after get"

	again, _ := s.Get("2024-W10")
	if again.Players[0].Name != "A" || again.Players[0].Coverage[0] != "B" {
		t.Fatalf("expected stored snapshot untouched, got %+v", again.Players[0])
	}
}

func TestWeekStoreIDsDescending(t *testing.T) {
	s := NewWeekStore(map[string]weeks.Snapshot{
		"2024-W02": snap("2024-W02", 1),
		"2023-W52": snap("2023-W52", 1),
		"2024-W10": snap("2024-W10", 1),
	})
	want := []string{"2024-W10", "2024-W02", "2023-W52"}
	if got := s.IDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	list := s.List()
	if list[0].WeekID != "2023-W52" || list[2].WeekID != "2024-W10" {
		t.Fatalf("expected ascending list, got %v", list)
	}
}

func TestWeekStoreSeedFillsMissingIDs(t *testing.T) {
	s := NewWeekStore(map[string]weeks.Snapshot{"2024-W01": {Target: 5}})
	got, ok := s.Get("2024-W01")
	if !ok || got.WeekID != "2024-W01" {
		t.Fatalf("expected week id taken from key, got %+v", got)
	}
}

func TestWeekStoreReplaceAndMap(t *testing.T) {
	s := NewWeekStore(map[string]weeks.Snapshot{"2024-W01": snap("2024-W01", 1)})
	s.Replace(map[string]weeks.Snapshot{"2024-W05": snap("2024-W05", 2)})

	m := s.Map()
	if _, ok := m["2024-W01"]; ok {
		t.Fatalf("expected old week dropped")
	}
	m["2024-W09"] = snap("2024-W09", 3)
	if s.Has("2024-W09") {
		t.Fatalf("expected Map to return a copy")
	}
}
