package snapshots

import (
	"os"
	"testing"
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func simpleSnapshot(weekID string) weeks.Snapshot {
	return Capture(weekID, time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC), 50, []players.Player{
		{ID: "player_1", Name: "A", StartCount: 0, EndCount: 60},
	})
}

func writeSnapshot(t *testing.T, w *Writer, snap weeks.Snapshot) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for week %s", snap.WeekID)
	}
	if err := w.WriteWeek(snap); err != nil {
		t.Fatalf("failed to write week %s: %v", snap.WeekID, err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, weekID string) {
	t.Helper()
	if _, err := os.Stat(WeekSnapshotPath(w.BasePath(), weekID)); err != nil {
		t.Fatalf("expected week %s to be archived: %v", weekID, err)
	}
}

func assertIDsEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("ids length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("ids mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
