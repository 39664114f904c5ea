package testutil

import (
	"testing"

	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
	"github.com/preston-bernstein/dread-tracker/internal/snapshots"
)

// NewTempWriter returns a week archive writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retentionWeeks int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retentionWeeks)
}

// WriteWeek archives snap, failing the test on error.
func WriteWeek(t *testing.T, w *snapshots.Writer, snap weeks.Snapshot) {
	t.Helper()
	if err := w.WriteWeek(snap); err != nil {
		t.Fatalf("failed to write week %s: %v", snap.WeekID, err)
	}
}

// WeekPath returns the expected file path for an archived week.
func WeekPath(w *snapshots.Writer, weekID string) string {
	return snapshots.WeekSnapshotPath(w.BasePath(), weekID)
}
