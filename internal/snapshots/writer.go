package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
	"github.com/preston-bernstein/dread-tracker/internal/timeutil"
)

// ErrWriterNotConfigured is returned by a nil writer.
var ErrWriterNotConfigured = errors.New("archive writer not configured")

// Writer archives week snapshots as one JSON file per week plus a manifest.
type Writer struct {
	basePath       string
	retentionWeeks int
	now            func() time.Time
}

// NewWriter constructs a writer rooted at basePath. A retention of 0 or less
// keeps every archived week.
func NewWriter(basePath string, retentionWeeks int) *Writer {
	if retentionWeeks < 0 {
		retentionWeeks = 0
	}
	return &Writer{
		basePath:       basePath,
		retentionWeeks: retentionWeeks,
		now:            time.Now,
	}
}

// WithClock overrides the writer clock used for manifests and pruning.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	if w != nil && now != nil {
		w.now = now
	}
	return w
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteWeek archives one snapshot and prunes weeks outside the retention window.
func (w *Writer) WriteWeek(snap weeks.Snapshot) error {
	if w == nil {
		return ErrWriterNotConfigured
	}
	if snap.WeekID == "" {
		return errors.New("week id required")
	}
	if _, _, err := timeutil.ParseWeekID(snap.WeekID); err != nil {
		return err
	}

	target := WeekSnapshotPath(w.basePath, snap.WeekID)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return w.updateManifest(snap.WeekID)
	}
	if err := writeAtomic(target, data); err != nil {
		return fmt.Errorf("archive week %s: %w", snap.WeekID, err)
	}
	return w.updateManifest(snap.WeekID)
}

// WriteAll archives every snapshot in order, stopping at the first failure.
func (w *Writer) WriteAll(snaps []weeks.Snapshot) (int, error) {
	written := 0
	for _, snap := range snaps {
		if err := w.WriteWeek(snap); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// Manifest returns the current manifest, or a default one if none exists.
func (w *Writer) Manifest() (Manifest, error) {
	if w == nil {
		return Manifest{}, ErrWriterNotConfigured
	}
	m, err := readManifest(manifestPath(w.basePath), w.retentionWeeks, w.now())
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	return m, err
}

func (w *Writer) updateManifest(weekID string) error {
	now := w.now()
	m, _ := readManifest(manifestPath(w.basePath), w.retentionWeeks, now)

	ids, err := w.listWeeks()
	if err != nil {
		return err
	}
	if !slices.Contains(ids, weekID) {
		ids = append(ids, weekID)
	}
	kept := w.pruneOldWeeks(ids, now)

	m.Weeks.IDs = kept
	m.Weeks.LastArchived = now.UTC()
	m.Weeks.LastArchiveID = weekID
	m.Retention.Weeks = w.retentionWeeks

	return writeManifest(w.basePath, m, now)
}

func (w *Writer) listWeeks() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(w.basePath, weeksDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, ok := strings.CutSuffix(e.Name(), ".json")
		if !ok {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (w *Writer) pruneOldWeeks(ids []string, now time.Time) []string {
	if w.retentionWeeks == 0 {
		slices.Sort(ids)
		return ids
	}
	cutoff := now.UTC().AddDate(0, 0, -7*w.retentionWeeks)
	var keep []string
	for _, id := range ids {
		mid, err := timeutil.WeekMidpoint(id, time.UTC)
		if err != nil {
			keep = append(keep, id)
			continue
		}
		if mid.Before(cutoff) {
			_ = os.Remove(WeekSnapshotPath(w.basePath, id))
			continue
		}
		keep = append(keep, id)
	}
	slices.Sort(keep)
	return keep
}
