package tracker

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
	"github.com/preston-bernstein/dread-tracker/internal/logging"
	"github.com/preston-bernstein/dread-tracker/internal/snapshots"
	"github.com/preston-bernstein/dread-tracker/internal/timeutil"
)

// SaveWeek captures the live roster under the current week id.
func (t *Tracker) SaveWeek(ctx context.Context) (weeks.Snapshot, error) {
	return t.SaveWeekAs(ctx, t.doc.CurrentWeek)
}

// SaveWeekAs captures the live roster under weekID, replacing any earlier
// snapshot of that week.
func (t *Tracker) SaveWeekAs(ctx context.Context, weekID string) (weeks.Snapshot, error) {
	if _, _, err := timeutil.ParseWeekID(weekID); err != nil {
		return weeks.Snapshot{}, fmt.Errorf("%w: %w", domain.ErrInvalidFormat, err)
	}
	snap := snapshots.Capture(weekID, t.now(), t.doc.Target, t.roster.Players())
	t.weeks.Put(snap)
	t.recorder.RecordWeekSaved(weekID)
	logging.Info(t.logger, "week saved",
		logging.FieldWeek, weekID,
		logging.FieldCount, len(snap.Players),
		logging.FieldTarget, snap.Target,
	)
	t.archiveWeek(snap)
	t.persist(ctx, "save_week")
	return snap, nil
}

// LoadWeek replaces the roster and target with a saved week and makes it the
// current week. Restored players get fresh ids.
func (t *Tracker) LoadWeek(ctx context.Context, weekID string) (weeks.Snapshot, error) {
	snap, ok := t.weeks.Get(weekID)
	if !ok {
		return weeks.Snapshot{}, fmt.Errorf("week %s: %w", weekID, domain.ErrNotFound)
	}
	t.roster.Restore(snap.Players, false)
	t.doc.Target = snap.Target
	t.doc.CurrentWeek = weekID
	logging.Info(t.logger, "week loaded", logging.FieldWeek, weekID, logging.FieldCount, len(snap.Players))
	t.persist(ctx, "load_week")
	return snap, nil
}

// CopyRoster carries a saved week's players forward with zeroed counts. The
// target and current week are left alone.
func (t *Tracker) CopyRoster(ctx context.Context, weekID string) ([]players.Player, error) {
	snap, ok := t.weeks.Get(weekID)
	if !ok {
		return nil, fmt.Errorf("week %s: %w", weekID, domain.ErrNotFound)
	}
	t.roster.Restore(snap.Players, true)
	logging.Info(t.logger, "roster copied", logging.FieldWeek, weekID, logging.FieldCount, t.roster.Len())
	t.persist(ctx, "copy_roster")
	return t.roster.Players(), nil
}

// StartNewWeek saves the current week first when any count is non-zero, then
// clears the roster, restores the default target, moves to the clock's week
// and seeds one default player. It returns the new week id.
func (t *Tracker) StartNewWeek(ctx context.Context) (string, error) {
	if t.roster.HasCounts() {
		if _, err := t.SaveWeek(ctx); err != nil {
			return "", err
		}
	}
	t.roster.Clear()
	t.doc.Target = t.defaultTarget
	t.doc.CurrentWeek = timeutil.WeekID(t.now())
	t.roster.Add()
	logging.Info(t.logger, "new week started", logging.FieldWeek, t.doc.CurrentWeek)
	t.persist(ctx, "new_week")
	return t.doc.CurrentWeek, nil
}

// ListWeeks returns saved week ids, newest first.
func (t *Tracker) ListWeeks() []string {
	return t.weeks.IDs()
}

// Week returns one saved snapshot.
func (t *Tracker) Week(weekID string) (weeks.Snapshot, error) {
	snap, ok := t.weeks.Get(weekID)
	if !ok {
		return weeks.Snapshot{}, fmt.Errorf("week %s: %w", weekID, domain.ErrNotFound)
	}
	return snap, nil
}

// Weeks returns every saved snapshot, oldest first.
func (t *Tracker) Weeks() []weeks.Snapshot {
	return t.weeks.List()
}
