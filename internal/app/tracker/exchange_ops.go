package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
	"github.com/preston-bernstein/dread-tracker/internal/exchange"
	"github.com/preston-bernstein/dread-tracker/internal/logging"
	"github.com/preston-bernstein/dread-tracker/internal/state"
	"github.com/preston-bernstein/dread-tracker/internal/timeutil"
)

// ErrArchiveDisabled is returned by archive operations when no archive is wired.
var ErrArchiveDisabled = errors.New("week archive not configured")

// Export writes the live roster in the given format.
func (t *Tracker) Export(w io.Writer, format exchange.Format) error {
	return exchange.Write(w, format, t.roster.Players(), t.doc.Target, t.now())
}

// ExportPlayer writes one player's card.
func (t *Tracker) ExportPlayer(w io.Writer, id string) error {
	p, err := t.Player(id)
	if err != nil {
		return err
	}
	return exchange.WriteCard(w, p)
}

// Import replaces the live roster with the players of an export document.
// Ids are kept and the counter resumes after the highest numeric suffix. On
// error the roster is left untouched.
func (t *Tracker) Import(ctx context.Context, r io.Reader) (int, error) {
	list, err := exchange.ReadPlayers(r)
	if err != nil {
		return 0, err
	}
	if err := t.roster.Import(list); err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	logging.Info(t.logger, "players imported", logging.FieldCount, len(list))
	t.persist(ctx, "import")
	return len(list), nil
}

// Backup writes the full state document.
func (t *Tracker) Backup(w io.Writer) error {
	data, err := state.Encode(t.Document())
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Restore replaces everything, saved weeks included, with a backup document.
func (t *Tracker) Restore(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	doc, err := state.Decode(data)
	if err != nil {
		return err
	}
	doc.Normalize(timeutil.WeekID(t.now()), t.defaultTarget)
	t.reset(doc)
	if doc.Roster == nil {
		if snap, ok := t.weeks.Get(t.doc.CurrentWeek); ok {
			t.roster.Restore(snap.Players, false)
			t.doc.Target = snap.Target
		}
	}
	logging.Info(t.logger, "state restored", logging.FieldCount, t.weeks.Len(), logging.FieldWeek, t.doc.CurrentWeek)
	t.persist(ctx, "restore")
	return nil
}

// Archive writes every saved week to the archive and returns how many were written.
func (t *Tracker) Archive() (int, error) {
	if t.archive == nil {
		return 0, ErrArchiveDisabled
	}
	n, err := t.archive.WriteAll(t.weeks.List())
	if err != nil {
		return n, fmt.Errorf("archive weeks: %w", err)
	}
	logging.Info(t.logger, "weeks archived", logging.FieldCount, n)
	return n, nil
}

// RestoreArchivedWeek copies an archived week back into the saved weeks.
// The live roster is not touched; use LoadWeek afterwards to edit it.
func (t *Tracker) RestoreArchivedWeek(ctx context.Context, weekID string) (weeks.Snapshot, error) {
	if t.archiveReader == nil {
		return weeks.Snapshot{}, ErrArchiveDisabled
	}
	snap, err := t.archiveReader.LoadWeek(weekID)
	if err != nil {
		return weeks.Snapshot{}, err
	}
	if snap.WeekID != weekID {
		return weeks.Snapshot{}, fmt.Errorf("archived week %s holds %s: %w", weekID, snap.WeekID, domain.ErrInvalidFormat)
	}
	t.weeks.Put(snap)
	logging.Info(t.logger, "archived week restored", logging.FieldWeek, weekID)
	t.persist(ctx, "restore_week")
	return snap, nil
}

// archiveWeek mirrors a fresh save into the archive when one is wired.
func (t *Tracker) archiveWeek(snap weeks.Snapshot) {
	if t.archive == nil {
		return
	}
	if err := t.archive.WriteWeek(snap); err != nil {
		logging.Warn(t.logger, "archive week failed", logging.FieldWeek, snap.WeekID, "error", err)
	}
}
