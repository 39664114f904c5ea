// Package tracker owns the live roster, the saved weeks and the settings of
// one alliance, and persists the whole document after every change.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/logging"
	"github.com/preston-bernstein/dread-tracker/internal/metrics"
	"github.com/preston-bernstein/dread-tracker/internal/persistence"
	"github.com/preston-bernstein/dread-tracker/internal/roster"
	"github.com/preston-bernstein/dread-tracker/internal/snapshots"
	"github.com/preston-bernstein/dread-tracker/internal/state"
	"github.com/preston-bernstein/dread-tracker/internal/store"
	"github.com/preston-bernstein/dread-tracker/internal/timeutil"
)

// Options wires a tracker to its collaborators. Only Gateway is required.
type Options struct {
	Gateway       persistence.Gateway
	Logger        *slog.Logger
	Recorder      *metrics.Recorder
	Now           func() time.Time
	// DefaultTarget is applied to fresh documents and new weeks. 0 is a
	// valid target; a negative value selects state.DefaultTarget.
	DefaultTarget int
	// Archive and ArchiveReader enable the week archive; both may be nil.
	Archive       *snapshots.Writer
	ArchiveReader snapshots.Store
}

// Tracker is not safe for concurrent mutation. Reads of saved weeks are.
type Tracker struct {
	gateway       persistence.Gateway
	backend       string
	logger        *slog.Logger
	recorder      *metrics.Recorder
	now           func() time.Time
	defaultTarget int
	archive       *snapshots.Writer
	archiveReader snapshots.Store

	doc    state.State
	roster *roster.Roster
	weeks  *store.WeekStore
}

// Open loads the persisted document, or starts a fresh one seeded with a
// single default player when nothing has been stored yet. A stored document
// that cannot be decoded is returned as an error rather than overwritten.
func Open(ctx context.Context, opts Options) (*Tracker, error) {
	if opts.Gateway == nil {
		return nil, errors.New("tracker: gateway is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultTarget < 0 {
		opts.DefaultTarget = state.DefaultTarget
	}

	t := &Tracker{
		gateway:       opts.Gateway,
		backend:       persistence.Name(opts.Gateway),
		logger:        opts.Logger,
		recorder:      opts.Recorder,
		now:           opts.Now,
		defaultTarget: opts.DefaultTarget,
		archive:       opts.Archive,
		archiveReader: opts.ArchiveReader,
	}

	currentWeek := timeutil.WeekID(t.now())
	doc, err := t.gateway.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		t.reset(state.New(currentWeek, t.defaultTarget))
		t.roster.Add()
		logging.Info(t.logger, "starting fresh tracker", logging.FieldWeek, currentWeek, logging.FieldBackend, t.backend)
		t.persist(ctx, "seed")
		return t, nil
	case err != nil:
		return nil, fmt.Errorf("load tracker state: %w", err)
	}

	doc.Normalize(currentWeek, t.defaultTarget)
	t.reset(doc)
	if doc.Roster == nil {
		t.resumeRoster(ctx)
	}
	logging.Debug(t.logger, "tracker loaded",
		logging.FieldWeek, t.doc.CurrentWeek,
		logging.FieldCount, t.weeks.Len(),
		logging.FieldBackend, t.backend,
	)
	return t, nil
}

// reset adopts doc as the live state.
func (t *Tracker) reset(doc state.State) {
	t.weeks = store.NewWeekStore(doc.Weeks)
	t.roster = doc.Roster
	if t.roster == nil {
		t.roster = roster.New()
	}
	doc.Weeks = nil
	doc.Roster = nil
	t.doc = doc
}

// resumeRoster rebuilds a roster for documents written without one: the
// current week's snapshot when it was saved, else one default player.
func (t *Tracker) resumeRoster(ctx context.Context) {
	if snap, ok := t.weeks.Get(t.doc.CurrentWeek); ok {
		t.roster.Restore(snap.Players, false)
		t.doc.Target = snap.Target
		return
	}
	t.roster.Add()
	t.persist(ctx, "seed")
}

// Document returns a detached copy of the full state as it would be persisted.
func (t *Tracker) Document() state.State {
	doc := t.doc.Clone()
	doc.Weeks = t.weeks.Map()
	doc.Roster = t.roster.Clone()
	return doc
}

// persist records op and writes the document through the gateway. Failures
// are logged and counted; the in-memory state is kept either way.
func (t *Tracker) persist(ctx context.Context, op string) {
	t.recorder.RecordMutation(op)
	logging.Debug(t.logger, "tracker mutation", logging.FieldOperation, op)

	doc := t.doc.Clone()
	doc.Weeks = t.weeks.Map()
	doc.Roster = t.roster
	doc.LastSaved = t.now().UTC()

	start := time.Now()
	err := t.gateway.Save(ctx, doc)
	t.recorder.RecordPersist(t.backend, time.Since(start), err)
	if err != nil {
		logging.Error(t.logger, "persist tracker state failed", err,
			logging.FieldOperation, op,
			logging.FieldBackend, t.backend,
		)
		return
	}
	t.doc.LastSaved = doc.LastSaved
}

// LastSaved reports when the document was last written successfully.
func (t *Tracker) LastSaved() time.Time {
	return t.doc.LastSaved
}

// Close releases the gateway.
func (t *Tracker) Close() error {
	if t == nil || t.gateway == nil {
		return nil
	}
	return t.gateway.Close()
}
