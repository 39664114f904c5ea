package tracker

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/logging"
	"github.com/preston-bernstein/dread-tracker/internal/state"
)

// Settings is the non-roster part of the document.
type Settings struct {
	CurrentWeek   string                     `json:"currentWeek"`
	Target        int                        `json:"defaultTarget"`
	TeamGoal      int                        `json:"teamGoal"`
	CustomTargets map[string]int             `json:"customTargets"`
	Notifications state.NotificationSettings `json:"notificationSettings"`
	LastSaved     string                     `json:"lastSaved,omitempty"`
}

// Settings returns a copy of the current settings.
func (t *Tracker) Settings() Settings {
	s := Settings{
		CurrentWeek:   t.doc.CurrentWeek,
		Target:        t.doc.Target,
		TeamGoal:      t.doc.TeamGoal,
		CustomTargets: maps.Clone(t.doc.CustomTargets),
		Notifications: t.doc.Notifications,
	}
	if !t.doc.LastSaved.IsZero() {
		s.LastSaved = t.doc.LastSaved.Format(time.RFC3339)
	}
	return s
}

// Target is the active completion threshold.
func (t *Tracker) Target() int {
	return t.doc.Target
}

// CurrentWeek is the week id new saves are filed under.
func (t *Tracker) CurrentWeek() string {
	return t.doc.CurrentWeek
}

// SetTarget changes the active threshold. Negative targets are rejected.
func (t *Tracker) SetTarget(ctx context.Context, target int) error {
	if target < 0 {
		return fmt.Errorf("target %d: %w", target, domain.ErrInvalidField)
	}
	t.doc.Target = target
	logging.Debug(t.logger, "target changed", logging.FieldTarget, target)
	t.persist(ctx, "set_target")
	return nil
}

// SetTeamGoal stores the alliance goal. The core does not interpret it.
func (t *Tracker) SetTeamGoal(ctx context.Context, goal int) error {
	if goal < 0 {
		return fmt.Errorf("team goal %d: %w", goal, domain.ErrInvalidField)
	}
	t.doc.TeamGoal = goal
	t.persist(ctx, "set_team_goal")
	return nil
}

// SetCustomTarget stores a per-player target by name; a negative value removes it.
func (t *Tracker) SetCustomTarget(ctx context.Context, name string, target int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("custom target name: %w", domain.ErrInvalidField)
	}
	if target < 0 {
		delete(t.doc.CustomTargets, name)
	} else {
		t.doc.CustomTargets[name] = target
	}
	t.persist(ctx, "set_custom_target")
	return nil
}

// SetNotifications replaces the notification preferences.
func (t *Tracker) SetNotifications(ctx context.Context, n state.NotificationSettings) {
	t.doc.Notifications = n
	t.persist(ctx, "set_notifications")
}
