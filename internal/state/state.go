// Package state defines the application document persisted by the gateway.
package state

import (
	"encoding/json"
	"maps"
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
	"github.com/preston-bernstein/dread-tracker/internal/roster"
)

// DefaultTarget is the completion threshold used when none is configured.
const DefaultTarget = 50

// NotificationSettings are carried for the presentation layer; the core does
// not act on them.
type NotificationSettings struct {
	Enabled             bool `json:"enabled"`
	TargetReached       bool `json:"targetReached"`
	WeeklyComplete      bool `json:"weeklyComplete"`
	AchievementUnlocked bool `json:"achievementUnlocked"`
}

// DefaultNotifications enables every notification.
func DefaultNotifications() NotificationSettings {
	return NotificationSettings{Enabled: true, TargetReached: true, WeeklyComplete: true, AchievementUnlocked: true}
}

// State is everything the tracker persists.
type State struct {
	Weeks         map[string]weeks.Snapshot `json:"weeklyData"`
	CurrentWeek   string                    `json:"currentWeek"`
	Target        int                       `json:"defaultTarget"`
	CustomTargets map[string]int            `json:"customTargets"`
	TeamGoal      int                       `json:"teamGoal"`
	Notifications NotificationSettings      `json:"notificationSettings"`
	Achievements  []json.RawMessage         `json:"achievements"`
	Roster        *roster.Roster            `json:"roster,omitempty"`
	LastSaved     time.Time                 `json:"lastSaved"`
}

// New returns a fresh state for the given week and target.
func New(currentWeek string, target int) State {
	return State{
		Weeks:         map[string]weeks.Snapshot{},
		CurrentWeek:   currentWeek,
		Target:        target,
		CustomTargets: map[string]int{},
		Notifications: DefaultNotifications(),
		Achievements:  []json.RawMessage{},
		Roster:        roster.New(),
	}
}

// Normalize fills the gaps a partial or hand-edited document can leave so
// callers never meet nil maps. Missing week ids are taken from their keys.
func (s *State) Normalize(currentWeek string, target int) {
	if s.Weeks == nil {
		s.Weeks = map[string]weeks.Snapshot{}
	}
	for key, snap := range s.Weeks {
		if snap.WeekID == "" {
			snap.WeekID = key
			s.Weeks[key] = snap
		}
	}
	if s.CurrentWeek == "" {
		s.CurrentWeek = currentWeek
	}
	if s.Target < 0 {
		s.Target = target
	}
	if s.CustomTargets == nil {
		s.CustomTargets = map[string]int{}
	}
	if s.Achievements == nil {
		s.Achievements = []json.RawMessage{}
	}
}

// Clone copies the maps and snapshots so the result can be handed to a
// gateway without sharing memory with the live state. The roster pointer is
// shared; gateways only serialise it.
func (s State) Clone() State {
	out := s
	out.Weeks = make(map[string]weeks.Snapshot, len(s.Weeks))
	for k, v := range s.Weeks {
		out.Weeks[k] = v.Clone()
	}
	out.CustomTargets = maps.Clone(s.CustomTargets)
	out.Achievements = append([]json.RawMessage(nil), s.Achievements...)
	return out
}
