// Package roster holds the live, ordered list of players and the session id counter.
package roster

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
)

const (
	idPrefix    = "player_"
	namePrefix  = "Player "
	firstNextID = 1
)

// Roster is the ordered set of players being edited, unique by ID.
// It is not safe for concurrent mutation.
type Roster struct {
	players []players.Player
	next    int
}

// New returns an empty roster whose first id is player_1.
func New() *Roster {
	return &Roster{next: firstNextID}
}

// Len reports the number of players.
func (r *Roster) Len() int {
	return len(r.players)
}

// NextID reports the counter that the next Add will use.
func (r *Roster) NextID() int {
	return r.next
}

// Players returns a deep copy of the players in roster order.
func (r *Roster) Players() []players.Player {
	out := make([]players.Player, len(r.players))
	for i, p := range r.players {
		out[i] = p.Clone()
	}
	return out
}

// Clone returns an independent roster with the same players and counter.
func (r *Roster) Clone() *Roster {
	return &Roster{players: r.Players(), next: r.next}
}

// Find returns a copy of the player with id.
func (r *Roster) Find(id string) (players.Player, bool) {
	if i := r.indexOf(id); i >= 0 {
		return r.players[i].Clone(), true
	}
	return players.Player{}, false
}

// Add appends a player with a fresh id and a default name derived from it.
func (r *Roster) Add() players.Player {
	n := r.next
	r.next++
	p := players.Player{
		ID:       idPrefix + strconv.Itoa(n),
		Name:     namePrefix + strconv.Itoa(n),
		Coverage: []string{},
	}
	r.players = append(r.players, p)
	return p.Clone()
}

// Remove deletes the player with id.
func (r *Roster) Remove(id string) error {
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("player %s: %w", id, domain.ErrNotFound)
	}
	r.players = append(r.players[:i], r.players[i+1:]...)
	return nil
}

// RemoveLast drops the final player. It is a no-op on an empty roster.
func (r *Roster) RemoveLast() (players.Player, bool) {
	if len(r.players) == 0 {
		return players.Player{}, false
	}
	last := r.players[len(r.players)-1]
	r.players = r.players[:len(r.players)-1]
	return last, true
}

// Update writes one field of the player with id. Numeric input that does not
// start with an integer is stored as 0.
func (r *Roster) Update(id string, field players.Field, value string) (players.Player, error) {
	i := r.indexOf(id)
	if i < 0 {
		return players.Player{}, fmt.Errorf("player %s: %w", id, domain.ErrNotFound)
	}
	p := &r.players[i]
	switch field {
	case players.FieldName:
		p.Name = value
	case players.FieldStart:
		p.StartCount = players.ParseCount(value)
	case players.FieldEnd:
		p.EndCount = players.ParseCount(value)
	case players.FieldCoverage:
		p.Coverage = players.ParseCoverage(value)
	case players.FieldNote:
		p.Note = value
	default:
		return players.Player{}, fmt.Errorf("field %q: %w", field, domain.ErrInvalidField)
	}
	return p.Clone(), nil
}

// Clear empties the roster and resets the id counter.
func (r *Roster) Clear() {
	r.players = nil
	r.next = firstNextID
}

// Restore replaces the roster with the captured entries, assigning fresh
// sequential ids. With zeroCounts the start and end counts are reset.
func (r *Roster) Restore(entries []weeks.Entry, zeroCounts bool) {
	r.Clear()
	for _, e := range entries {
		p := e.Player.Clone()
		p.ID = idPrefix + strconv.Itoa(r.next)
		r.next++
		if zeroCounts {
			p.StartCount = 0
			p.EndCount = 0
		}
		r.players = append(r.players, p)
	}
}

// Import replaces the roster with externally supplied players, keeping their
// ids. The counter resumes after the largest numeric id suffix. A list that
// repeats an id is domain.ErrInvalidFormat and leaves the roster untouched.
func (r *Roster) Import(list []players.Player) error {
	seen := make(map[string]bool, len(list))
	for _, p := range list {
		if seen[p.ID] {
			return fmt.Errorf("player %s listed twice: %w", p.ID, domain.ErrInvalidFormat)
		}
		seen[p.ID] = true
	}

	r.players = make([]players.Player, len(list))
	highest := 0
	for i, p := range list {
		r.players[i] = p.Clone()
		highest = max(highest, idSuffix(p.ID))
	}
	r.next = highest + 1
	return nil
}

// HasCounts reports whether any player has a non-zero start or end count.
func (r *Roster) HasCounts() bool {
	for _, p := range r.players {
		if p.HasCounts() {
			return true
		}
	}
	return false
}

func (r *Roster) indexOf(id string) int {
	for i, p := range r.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// idSuffix reads the integer after the first underscore, 0 when there is none.
func idSuffix(id string) int {
	_, rest, ok := strings.Cut(id, "_")
	if !ok {
		return 0
	}
	return max(players.ParseCount(rest), 0)
}

type rosterJSON struct {
	Players []players.Player `json:"players"`
	NextID  int              `json:"nextId"`
}

// MarshalJSON persists the players together with the id counter.
func (r *Roster) MarshalJSON() ([]byte, error) {
	list := r.Players()
	return json.Marshal(rosterJSON{Players: list, NextID: r.next})
}

// UnmarshalJSON restores a persisted roster. A missing counter is rebuilt from the ids.
func (r *Roster) UnmarshalJSON(data []byte) error {
	var raw rosterJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := r.Import(raw.Players); err != nil {
		return err
	}
	if raw.NextID > r.next {
		r.next = raw.NextID
	}
	return nil
}
