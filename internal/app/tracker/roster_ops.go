package tracker

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
	"github.com/preston-bernstein/dread-tracker/internal/logging"
)

// AddPlayer appends a default player.
func (t *Tracker) AddPlayer(ctx context.Context) players.Player {
	p := t.roster.Add()
	logging.Debug(t.logger, "player added", logging.FieldPlayer, p.ID)
	t.persist(ctx, "add_player")
	return p
}

// RemovePlayer deletes the player with id.
func (t *Tracker) RemovePlayer(ctx context.Context, id string) error {
	if err := t.roster.Remove(id); err != nil {
		return err
	}
	t.persist(ctx, "remove_player")
	return nil
}

// RemoveLastPlayer drops the final player; false when the roster is empty.
func (t *Tracker) RemoveLastPlayer(ctx context.Context) (players.Player, bool) {
	p, ok := t.roster.RemoveLast()
	if !ok {
		return players.Player{}, false
	}
	t.persist(ctx, "remove_last_player")
	return p, true
}

// UpdateField sets one field of a player from raw text. Field names accept
// the short forms (name, start, end, coverage, note) and the document keys.
func (t *Tracker) UpdateField(ctx context.Context, id, field, value string) (players.Player, error) {
	f, ok := players.ParseField(field)
	if !ok {
		return players.Player{}, fmt.Errorf("field %q: %w", field, domain.ErrInvalidField)
	}
	p, err := t.roster.Update(id, f, value)
	if err != nil {
		return players.Player{}, err
	}
	logging.Debug(t.logger, "player updated", logging.FieldPlayer, id, logging.FieldField, string(f))
	t.persist(ctx, "update_player")
	return p, nil
}

// ClearPlayers empties the roster and restarts ids at player_1.
func (t *Tracker) ClearPlayers(ctx context.Context) {
	t.roster.Clear()
	t.persist(ctx, "clear_players")
}

// Players returns the live roster in order.
func (t *Tracker) Players() []players.Player {
	return t.roster.Players()
}

// Player returns one live player.
func (t *Tracker) Player(id string) (players.Player, error) {
	p, ok := t.roster.Find(id)
	if !ok {
		return players.Player{}, fmt.Errorf("player %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}
