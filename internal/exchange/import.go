package exchange

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
)

type importDocument struct {
	Players json.RawMessage `json:"players"`
}

type importPlayer struct {
	ID         *string  `json:"id"`
	Name       string   `json:"name"`
	StartCount int      `json:"startDreads"`
	EndCount   int      `json:"endDreads"`
	Coverage   []string `json:"coverage"`
	Note       string   `json:"note"`
}

// ReadPlayers parses an import payload. The payload must be an object with a
// "players" array whose elements each carry a string id; anything else is
// domain.ErrInvalidFormat. Extra top-level keys are ignored.
func ReadPlayers(r io.Reader) ([]players.Player, error) {
	var doc importDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, invalid(err)
	}
	if len(doc.Players) == 0 || doc.Players[0] != '[' {
		return nil, fmt.Errorf("import: %w: players array required", domain.ErrInvalidFormat)
	}

	var raw []importPlayer
	if err := json.Unmarshal(doc.Players, &raw); err != nil {
		return nil, invalid(err)
	}
	out := make([]players.Player, 0, len(raw))
	for i, p := range raw {
		if p.ID == nil {
			return nil, fmt.Errorf("import: %w: player %d has no id", domain.ErrInvalidFormat, i)
		}
		coverage := p.Coverage
		if coverage == nil {
			coverage = []string{}
		}
		out = append(out, players.Player{
			ID:         *p.ID,
			Name:       p.Name,
			StartCount: p.StartCount,
			EndCount:   p.EndCount,
			Coverage:   coverage,
			Note:       p.Note,
		})
	}
	return out, nil
}

func invalid(err error) error {
	return fmt.Errorf("import: %w: %w", domain.ErrInvalidFormat, err)
}
