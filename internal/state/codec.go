package state

import (
	"encoding/json"
	"fmt"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
)

// Encode renders the state document.
func Encode(st State) ([]byte, error) {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// Decode parses a state document. A document without a target decodes with a
// negative target so Normalize can tell it apart from an explicit 0.
func Decode(data []byte) (State, error) {
	st := State{Target: -1}
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("decode state: %w: %w", domain.ErrInvalidFormat, err)
	}
	return st, nil
}
