// Package completion decides whether players reached the weekly target.
package completion

import (
	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
	"github.com/preston-bernstein/dread-tracker/internal/roster"
)

// Status explains how a player's completion was reached.
type Status struct {
	Complete    bool `json:"complete"`
	Direct      bool `json:"direct"`
	ViaCoverage bool `json:"viaCoverage"`
}

// Resolver evaluates completion against one roster and target. It keeps no
// state between reads; build a new one whenever the roster or target changes.
type Resolver struct {
	target int
	names  roster.NameIndex
}

// NewResolver indexes the roster by name for coverage lookups.
func NewResolver(list []players.Player, target int) Resolver {
	return Resolver{target: target, names: roster.IndexByName(list)}
}

// Target reports the threshold in effect.
func (r Resolver) Target() int {
	return r.target
}

// Direct reports whether the player's own kills meet the target.
func (r Resolver) Direct(p players.Player) bool {
	return p.Kills() >= r.target
}

// Covered reports whether any player named in p's coverage is directly
// complete. Only direct completion of the covered player counts, so coverage
// never chains and cycles terminate.
func (r Resolver) Covered(p players.Player) bool {
	for _, name := range p.Coverage {
		covered, ok := r.names.Lookup(name)
		if ok && r.Direct(covered) {
			return true
		}
	}
	return false
}

// IsComplete reports direct completion or completion through coverage.
func (r Resolver) IsComplete(p players.Player) bool {
	return r.Direct(p) || r.Covered(p)
}

// Status resolves completion and how it was reached.
func (r Resolver) Status(p players.Player) Status {
	direct := r.Direct(p)
	covered := !direct && r.Covered(p)
	return Status{
		Complete:    direct || covered,
		Direct:      direct,
		ViaCoverage: covered,
	}
}
