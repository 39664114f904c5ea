package roster

import "github.com/preston-bernstein/dread-tracker/internal/domain/players"

// NameIndex resolves display names to players. Coverage and cross-week
// identity both match on the exact current name, so renaming a player
// silently detaches references to the old name. Keeping that rule here
// means a move to stable identities only touches this type.
type NameIndex struct {
	byName map[string]players.Player
}

// IndexByName builds an index where the first player with a name wins.
func IndexByName(list []players.Player) NameIndex {
	idx := NameIndex{byName: make(map[string]players.Player, len(list))}
	for _, p := range list {
		if _, taken := idx.byName[p.Name]; !taken {
			idx.byName[p.Name] = p
		}
	}
	return idx
}

// Lookup returns the player registered under name.
func (idx NameIndex) Lookup(name string) (players.Player, bool) {
	p, ok := idx.byName[name]
	return p, ok
}

// SameIdentity reports whether two names refer to the same player across weeks.
func SameIdentity(a, b string) bool {
	return a == b
}
