package players

import "slices"

// Player is one alliance member's kill tally for the live week.
type Player struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	StartCount int      `json:"startDreads"`
	EndCount   int      `json:"endDreads"`
	Coverage   []string `json:"coverage"`
	Note       string   `json:"note"`
}

// Kills is the week's delta. Negative values are valid corrections.
func (p Player) Kills() int {
	return p.EndCount - p.StartCount
}

// HasCounts reports whether either counter was filled in.
func (p Player) HasCounts() bool {
	return p.StartCount != 0 || p.EndCount != 0
}

// Clone returns a copy that shares no slices with p.
func (p Player) Clone() Player {
	out := p
	out.Coverage = slices.Clone(p.Coverage)
	if out.Coverage == nil {
		out.Coverage = []string{}
	}
	return out
}

// Field names an editable player attribute.
type Field string

const (
	FieldName     Field = "name"
	FieldStart    Field = "start"
	FieldEnd      Field = "end"
	FieldCoverage Field = "coverage"
	FieldNote     Field = "note"
)

var fieldAliases = map[string]Field{
	"name":        FieldName,
	"start":       FieldStart,
	"startdreads": FieldStart,
	"end":         FieldEnd,
	"enddreads":   FieldEnd,
	"coverage":    FieldCoverage,
	"note":        FieldNote,
}

// ParseField resolves user input to a Field. The bool is false for unknown names.
func ParseField(raw string) (Field, bool) {
	f, ok := fieldAliases[normalizeKey(raw)]
	return f, ok
}
