package exchange

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/completion"
	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
	"github.com/preston-bernstein/dread-tracker/internal/stats"
)

// Format names an export flavour.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// ParseFormat accepts the export flavours by name, case-insensitively.
func ParseFormat(raw string) (Format, bool) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatJSON, FormatCSV, FormatText:
		return f, true
	default:
		return "", false
	}
}

// Document is the JSON export payload.
type Document struct {
	Players    []players.Player `json:"players"`
	ExportDate time.Time        `json:"exportDate"`
	TotalKills int              `json:"totalDreads"`
}

// NewDocument builds an export document from the live roster.
func NewDocument(list []players.Player, now time.Time) Document {
	out := make([]players.Player, len(list))
	for i, p := range list {
		out[i] = p.Clone()
	}
	return Document{
		Players:    out,
		ExportDate: now.UTC(),
		TotalKills: stats.TotalKills(list),
	}
}

// WriteJSON writes the roster export as indented JSON.
func WriteJSON(w io.Writer, list []players.Player, now time.Time) error {
	data, err := json.MarshalIndent(NewDocument(list, now), "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

var csvHeader = []string{"Player Name", "Start Dreads", "End Dreads", "Dreads Killed", "Target Reached", "Coverage"}

// WriteCSV writes one quoted row per player. "Target Reached" reflects direct
// completion only; coverage does not count here.
func WriteCSV(w io.Writer, list []players.Player, target int) error {
	resolver := completion.NewResolver(list, target)
	rows := make([][]string, 0, len(list)+1)
	rows = append(rows, csvHeader)
	for _, p := range list {
		reached := "No"
		if resolver.Direct(p) {
			reached = "Yes"
		}
		rows = append(rows, []string{
			p.Name,
			strconv.Itoa(p.StartCount),
			strconv.Itoa(p.EndCount),
			strconv.Itoa(p.Kills()),
			reached,
			players.FormatCoverage(p.Coverage),
		})
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = quoteCell(cell)
		}
		lines[i] = strings.Join(cells, ",")
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func quoteCell(cell string) string {
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

// WriteText writes "<name>: <kills> dreads killed" per player.
func WriteText(w io.Writer, list []players.Player) error {
	lines := make([]string, len(list))
	for i, p := range list {
		lines[i] = fmt.Sprintf("%s: %d dreads killed", p.Name, p.Kills())
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// Write dispatches to the writer for the given format.
func Write(w io.Writer, format Format, list []players.Player, target int, now time.Time) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, list, now)
	case FormatCSV:
		return WriteCSV(w, list, target)
	case FormatText:
		return WriteText(w, list)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// FileName returns the download name used for an export made at now.
func FileName(format Format, now time.Time) string {
	ext := string(format)
	if format == FormatText {
		ext = "txt"
	}
	return fmt.Sprintf("dread-calculator-export-%s.%s", now.UTC().Format(time.DateOnly), ext)
}

// Card is the single-player export.
type Card struct {
	Name       string   `json:"name"`
	StartCount int      `json:"startDreads"`
	EndCount   int      `json:"endDreads"`
	Coverage   []string `json:"coverage"`
}

// WriteCard writes one player's card as indented JSON.
func WriteCard(w io.Writer, p players.Player) error {
	p = p.Clone()
	data, err := json.MarshalIndent(Card{
		Name:       p.Name,
		StartCount: p.StartCount,
		EndCount:   p.EndCount,
		Coverage:   p.Coverage,
	}, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
