package exchange

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
)

// WriteSummary prints the aggregate block of a results report with numbers
// grouped for the given language.
func WriteSummary(w io.Writer, weekID string, target int, s weeks.Summary, lang language.Tag) error {
	p := message.NewPrinter(lang)
	if _, err := p.Fprintf(w, "Week: %s\n", weekID); err != nil {
		return err
	}
	p.Fprintf(w, "Target: %d\n", target)
	p.Fprintf(w, "Players: %d\n", s.TotalPlayers)
	p.Fprintf(w, "Total dreads: %d\n", s.TotalKills)
	p.Fprintf(w, "Average dreads: %d\n", s.AverageKills)
	p.Fprintf(w, "Completed: %d/%d\n", s.CompletedCount, s.TotalPlayers)
	if s.TopPerformer != nil {
		_, err := p.Fprintf(w, "Top performer: %s (%d)\n", s.TopPerformer.Name, s.TopPerformer.Kills)
		return err
	}
	_, err := p.Fprintf(w, "Top performer: none\n")
	return err
}
