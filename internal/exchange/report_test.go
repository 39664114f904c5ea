package exchange

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
)

func TestWriteSummaryGroupsThousands(t *testing.T) {
	var buf bytes.Buffer
	s := weeks.Summary{
		TotalPlayers:   3,
		TotalKills:     12345,
		AverageKills:   4115,
		CompletedCount: 2,
		TopPerformer:   &weeks.Performer{Name: "A", Kills: 10000},
	}
	if err := WriteSummary(&buf, "2024-W10", 1500, s, language.English); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Week: 2024-W10", "Target: 1,500", "Total dreads: 12,345", "Completed: 2/3", "Top performer: A (10,000)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestWriteSummaryWithoutTopPerformer(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, "2024-W10", 50, weeks.Summary{}, language.English); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "Top performer: none") {
		t.Fatalf("unexpected output %s", buf.String())
	}
}
