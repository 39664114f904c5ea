package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/preston-bernstein/dread-tracker/internal/app/tracker"
	"github.com/preston-bernstein/dread-tracker/internal/domain/players"
	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
	"github.com/preston-bernstein/dread-tracker/internal/exchange"
	"github.com/preston-bernstein/dread-tracker/internal/stats"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func statusLabel(complete, viaCoverage bool) string {
	switch {
	case viaCoverage:
		return "covered"
	case complete:
		return "done"
	default:
		return "-"
	}
}

func writePlayers(w io.Writer, views []tracker.PlayerView) error {
	tw := newTable(w, "ID", "NAME", "START", "END", "KILLS", "STATUS", "COVERAGE")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			v.ID, v.Name, v.StartCount, v.EndCount, v.Kills,
			statusLabel(v.Status.Complete, v.Status.ViaCoverage),
			players.FormatCoverage(v.Coverage))
	}
	return tw.Flush()
}

func writeLeaderboard(w io.Writer, board []stats.LeaderboardEntry) error {
	tw := newTable(w, "RANK", "NAME", "KILLS", "STATUS")
	for _, e := range board {
		rank := fmt.Sprintf("#%d", e.Rank)
		if e.Top3 {
			rank += "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", rank, e.Name, e.Kills, statusLabel(e.Complete, e.ViaCoverage))
	}
	return tw.Flush()
}

func writeWeek(w io.Writer, snap weeks.Snapshot, opts Options) error {
	if err := exchange.WriteSummary(w, snap.WeekID, snap.Target, snap.Summary, opts.Lang); err != nil {
		return err
	}
	fmt.Fprintln(w)
	tw := newTable(w, "NAME", "START", "END", "KILLS", "COMPLETE")
	for _, e := range snap.Players {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%t\n", e.Name, e.StartCount, e.EndCount, e.Kills, e.Complete)
	}
	return tw.Flush()
}

func writePerformers(w io.Writer, list []weeks.Performer) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "no saved weeks this month")
		return err
	}
	tw := newTable(w, "NAME", "KILLS")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%d\n", p.Name, p.Kills)
	}
	return tw.Flush()
}

func writeTrends(w io.Writer, weekly []stats.WeekPoint, comparison []weeks.Performer) error {
	tw := newTable(w, "WEEK", "TOTAL", "COMPLETION")
	for _, p := range weekly {
		fmt.Fprintf(tw, "%s\t%d\t%.0f%%\n", p.WeekID, p.TotalKills, p.CompletionRate)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return writePerformers(w, comparison)
}

func writeAchievements(w io.Writer, list []stats.Achievement) error {
	tw := newTable(w, "ACHIEVEMENT", "UNLOCKED", "PLAYERS")
	for _, a := range list {
		fmt.Fprintf(tw, "%s\t%t\t%s\n", a.Title, a.Unlocked, strings.Join(a.Players, ", "))
	}
	return tw.Flush()
}

func writeMilestones(w io.Writer, list []stats.Milestone) error {
	tw := newTable(w, "MILESTONE", "PROGRESS", "REACHED")
	for _, m := range list {
		fmt.Fprintf(tw, "%s\t%d/%d\t%t\n", m.Title, m.Current, m.Target, m.Reached)
	}
	return tw.Flush()
}

func writeSettings(w io.Writer, s tracker.Settings) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "current week\t%s\n", s.CurrentWeek)
	fmt.Fprintf(tw, "target\t%d\n", s.Target)
	fmt.Fprintf(tw, "team goal\t%d\n", s.TeamGoal)
	for _, name := range slices.Sorted(maps.Keys(s.CustomTargets)) {
		fmt.Fprintf(tw, "target for %s\t%d\n", name, s.CustomTargets[name])
	}
	n := s.Notifications
	fmt.Fprintf(tw, "notifications\tenabled=%t targetReached=%t weeklyComplete=%t achievementUnlocked=%t\n",
		n.Enabled, n.TargetReached, n.WeeklyComplete, n.AchievementUnlocked)
	if s.LastSaved != "" {
		fmt.Fprintf(tw, "last saved\t%s\n", s.LastSaved)
	}
	return tw.Flush()
}
