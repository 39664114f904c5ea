package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/preston-bernstein/dread-tracker/internal/app/tracker"
	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/exchange"
)

type session struct {
	opts    Options
	tracker *tracker.Tracker
}

type command struct {
	usage   string
	help    string
	minArgs int
	// maxArgs < 0 accepts any number of trailing arguments.
	maxArgs int
	run     func(ctx context.Context, s *session, args []string) error
}

var commands = map[string]command{
	"add":           {"", "add a default player", 0, 0, runAdd},
	"remove":        {"<id>", "remove a player", 1, 1, runRemove},
	"remove-last":   {"", "remove the last player", 0, 0, runRemoveLast},
	"clear":         {"", "remove every player and restart ids", 0, 0, runClear},
	"set":           {"<id> <field> <value>", "set name, start, end, coverage or note", 2, -1, runSet},
	"target":        {"<n>", "set the active target", 1, 1, runTarget},
	"goal":          {"<n>", "set the alliance goal", 1, 1, runGoal},
	"custom-target": {"<name> <n>", "set a per-player target (negative removes it)", 2, 2, runCustomTarget},
	"notify":        {"<key=bool>...", "set notification preferences", 1, -1, runNotify},
	"players":       {"", "list players with kills and completion", 0, 0, runPlayers},
	"player":        {"<id>", "print one player's card", 1, 1, runPlayerCard},
	"summary":       {"", "print roster totals", 0, 0, runSummary},
	"leaderboard":   {"", "rank players by kills", 0, 0, runLeaderboard},
	"save":          {"[week]", "save the roster as a week", 0, 1, runSave},
	"load":          {"<week>", "load a saved week for editing", 1, 1, runLoad},
	"copy":          {"<week>", "copy a week's roster with zeroed counts", 1, 1, runCopy},
	"new-week":      {"", "save if counted, then start the current week", 0, 0, runNewWeek},
	"weeks":         {"", "list saved weeks", 0, 0, runWeeks},
	"week":          {"<week>", "show a saved week", 1, 1, runWeek},
	"profile":       {"<name>", "show a player's history", 1, -1, runProfile},
	"monthly":       {"", "top performers this month", 0, 0, runMonthly},
	"trends":        {"", "weekly totals, completion rates and comparison", 0, 0, runTrends},
	"achievements":  {"", "show achievements", 0, 0, runAchievements},
	"milestones":    {"", "show alliance milestones", 0, 0, runMilestones},
	"export":        {"<json|csv|text> [file]", "export the roster", 1, 2, runExport},
	"import":        {"<file|->", "replace the roster from an export", 1, 1, runImport},
	"backup":        {"<file|->", "write the full state", 1, 1, runBackup},
	"restore":       {"<file|->", "replace the full state from a backup", 1, 1, runRestore},
	"archive":       {"", "write every saved week to the archive", 0, 0, runArchive},
	"restore-week":  {"<week>", "copy an archived week back into saved weeks", 1, 1, runRestoreWeek},
	"settings":      {"", "show settings", 0, 0, runSettings},
}

func runAdd(ctx context.Context, s *session, _ []string) error {
	p := s.tracker.AddPlayer(ctx)
	return s.printf(p, "added %s (%s)\n", p.ID, p.Name)
}

func runRemove(ctx context.Context, s *session, args []string) error {
	if err := s.tracker.RemovePlayer(ctx, args[0]); err != nil {
		return err
	}
	return s.printf(map[string]string{"removed": args[0]}, "removed %s\n", args[0])
}

func runRemoveLast(ctx context.Context, s *session, _ []string) error {
	p, ok := s.tracker.RemoveLastPlayer(ctx)
	if !ok {
		return s.printf(map[string]any{"removed": nil}, "roster is empty\n")
	}
	return s.printf(map[string]string{"removed": p.ID}, "removed %s (%s)\n", p.ID, p.Name)
}

func runClear(ctx context.Context, s *session, _ []string) error {
	s.tracker.ClearPlayers(ctx)
	return s.printf(map[string]int{"players": 0}, "roster cleared\n")
}

func runSet(ctx context.Context, s *session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: set <id> <field> <value>", ErrUsage)
	}
	p, err := s.tracker.UpdateField(ctx, args[0], args[1], strings.Join(args[2:], " "))
	if err != nil {
		return err
	}
	return s.printf(p, "%s: %s start=%d end=%d kills=%d\n", p.ID, p.Name, p.StartCount, p.EndCount, p.Kills())
}

func runTarget(ctx context.Context, s *session, args []string) error {
	n, err := parseInt("target", args[0])
	if err != nil {
		return err
	}
	if err := s.tracker.SetTarget(ctx, n); err != nil {
		return err
	}
	return s.printf(map[string]int{"target": n}, "target set to %d\n", n)
}

func runGoal(ctx context.Context, s *session, args []string) error {
	n, err := parseInt("goal", args[0])
	if err != nil {
		return err
	}
	if err := s.tracker.SetTeamGoal(ctx, n); err != nil {
		return err
	}
	return s.printf(map[string]int{"teamGoal": n}, "team goal set to %d\n", n)
}

func runCustomTarget(ctx context.Context, s *session, args []string) error {
	n, err := parseInt("custom target", args[1])
	if err != nil {
		return err
	}
	if err := s.tracker.SetCustomTarget(ctx, args[0], n); err != nil {
		return err
	}
	return s.printf(s.tracker.Settings().CustomTargets, "custom target for %s set to %d\n", args[0], n)
}

func runNotify(ctx context.Context, s *session, args []string) error {
	n := s.tracker.Settings().Notifications
	fields := map[string]*bool{
		"enabled":             &n.Enabled,
		"targetreached":       &n.TargetReached,
		"weeklycomplete":      &n.WeeklyComplete,
		"achievementunlocked": &n.AchievementUnlocked,
	}
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		field, known := fields[strings.ToLower(key)]
		if !ok || !known {
			return fmt.Errorf("notification %q: %w", arg, domain.ErrInvalidField)
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("notification %q: %w", arg, domain.ErrInvalidField)
		}
		*field = v
	}
	s.tracker.SetNotifications(ctx, n)
	return s.printf(n, "notifications: enabled=%t targetReached=%t weeklyComplete=%t achievementUnlocked=%t\n",
		n.Enabled, n.TargetReached, n.WeeklyComplete, n.AchievementUnlocked)
}

func runPlayers(_ context.Context, s *session, _ []string) error {
	views := s.tracker.PlayerViews()
	if s.opts.JSON {
		return writeJSON(s.opts.Out, views)
	}
	return writePlayers(s.opts.Out, views)
}

func runPlayerCard(_ context.Context, s *session, args []string) error {
	if err := s.tracker.ExportPlayer(s.opts.Out, args[0]); err != nil {
		return err
	}
	_, err := fmt.Fprintln(s.opts.Out)
	return err
}

func runSummary(_ context.Context, s *session, _ []string) error {
	summary := s.tracker.Summary()
	if s.opts.JSON {
		return writeJSON(s.opts.Out, map[string]any{
			"week":    s.tracker.CurrentWeek(),
			"target":  s.tracker.Target(),
			"summary": summary,
		})
	}
	return exchange.WriteSummary(s.opts.Out, s.tracker.CurrentWeek(), s.tracker.Target(), summary, s.opts.Lang)
}

func runLeaderboard(_ context.Context, s *session, _ []string) error {
	board := s.tracker.Leaderboard()
	if s.opts.JSON {
		return writeJSON(s.opts.Out, board)
	}
	return writeLeaderboard(s.opts.Out, board)
}

func runSave(ctx context.Context, s *session, args []string) error {
	week := s.tracker.CurrentWeek()
	if len(args) == 1 {
		week = args[0]
	}
	snap, err := s.tracker.SaveWeekAs(ctx, week)
	if err != nil {
		return err
	}
	return s.printf(snap, "saved %s (%d players, %d dreads)\n", snap.WeekID, len(snap.Players), snap.Summary.TotalKills)
}

func runLoad(ctx context.Context, s *session, args []string) error {
	snap, err := s.tracker.LoadWeek(ctx, args[0])
	if err != nil {
		return err
	}
	return s.printf(snap, "loaded %s (%d players, target %d)\n", snap.WeekID, len(snap.Players), snap.Target)
}

func runCopy(ctx context.Context, s *session, args []string) error {
	list, err := s.tracker.CopyRoster(ctx, args[0])
	if err != nil {
		return err
	}
	return s.printf(list, "copied %d players from %s\n", len(list), args[0])
}

func runNewWeek(ctx context.Context, s *session, _ []string) error {
	week, err := s.tracker.StartNewWeek(ctx)
	if err != nil {
		return err
	}
	return s.printf(map[string]string{"week": week}, "started %s\n", week)
}

func runWeeks(_ context.Context, s *session, _ []string) error {
	ids := s.tracker.ListWeeks()
	if s.opts.JSON {
		return writeJSON(s.opts.Out, ids)
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(s.opts.Out, id); err != nil {
			return err
		}
	}
	return nil
}

func runWeek(_ context.Context, s *session, args []string) error {
	snap, err := s.tracker.Week(args[0])
	if err != nil {
		return err
	}
	if s.opts.JSON {
		return writeJSON(s.opts.Out, snap)
	}
	return writeWeek(s.opts.Out, snap, s.opts)
}

func runProfile(_ context.Context, s *session, args []string) error {
	name := strings.Join(args, " ")
	profile := s.tracker.Profile(name)
	if profile.WeeksActive == 0 {
		return fmt.Errorf("profile %q: %w", name, domain.ErrNotFound)
	}
	return s.printf(profile, "%s: %d dreads over %d weeks (avg %.1f, best %d in %s)\n",
		profile.Name, profile.TotalKills, profile.WeeksActive, profile.AverageKills, profile.BestWeek, profile.BestWeekID)
}

func runMonthly(_ context.Context, s *session, _ []string) error {
	top := s.tracker.MonthlyTop()
	if s.opts.JSON {
		return writeJSON(s.opts.Out, top)
	}
	return writePerformers(s.opts.Out, top)
}

func runTrends(_ context.Context, s *session, _ []string) error {
	weekly, comparison := s.tracker.WeeklyTrend(), s.tracker.Comparison()
	if s.opts.JSON {
		return writeJSON(s.opts.Out, map[string]any{"weekly": weekly, "comparison": comparison})
	}
	return writeTrends(s.opts.Out, weekly, comparison)
}

func runAchievements(_ context.Context, s *session, _ []string) error {
	list := s.tracker.Achievements()
	if s.opts.JSON {
		return writeJSON(s.opts.Out, list)
	}
	return writeAchievements(s.opts.Out, list)
}

func runMilestones(_ context.Context, s *session, _ []string) error {
	list := s.tracker.Milestones()
	if s.opts.JSON {
		return writeJSON(s.opts.Out, list)
	}
	return writeMilestones(s.opts.Out, list)
}

func runExport(_ context.Context, s *session, args []string) error {
	format, ok := exchange.ParseFormat(args[0])
	if !ok {
		return fmt.Errorf("%w: unknown export format %q", ErrUsage, args[0])
	}
	if len(args) == 1 {
		return s.tracker.Export(s.opts.Out, format)
	}
	path := args[1]
	if path == "." {
		path = exchange.FileName(format, s.opts.Now())
	}
	return writeFile(path, func(w io.Writer) error {
		return s.tracker.Export(w, format)
	})
}

func runImport(ctx context.Context, s *session, args []string) error {
	r, closeFn, err := s.open(args[0])
	if err != nil {
		return err
	}
	defer closeFn()
	n, err := s.tracker.Import(ctx, r)
	if err != nil {
		return err
	}
	return s.printf(map[string]int{"imported": n}, "imported %d players\n", n)
}

func runBackup(_ context.Context, s *session, args []string) error {
	if args[0] == "-" {
		return s.tracker.Backup(s.opts.Out)
	}
	return writeFile(args[0], s.tracker.Backup)
}

func runRestore(ctx context.Context, s *session, args []string) error {
	r, closeFn, err := s.open(args[0])
	if err != nil {
		return err
	}
	defer closeFn()
	if err := s.tracker.Restore(ctx, r); err != nil {
		return err
	}
	weeks := len(s.tracker.ListWeeks())
	return s.printf(map[string]int{"weeks": weeks}, "restored state with %d saved weeks\n", weeks)
}

func runArchive(_ context.Context, s *session, _ []string) error {
	n, err := s.tracker.Archive()
	if err != nil {
		return err
	}
	return s.printf(map[string]int{"archived": n}, "archived %d weeks\n", n)
}

func runRestoreWeek(ctx context.Context, s *session, args []string) error {
	snap, err := s.tracker.RestoreArchivedWeek(ctx, args[0])
	if err != nil {
		return err
	}
	return s.printf(snap, "restored %s from the archive\n", snap.WeekID)
}

func runSettings(_ context.Context, s *session, _ []string) error {
	settings := s.tracker.Settings()
	if s.opts.JSON {
		return writeJSON(s.opts.Out, settings)
	}
	return writeSettings(s.opts.Out, settings)
}

// printf writes payload as JSON in -json mode and the formatted line otherwise.
func (s *session) printf(payload any, format string, args ...any) error {
	if s.opts.JSON {
		return writeJSON(s.opts.Out, payload)
	}
	_, err := fmt.Fprintf(s.opts.Out, format, args...)
	return err
}

func (s *session) open(path string) (io.Reader, func(), error) {
	if path == "-" {
		return s.opts.In, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func parseInt(what, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", what, raw, domain.ErrInvalidField)
	}
	return n, nil
}
