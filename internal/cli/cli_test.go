package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/preston-bernstein/dread-tracker/internal/app/tracker"
	"github.com/preston-bernstein/dread-tracker/internal/config"
	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/snapshots"
)

var fixedNow = time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

func baseConfig(dir string) config.Config {
	return config.Config{
		DefaultTarget: 50,
		Storage: config.StorageConfig{
			Backend:    config.BackendFile,
			Path:       filepath.Join(dir, "state.json"),
			ArchiveDir: filepath.Join(dir, "weeks"),
		},
		HTTP: config.HTTPConfig{Port: "0", ShutdownTimeout: time.Second},
	}
}

func newOptions(t *testing.T) (Options, string) {
	t.Helper()
	dir := t.TempDir()
	return Options{
		Config: baseConfig(dir),
		Lang:   language.English,
		Now:    func() time.Time { return fixedNow },
	}, dir
}

func mustRun(t *testing.T, opts Options, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	opts.Out = &out
	if err := Run(context.Background(), opts, args); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func runErr(opts Options, args ...string) error {
	return Run(context.Background(), opts, args)
}

func TestRosterEditingPersistsAcrossRuns(t *testing.T) {
	opts, _ := newOptions(t)

	if out := mustRun(t, opts, "players"); !strings.Contains(out, "player_1") || !strings.Contains(out, "Player 1") {
		t.Fatalf("expected seeded player, got %q", out)
	}
	mustRun(t, opts, "set", "player_1", "name", "Alice")
	mustRun(t, opts, "set", "player_1", "start", "10")
	if out := mustRun(t, opts, "set", "player_1", "end", "70"); out != "player_1: Alice start=10 end=70 kills=60\n" {
		t.Fatalf("unexpected set output %q", out)
	}
	if out := mustRun(t, opts, "add"); out != "added player_2 (Player 2)\n" {
		t.Fatalf("unexpected add output %q", out)
	}
	mustRun(t, opts, "set", "player_2", "name", "Bob", "Jr")
	mustRun(t, opts, "set", "player_2", "coverage", "Alice")

	out := mustRun(t, opts, "players")
	if !strings.Contains(out, "Bob Jr") || !strings.Contains(out, "covered") {
		t.Fatalf("expected covered multi-word name, got %q", out)
	}
	board := mustRun(t, opts, "leaderboard")
	if !strings.Contains(board, "#1*") || strings.Index(board, "Alice") > strings.Index(board, "Bob Jr") {
		t.Fatalf("expected Alice ranked first, got %q", board)
	}

	if out := mustRun(t, opts, "remove-last"); out != "removed player_2 (Bob Jr)\n" {
		t.Fatalf("unexpected remove-last output %q", out)
	}
	mustRun(t, opts, "remove", "player_1")
	if out := mustRun(t, opts, "remove-last"); out != "roster is empty\n" {
		t.Fatalf("unexpected output on empty roster %q", out)
	}
	mustRun(t, opts, "add")
	mustRun(t, opts, "clear")
	if out := mustRun(t, opts, "add"); !strings.Contains(out, "player_1") {
		t.Fatalf("expected ids to restart after clear, got %q", out)
	}
}

func TestWeekLifecycle(t *testing.T) {
	opts, dir := newOptions(t)
	mustRun(t, opts, "set", "player_1", "name", "Alice")
	mustRun(t, opts, "set", "player_1", "start", "10")
	mustRun(t, opts, "set", "player_1", "end", "70")

	if out := mustRun(t, opts, "save"); out != "saved 2024-W10 (1 players, 60 dreads)\n" {
		t.Fatalf("unexpected save output %q", out)
	}
	if _, err := os.Stat(snapshots.WeekSnapshotPath(filepath.Join(dir, "weeks"), "2024-W10")); err != nil {
		t.Fatalf("expected save to mirror into the archive: %v", err)
	}
	mustRun(t, opts, "save", "2024-W09")
	if out := mustRun(t, opts, "weeks"); out != "2024-W10\n2024-W09\n" {
		t.Fatalf("unexpected weeks output %q", out)
	}
	week := mustRun(t, opts, "week", "2024-W10")
	if !strings.Contains(week, "Week: 2024-W10") || !strings.Contains(week, "Alice") {
		t.Fatalf("unexpected week output %q", week)
	}

	if out := mustRun(t, opts, "copy", "2024-W10"); out != "copied 1 players from 2024-W10\n" {
		t.Fatalf("unexpected copy output %q", out)
	}
	if out := mustRun(t, opts, "players"); !strings.Contains(out, "Alice") {
		t.Fatalf("expected copied roster, got %q", out)
	}
	if out := mustRun(t, opts, "load", "2024-W09"); !strings.Contains(out, "loaded 2024-W09") {
		t.Fatalf("unexpected load output %q", out)
	}
	if out := mustRun(t, opts, "settings"); !strings.Contains(out, "2024-W09") {
		t.Fatalf("expected loaded week to become current, got %q", out)
	}

	profile := mustRun(t, opts, "profile", "Alice")
	if !strings.Contains(profile, "Alice: 120 dreads over 2 weeks") {
		t.Fatalf("unexpected profile %q", profile)
	}
	if err := runErr(opts, "profile", "Nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown profile, got %v", err)
	}
	if err := runErr(opts, "load", "2023-W01"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown week, got %v", err)
	}
	if err := runErr(opts, "save", "week-ten"); !errors.Is(err, domain.ErrInvalidFormat) {
		t.Fatalf("expected invalid format for bad week id, got %v", err)
	}
}

func TestArchiveAndRestoreWeek(t *testing.T) {
	opts, _ := newOptions(t)
	mustRun(t, opts, "save")
	if out := mustRun(t, opts, "archive"); out != "archived 1 weeks\n" {
		t.Fatalf("unexpected archive output %q", out)
	}
	if out := mustRun(t, opts, "restore-week", "2024-W10"); out != "restored 2024-W10 from the archive\n" {
		t.Fatalf("unexpected restore-week output %q", out)
	}

	opts.Config.Storage.ArchiveDir = ""
	if err := runErr(opts, "archive"); !errors.Is(err, tracker.ErrArchiveDisabled) {
		t.Fatalf("expected archive disabled, got %v", err)
	}
}

func TestExportImportBackupRestore(t *testing.T) {
	opts, dir := newOptions(t)
	mustRun(t, opts, "set", "player_1", "name", "Alice")
	mustRun(t, opts, "set", "player_1", "start", "10")
	mustRun(t, opts, "set", "player_1", "end", "70")
	mustRun(t, opts, "save")

	csvPath := filepath.Join(dir, "roster.csv")
	mustRun(t, opts, "export", "csv", csvPath)
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.Contains(string(data), `"Alice","10","70","60","Yes",""`) {
		t.Fatalf("unexpected csv %q", data)
	}
	if out := mustRun(t, opts, "export", "text"); !strings.Contains(out, "Alice") {
		t.Fatalf("expected text export on stdout, got %q", out)
	}

	jsonPath := filepath.Join(dir, "roster.json")
	mustRun(t, opts, "export", "json", jsonPath)
	backupPath := filepath.Join(dir, "backup.json")
	mustRun(t, opts, "backup", backupPath)

	mustRun(t, opts, "clear")
	if out := mustRun(t, opts, "import", jsonPath); out != "imported 1 players\n" {
		t.Fatalf("unexpected import output %q", out)
	}
	if out := mustRun(t, opts, "player", "player_1"); !strings.Contains(out, "Alice") {
		t.Fatalf("expected imported player card, got %q", out)
	}

	mustRun(t, opts, "clear")
	if out := mustRun(t, opts, "restore", backupPath); out != "restored state with 1 saved weeks\n" {
		t.Fatalf("unexpected restore output %q", out)
	}
	if out := mustRun(t, opts, "players"); !strings.Contains(out, "Alice") {
		t.Fatalf("expected roster back after restore, got %q", out)
	}

	var backup bytes.Buffer
	opts.Out = &backup
	if err := runErr(opts, "backup", "-"); err != nil {
		t.Fatalf("backup to stdout: %v", err)
	}
	restoreOpts := opts
	restoreOpts.In = bytes.NewReader(backup.Bytes())
	mustRun(t, restoreOpts, "restore", "-")

	restoreOpts.In = strings.NewReader("{not json")
	if err := runErr(restoreOpts, "restore", "-"); !errors.Is(err, domain.ErrInvalidFormat) {
		t.Fatalf("expected invalid format for malformed backup, got %v", err)
	}
}

func TestSettingsCommands(t *testing.T) {
	opts, _ := newOptions(t)
	mustRun(t, opts, "target", "75")
	mustRun(t, opts, "goal", "1500")
	mustRun(t, opts, "custom-target", "Alice", "30")
	mustRun(t, opts, "notify", "enabled=false", "weeklyComplete=false")

	opts.JSON = true
	var settings tracker.Settings
	if err := json.Unmarshal([]byte(mustRun(t, opts, "settings")), &settings); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if settings.Target != 75 || settings.TeamGoal != 1500 || settings.CustomTargets["Alice"] != 30 {
		t.Fatalf("unexpected settings %+v", settings)
	}
	if settings.Notifications.Enabled || settings.Notifications.WeeklyComplete || !settings.Notifications.TargetReached {
		t.Fatalf("unexpected notifications %+v", settings.Notifications)
	}
	if settings.CurrentWeek != "2024-W10" {
		t.Fatalf("expected current week 2024-W10, got %s", settings.CurrentWeek)
	}

	opts.JSON = false
	if err := runErr(opts, "target", "lots"); !errors.Is(err, domain.ErrInvalidField) {
		t.Fatalf("expected invalid field, got %v", err)
	}
	if err := runErr(opts, "notify", "sound=true"); !errors.Is(err, domain.ErrInvalidField) {
		t.Fatalf("expected invalid field for unknown key, got %v", err)
	}
	if err := runErr(opts, "notify", "enabled=maybe"); !errors.Is(err, domain.ErrInvalidField) {
		t.Fatalf("expected invalid field for bad bool, got %v", err)
	}
	if err := runErr(opts, "set", "player_1", "colour", "red"); !errors.Is(err, domain.ErrInvalidField) {
		t.Fatalf("expected invalid field for unknown player field, got %v", err)
	}
}

func TestReportsHonorLanguage(t *testing.T) {
	opts, _ := newOptions(t)
	mustRun(t, opts, "target", "1500")
	if out := mustRun(t, opts, "summary"); !strings.Contains(out, "Target: 1,500") {
		t.Fatalf("expected english grouping, got %q", out)
	}
	opts.Lang = language.German
	if out := mustRun(t, opts, "summary"); !strings.Contains(out, "Target: 1.500") {
		t.Fatalf("expected german grouping, got %q", out)
	}
}

func TestViewCommandsRender(t *testing.T) {
	opts, _ := newOptions(t)
	mustRun(t, opts, "set", "player_1", "end", "120")
	mustRun(t, opts, "save")

	for _, tc := range []struct {
		cmd  string
		want string
	}{
		{"monthly", "Player 1"},
		{"trends", "2024-W10"},
		{"achievements", "ACHIEVEMENT"},
		{"milestones", "MILESTONE"},
	} {
		if out := mustRun(t, opts, tc.cmd); !strings.Contains(out, tc.want) {
			t.Fatalf("%s: expected %q in %q", tc.cmd, tc.want, out)
		}
	}

	opts.JSON = true
	var board []map[string]any
	if err := json.Unmarshal([]byte(mustRun(t, opts, "leaderboard")), &board); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	if len(board) != 1 || board[0]["kills"] != float64(120) {
		t.Fatalf("unexpected leaderboard %+v", board)
	}
	var added map[string]any
	if err := json.Unmarshal([]byte(mustRun(t, opts, "add")), &added); err != nil {
		t.Fatalf("decode add: %v", err)
	}
	if added["id"] != "player_2" {
		t.Fatalf("unexpected add payload %+v", added)
	}
}

func TestUsageErrors(t *testing.T) {
	opts, _ := newOptions(t)
	cases := [][]string{
		nil,
		{"bogus"},
		{"remove"},
		{"target", "1", "2"},
		{"export", "xml"},
	}
	for _, args := range cases {
		if err := runErr(opts, args...); !errors.Is(err, ErrUsage) {
			t.Fatalf("%v: expected usage error, got %v", args, err)
		}
	}

	out := mustRun(t, opts, "help")
	for _, want := range []string{"usage: dreadtracker", "restore-week <week>", "serve"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in usage, got %q", want, out)
		}
	}
}

func TestParseArgs(t *testing.T) {
	newFlags := func() *flag.FlagSet {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		return fs
	}
	cfg := baseConfig(t.TempDir())

	opts, rest, err := ParseArgs(newFlags(), []string{"-backend", " BOLT ", "-store", "x.db", "-retention", "4", "-json", "-lang", "de", "players"}, cfg)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.Config.Storage.Backend != config.BackendBolt || opts.Config.Storage.Path != "x.db" || opts.Config.Storage.RetentionWeeks != 4 {
		t.Fatalf("unexpected storage config %+v", opts.Config.Storage)
	}
	if !opts.JSON || opts.Lang != language.German {
		t.Fatalf("unexpected output options json=%t lang=%v", opts.JSON, opts.Lang)
	}
	if len(rest) != 1 || rest[0] != "players" {
		t.Fatalf("unexpected remaining args %v", rest)
	}

	if _, _, err := ParseArgs(newFlags(), []string{"-backend", "mongo"}, cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
	if _, _, err := ParseArgs(newFlags(), []string{"-lang", "not a tag!"}, cfg); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error for bad language, got %v", err)
	}
	if _, _, err := ParseArgs(newFlags(), []string{"-nope"}, cfg); err == nil {
		t.Fatal("expected unknown flag error")
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	opts, _ := newOptions(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, opts, []string{"serve"}) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}
