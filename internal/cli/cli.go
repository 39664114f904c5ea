// Package cli implements the dreadtracker command line: one subcommand per
// tracker operation, plus the read-only serve mode.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"

	"github.com/preston-bernstein/dread-tracker/internal/app/tracker"
	"github.com/preston-bernstein/dread-tracker/internal/config"
	"github.com/preston-bernstein/dread-tracker/internal/http/handlers"
	"github.com/preston-bernstein/dread-tracker/internal/metrics"
	"github.com/preston-bernstein/dread-tracker/internal/persistence"
	"github.com/preston-bernstein/dread-tracker/internal/server"
	"github.com/preston-bernstein/dread-tracker/internal/snapshots"
)

// ErrUsage marks invocations that name no command, an unknown command or the
// wrong number of arguments.
var ErrUsage = errors.New("usage")

// Options carries everything a command needs besides its arguments.
type Options struct {
	Config config.Config
	JSON   bool
	Lang   language.Tag
	Logger *slog.Logger
	Now    func() time.Time
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// ParseArgs applies global flags over cfg and returns the options together
// with the remaining command arguments.
func ParseArgs(fs *flag.FlagSet, args []string, cfg config.Config) (Options, []string, error) {
	var (
		jsonOut bool
		lang    string
	)
	fs.StringVar(&cfg.Storage.Backend, "backend", cfg.Storage.Backend, "storage backend (file, bolt, sqlite)")
	fs.StringVar(&cfg.Storage.Path, "store", cfg.Storage.Path, "path of the tracker state store")
	fs.StringVar(&cfg.Storage.ArchiveDir, "archive-dir", cfg.Storage.ArchiveDir, "directory of the week archive (empty disables it)")
	fs.IntVar(&cfg.Storage.RetentionWeeks, "retention", cfg.Storage.RetentionWeeks, "archive retention in weeks (0 keeps all)")
	fs.IntVar(&cfg.DefaultTarget, "default-target", cfg.DefaultTarget, "target applied to new weeks")
	fs.StringVar(&cfg.HTTP.Port, "port", cfg.HTTP.Port, "serve mode HTTP port")
	fs.BoolVar(&jsonOut, "json", false, "print results as JSON")
	fs.StringVar(&lang, "lang", "en", "language used to group numbers in reports")
	if err := fs.Parse(args); err != nil {
		return Options{}, nil, err
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if err := cfg.Validate(); err != nil {
		return Options{}, nil, err
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return Options{}, nil, fmt.Errorf("%w: -lang %q: %w", ErrUsage, lang, err)
	}
	return Options{Config: cfg, JSON: jsonOut, Lang: tag}, fs.Args(), nil
}

// Run executes one command. Every command except serve opens the tracker,
// runs and closes it again.
func Run(ctx context.Context, opts Options, args []string) error {
	opts = withDefaults(opts)
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given", ErrUsage)
	}
	name, rest := args[0], args[1:]
	if name == "help" {
		writeUsage(opts.Out)
		return nil
	}
	if name == "serve" {
		return serve(ctx, opts)
	}

	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrUsage, name)
	}
	if len(rest) < cmd.minArgs || (cmd.maxArgs >= 0 && len(rest) > cmd.maxArgs) {
		return fmt.Errorf("%w: %s %s", ErrUsage, name, cmd.usage)
	}

	tr, err := openTracker(ctx, opts, metrics.NewRecorder())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := tr.Close(); cerr != nil {
			opts.Logger.Warn("close tracker store failed", "error", cerr)
		}
	}()
	return cmd.run(ctx, &session{opts: opts, tracker: tr}, rest)
}

func withDefaults(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Lang == language.Und {
		opts.Lang = language.English
	}
	if opts.In == nil {
		opts.In = strings.NewReader("")
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.ErrOut == nil {
		opts.ErrOut = io.Discard
	}
	return opts
}

func openTracker(ctx context.Context, opts Options, recorder *metrics.Recorder) (*tracker.Tracker, error) {
	gw, err := persistence.Open(opts.Config.Storage)
	if err != nil {
		return nil, err
	}
	trOpts := tracker.Options{
		Gateway:       persistence.WithRetry(gw, opts.Logger, 0, 0),
		Logger:        opts.Logger,
		Recorder:      recorder,
		Now:           opts.Now,
		DefaultTarget: opts.Config.DefaultTarget,
	}
	if dir := opts.Config.Storage.ArchiveDir; dir != "" {
		trOpts.Archive = snapshots.NewWriter(dir, opts.Config.Storage.RetentionWeeks).WithClock(opts.Now)
		trOpts.ArchiveReader = snapshots.NewFSStore(dir)
	}
	tr, err := tracker.Open(ctx, trOpts)
	if err != nil {
		_ = gw.Close()
		return nil, err
	}
	return tr, nil
}

func serve(ctx context.Context, opts Options) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	var opened *tracker.Tracker
	srv, err := server.New(ctx, opts.Config, opts.Logger, func(ctx context.Context, recorder *metrics.Recorder) (handlers.Reader, error) {
		tr, err := openTracker(ctx, opts, recorder)
		if err != nil {
			return nil, err
		}
		opened = tr
		return tr, nil
	})
	if err != nil {
		return err
	}
	defer opened.Close()

	srv.Run(ctx, stop)
	return nil
}

func writeUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: dreadtracker [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		c := commands[name]
		fmt.Fprintf(tw, "  %s\t%s\n", strings.TrimSpace(name+" "+c.usage), c.help)
	}
	fmt.Fprintf(tw, "  serve\tserve read-only HTTP views until interrupted\n")
	tw.Flush()
}
