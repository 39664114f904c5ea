package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/cli"
	"github.com/preston-bernstein/dread-tracker/internal/config"
	"github.com/preston-bernstein/dread-tracker/internal/logging"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_TRACKER_RUN") == "1" {
		return
	}
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code: 2 for
// usage errors, 1 for any other failure.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "dreadtracker:", err)
		return 1
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "dread-tracker",
		Version: appVersion,
		Output:  stderr,
	})

	fs := flag.NewFlagSet("dreadtracker", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts, rest, err := cli.ParseArgs(fs, args, cfg)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "dreadtracker:", err)
		return 2
	}
	opts.Logger = logger
	opts.Now = time.Now
	opts.In = stdin
	opts.Out = stdout
	opts.ErrOut = stderr

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, opts, rest); err != nil {
		fmt.Fprintln(stderr, "dreadtracker:", err)
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(stderr, `run "dreadtracker help" for the command list`)
			return 2
		}
		return 1
	}
	return 0
}
