package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/config"
	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/state"
)

type flakeyGateway struct {
	*MemoryGateway
	failures int
	err      error
	calls    int
}

func (f *flakeyGateway) Save(ctx context.Context, st state.State) error {
	f.calls++
	if f.calls <= f.failures {
		return f.err
	}
	return f.MemoryGateway.Save(ctx, st)
}

func newFlakey(failures int, err error) *flakeyGateway {
	return &flakeyGateway{MemoryGateway: NewMemoryGateway(), failures: failures, err: err}
}

func TestRetryingGatewayRetriesAndSucceeds(t *testing.T) {
	fg := newFlakey(2, errors.New("database is locked"))
	g := WithRetry(fg, nil, 3, time.Millisecond)

	if err := g.Save(context.Background(), sampleState()); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if fg.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fg.calls)
	}
	got, err := g.Load(context.Background())
	if err != nil || got.TeamGoal != 500 {
		t.Fatalf("expected saved state to load, got %+v err %v", got, err)
	}
}

func TestRetryingGatewayStopsAfterMaxAttempts(t *testing.T) {
	boom := errors.New("boom")
	fg := newFlakey(5, boom)
	g := WithRetry(fg, nil, 2, time.Millisecond)

	if err := g.Save(context.Background(), sampleState()); !errors.Is(err, boom) {
		t.Fatalf("expected last error, got %v", err)
	}
	if fg.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fg.calls)
	}
}

func TestRetryingGatewaySkipsPermanentErrors(t *testing.T) {
	fg := newFlakey(5, fmt.Errorf("encode: %w", domain.ErrInvalidFormat))
	g := WithRetry(fg, nil, 3, time.Millisecond)

	if err := g.Save(context.Background(), sampleState()); !errors.Is(err, domain.ErrInvalidFormat) {
		t.Fatalf("expected invalid format, got %v", err)
	}
	if fg.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", fg.calls)
	}
}

func TestRetryingGatewayRespectsContextCancel(t *testing.T) {
	fg := newFlakey(5, errors.New("busy"))
	g := WithRetry(fg, nil, 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	g.backoffFn = func(int) time.Duration {
		cancel()
		return time.Hour
	}
	if err := g.Save(ctx, sampleState()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestRetryingGatewayDefaultsAndName(t *testing.T) {
	g := WithRetry(NewMemoryGateway(), nil, 0, 0)
	if g.maxAttempts != defaultSaveAttempts {
		t.Fatalf("expected default attempts, got %d", g.maxAttempts)
	}
	if got := g.backoffFn(2); got != 2*defaultSaveBackoff {
		t.Fatalf("expected linear backoff, got %v", got)
	}
	if got := Name(g); got != "memory" {
		t.Fatalf("expected wrapped backend name, got %q", got)
	}

	fg, err := Open(config.StorageConfig{Backend: config.BackendFile, Path: t.TempDir() + "/s.json"})
	if err != nil {
		t.Fatal(err)
	}
	if got := Name(WithRetry(fg, nil, 1, 0)); got != config.BackendFile {
		t.Fatalf("expected file backend name, got %q", got)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
