package persistence

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/logging"
	"github.com/preston-bernstein/dread-tracker/internal/state"
)

const (
	defaultSaveAttempts = 3
	defaultSaveBackoff  = 50 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// RetryingGateway retries failed saves with a linear backoff. A bolt file
// held by a running serve process or a busy sqlite database usually clears
// within a few attempts. Loads are passed through unchanged.
type RetryingGateway struct {
	inner       Gateway
	logger      *slog.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// WithRetry wraps inner. Non-positive attempts or backoff select the defaults.
func WithRetry(inner Gateway, logger *slog.Logger, maxAttempts int, backoff time.Duration) *RetryingGateway {
	if maxAttempts <= 0 {
		maxAttempts = defaultSaveAttempts
	}
	if backoff <= 0 {
		backoff = defaultSaveBackoff
	}
	return &RetryingGateway{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (g *RetryingGateway) Load(ctx context.Context) (state.State, error) {
	return g.inner.Load(ctx)
}

func (g *RetryingGateway) Save(ctx context.Context, st state.State) error {
	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		err := g.inner.Save(ctx, st)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable(err) || attempt == g.maxAttempts {
			break
		}

		logging.Warn(logging.FromContext(ctx, g.logger), "state save retry",
			"attempt", attempt, "max_attempts", g.maxAttempts, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(g.backoffFn(attempt)):
		}
	}
	return lastErr
}

func (g *RetryingGateway) Close() error {
	return g.inner.Close()
}

// retryable excludes failures another attempt cannot fix.
func retryable(err error) bool {
	return !errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded) &&
		!errors.Is(err, domain.ErrInvalidFormat)
}
