// Package retry runs flaky external actions with bounded retries and
// exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/devstrap/devstrap/internal/ports"
)

// Options controls a single Execute call.
type Options struct {
	// Retries is the number of additional attempts after the first failure.
	Retries int
	// BackoffBase is the delay before the first retry; the delay doubles
	// for each subsequent retry.
	BackoffBase time.Duration
	// DryRun short-circuits Execute to the fallback without ever invoking
	// the action. Required for zero external side effects, not a shortcut.
	DryRun bool
	// Label names the action in retry diagnostics.
	Label string
}

// Executor retries actions, sleeping through the injected clock so tests
// control time.
type Executor struct {
	clock  ports.Clock
	logger ports.Logger
}

// NewExecutor creates an Executor.
func NewExecutor(clock ports.Clock, logger ports.Logger) *Executor {
	return &Executor{clock: clock, logger: logger}
}

// Execute invokes action, retrying up to opts.Retries additional times with
// exponential backoff. On success it returns the action's value. Once
// retries are exhausted it returns fallback; the underlying error is never
// propagated. Callers that need failure detail must capture it inside their
// own action. This is what lets optional install steps degrade to "skipped"
// instead of sinking the whole run.
func Execute[T any](ctx context.Context, e *Executor, action func(context.Context) (T, error), fallback T, opts Options) T {
	if opts.DryRun {
		return fallback
	}

	delay := opts.BackoffBase

	for attempt := 0; attempt <= opts.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fallback
			default:
			}
			e.logger.Debug(ctx, "retrying",
				ports.F("label", opts.Label),
				ports.F("attempt", attempt+1),
				ports.F("delay", delay.String()),
			)
			e.clock.Sleep(delay)
			delay *= 2
		}

		value, err := action(ctx)
		if err == nil {
			return value
		}

		e.logger.Warn(ctx, "attempt failed",
			ports.F("label", opts.Label),
			ports.F("attempt", attempt+1),
			ports.F("error", err.Error()),
		)
	}

	return fallback
}
