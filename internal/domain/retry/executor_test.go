package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/devstrap/devstrap/internal/adapters/logging"
	"github.com/devstrap/devstrap/internal/testutil/mocks"
)

func newTestExecutor() (*Executor, *mocks.Clock) {
	clk := mocks.NewClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return NewExecutor(clk, logging.NewNopLogger()), clk
}

func TestExecute_DryRunNeverInvokesAction(t *testing.T) {
	t.Parallel()

	e, clk := newTestExecutor()
	calls := 0

	got := Execute(context.Background(), e, func(context.Context) (bool, error) {
		calls++
		return true, nil
	}, false, Options{Retries: 3, BackoffBase: time.Second, DryRun: true, Label: "install git"})

	assert.False(t, got)
	assert.Zero(t, calls)
	assert.Empty(t, clk.Sleeps())
}

func TestExecute_SuccessFirstAttempt(t *testing.T) {
	t.Parallel()

	e, clk := newTestExecutor()

	got := Execute(context.Background(), e, func(context.Context) (string, error) {
		return "ok", nil
	}, "fallback", Options{Retries: 2, BackoffBase: time.Second})

	assert.Equal(t, "ok", got)
	assert.Empty(t, clk.Sleeps())
}

func TestExecute_ExhaustsRetriesThenFallsBack(t *testing.T) {
	t.Parallel()

	e, clk := newTestExecutor()
	calls := 0

	got := Execute(context.Background(), e, func(context.Context) (bool, error) {
		calls++
		return false, errors.New("still broken")
	}, false, Options{Retries: 2, BackoffBase: 100 * time.Millisecond, Label: "install jq"})

	assert.False(t, got)
	assert.Equal(t, 3, calls, "1 initial attempt + 2 retries")
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, clk.Sleeps())
}

func TestExecute_RecoversOnSecondAttempt(t *testing.T) {
	t.Parallel()

	e, clk := newTestExecutor()
	calls := 0

	got := Execute(context.Background(), e, func(context.Context) (int, error) {
		calls++
		if calls < 2 {
			return 0, errors.New("transient")
		}
		return 42, nil
	}, -1, Options{Retries: 5, BackoffBase: 50 * time.Millisecond})

	assert.Equal(t, 42, got)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []time.Duration{50 * time.Millisecond}, clk.Sleeps())
}

func TestExecute_CanceledContextStopsRetrying(t *testing.T) {
	t.Parallel()

	e, _ := newTestExecutor()
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	got := Execute(ctx, e, func(context.Context) (bool, error) {
		calls++
		cancel()
		return false, errors.New("boom")
	}, false, Options{Retries: 10, BackoffBase: time.Second})

	assert.False(t, got)
	assert.Equal(t, 1, calls)
}

func TestExecute_ZeroRetriesMeansSingleAttempt(t *testing.T) {
	t.Parallel()

	e, clk := newTestExecutor()
	calls := 0

	Execute(context.Background(), e, func(context.Context) (bool, error) {
		calls++
		return false, errors.New("nope")
	}, false, Options{Retries: 0, BackoffBase: time.Second})

	assert.Equal(t, 1, calls)
	assert.Empty(t, clk.Sleeps())
}
