package mocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devstrap/devstrap/internal/ports"
)

func TestCommandRunner_ScriptedSequence(t *testing.T) {
	t.Parallel()

	r := NewCommandRunner()
	r.AddError("node", []string{"--version"}, errors.New("not found"))
	r.AddResult("node", []string{"--version"}, ports.CommandResult{Stdout: "v22.1.0"})

	_, err := r.Run(context.Background(), "node", "--version")
	require.Error(t, err)

	res, err := r.Run(context.Background(), "node", "--version")
	require.NoError(t, err)
	assert.Equal(t, "v22.1.0", res.Stdout)

	// last entry repeats
	res, err = r.Run(context.Background(), "node", "--version")
	require.NoError(t, err)
	assert.Equal(t, "v22.1.0", res.Stdout)
}

func TestCommandRunner_UnscriptedCommandFails(t *testing.T) {
	t.Parallel()

	r := NewCommandRunner()
	_, err := r.Run(context.Background(), "pacman", "-Syu")
	assert.ErrorContains(t, err, "no mock result")
}

func TestCommandRunner_RecordsCalls(t *testing.T) {
	t.Parallel()

	r := NewCommandRunner()
	r.AddResult("git", []string{"--version"}, ports.CommandResult{})

	_, _ = r.Run(context.Background(), "git", "--version")
	_, _ = r.Run(context.Background(), "git", "--version")

	assert.Equal(t, 2, r.CallCount("git", "--version"))
	assert.Len(t, r.Calls(), 2)
}

func TestClock_SleepAdvancesTime(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	c := NewClock(start)

	c.Sleep(5 * time.Second)
	c.Advance(time.Minute)

	assert.Equal(t, start.Add(5*time.Second+time.Minute), c.Now())
	assert.Equal(t, []time.Duration{5 * time.Second}, c.Sleeps())
}
