// Package mocks provides test doubles for testing.
package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/devstrap/devstrap/internal/ports"
)

// CommandRunner is a thread-safe test double for ports.CommandRunner.
// Results are scripted per command line; unscripted commands fail with an
// error so tests notice unexpected invocations.
type CommandRunner struct {
	mu       sync.RWMutex
	results  map[string][]scripted
	consumed map[string]int
	calls    []ports.CommandCall
}

type scripted struct {
	result ports.CommandResult
	err    error
}

// NewCommandRunner creates a new CommandRunner mock.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{
		results:  make(map[string][]scripted),
		consumed: make(map[string]int),
	}
}

// AddResult registers an expected command and its result. Calling it again
// for the same command line appends to a sequence consumed call by call;
// the last entry repeats once the sequence is exhausted.
func (m *CommandRunner) AddResult(command string, args []string, result ports.CommandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := buildKey(command, args)
	m.results[key] = append(m.results[key], scripted{result: result})
}

// AddError registers an expected command that should return an error.
func (m *CommandRunner) AddError(command string, args []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := buildKey(command, args)
	m.results[key] = append(m.results[key], scripted{err: err})
}

// Run executes a mock command.
func (m *CommandRunner) Run(_ context.Context, command string, args ...string) (ports.CommandResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, ports.CommandCall{Command: command, Args: args})

	key := buildKey(command, args)
	seq, ok := m.results[key]
	if !ok {
		return ports.CommandResult{}, fmt.Errorf("no mock result for command: %s %v", command, args)
	}

	idx := m.consumed[key]
	if idx >= len(seq) {
		idx = len(seq) - 1
	} else {
		m.consumed[key]++
	}

	s := seq[idx]
	if s.err != nil {
		return ports.CommandResult{}, s.err
	}
	return s.result, nil
}

// Calls returns all recorded command invocations.
func (m *CommandRunner) Calls() []ports.CommandCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]ports.CommandCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns how many times the given command line was invoked.
func (m *CommandRunner) CallCount(command string, args ...string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := buildKey(command, args)
	n := 0
	for _, c := range m.calls {
		if buildKey(c.Command, c.Args) == key {
			n++
		}
	}
	return n
}

func buildKey(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}

var _ ports.CommandRunner = (*CommandRunner)(nil)
