// Package command provides command execution adapters.
package command

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/devstrap/devstrap/internal/ports"
)

// ShellRunner executes actual shell commands on the host.
type ShellRunner struct{}

// NewShellRunner creates a new ShellRunner.
func NewShellRunner() *ShellRunner {
	return &ShellRunner{}
}

// Run executes a command and returns the result. A nonzero exit is reported
// through the result, not as an error; an error means the command could not
// be started at all (binary missing, context canceled).
func (r *ShellRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := ports.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		result.ExitCode = -1
		return result, err
	}

	return result, nil
}

var _ ports.CommandRunner = (*ShellRunner)(nil)
