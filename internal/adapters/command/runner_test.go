package command

import (
	"context"
	"testing"
)

func TestShellRunner_Run_Success(t *testing.T) {
	runner := NewShellRunner()

	result, err := runner.Run(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Success() {
		t.Error("Run() should succeed for 'echo hello'")
	}
	if result.Stdout != "hello\n" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "hello\n")
	}
}

func TestShellRunner_Run_NonzeroExitIsNotAnError(t *testing.T) {
	runner := NewShellRunner()

	result, err := runner.Run(context.Background(), "false")
	if err != nil {
		t.Fatalf("Run() error = %v (nonzero exit should come back in the result)", err)
	}
	if result.Success() {
		t.Error("Run() should report failure for 'false'")
	}
	if result.ExitCode == 0 {
		t.Error("ExitCode should be nonzero for 'false'")
	}
}

func TestShellRunner_Run_MissingBinary(t *testing.T) {
	runner := NewShellRunner()

	result, err := runner.Run(context.Background(), "devstrap-no-such-binary-12345")
	if err == nil {
		t.Error("Run() should return an error for a missing binary")
	}
	if result.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1 for a command that never started", result.ExitCode)
	}
}

func TestShellRunner_Run_CapturesStderr(t *testing.T) {
	runner := NewShellRunner()

	result, err := runner.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stderr != "oops\n" {
		t.Errorf("Stderr = %q, want %q", result.Stderr, "oops\n")
	}
	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
}
