package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devstrap/devstrap/internal/domain/platform"
	"github.com/devstrap/devstrap/internal/domain/setup"
)

func TestPrintSummary(t *testing.T) {
	sc := setup.NewContext(platform.OSDarwin)
	sc.Record(setup.TaskResult{Name: "detect-os", Status: setup.StatusSuccess, Message: "Detected macOS"})
	sc.Record(setup.TaskResult{Name: "tool:git", Status: setup.StatusSkipped, Message: "Already installed"})
	sc.Record(setup.TaskResult{Name: "tool:jq", Status: setup.StatusFailed, Message: "failed to install jq"})
	sc.AddTool("git")

	var buf bytes.Buffer
	printSummary(&buf, setup.Outcome{Status: setup.RunCompleted, Context: sc})

	out := buf.String()
	assert.Contains(t, out, "Setup completed on macOS")
	assert.Contains(t, out, sc.RunID)
	assert.Contains(t, out, "Already installed")
	assert.Contains(t, out, "Tools: git")
	assert.Contains(t, out, "Editors: none")
	assert.Contains(t, out, "1 task(s) failed")
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"version"})

	err := rootCmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "devstrap dev")
}
