package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devstrap/devstrap/internal/ports"
	"github.com/devstrap/devstrap/internal/testutil/mocks"
)

func TestAvailable_ProbesOnlyPlatformManagers(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("brew", []string{"--version"}, ports.CommandResult{Stdout: "Homebrew 4.2.0"})
	runner.AddError("port", []string{"--version"}, errors.New("executable not found"))

	got := Available(context.Background(), OSDarwin, runner)

	assert.Equal(t, []PackageManager{ManagerBrew}, got)
	// winget must never be probed on darwin
	assert.Zero(t, runner.CallCount("winget", "--version"))
}

func TestAvailable_FailedProbeIsNotAvailable(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddError("apt-get", []string{"--version"}, errors.New("executable not found"))
	runner.AddResult("dnf", []string{"--version"}, ports.CommandResult{ExitCode: 1, Stderr: "broken"})
	runner.AddResult("pacman", []string{"--version"}, ports.CommandResult{Stdout: "Pacman v6.0.2"})

	got := Available(context.Background(), OSLinux, runner)

	assert.Equal(t, []PackageManager{ManagerPacman}, got)
}

func TestSelect_PriorityOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		os        OS
		available []PackageManager
		want      PackageManager
		wantOK    bool
	}{
		{
			name:      "chocolatey beats winget and scoop",
			os:        OSWindows,
			available: []PackageManager{ManagerScoop, ManagerWinget, ManagerChocolatey},
			want:      ManagerChocolatey,
			wantOK:    true,
		},
		{
			name:      "winget when chocolatey absent",
			os:        OSWindows,
			available: []PackageManager{ManagerScoop, ManagerWinget},
			want:      ManagerWinget,
			wantOK:    true,
		},
		{
			name:      "brew first on darwin",
			os:        OSDarwin,
			available: []PackageManager{ManagerMacPorts, ManagerBrew},
			want:      ManagerBrew,
			wantOK:    true,
		},
		{
			name:      "none available",
			os:        OSLinux,
			available: nil,
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Select(tt.os, tt.available)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
