package platform

import (
	"context"

	"github.com/devstrap/devstrap/internal/ports"
)

// PackageManager identifies a system package manager.
type PackageManager string

const (
	// ManagerBrew is Homebrew.
	ManagerBrew PackageManager = "brew"
	// ManagerMacPorts is MacPorts.
	ManagerMacPorts PackageManager = "port"
	// ManagerApt is apt-get (Debian/Ubuntu).
	ManagerApt PackageManager = "apt-get"
	// ManagerDnf is dnf (Fedora/RHEL).
	ManagerDnf PackageManager = "dnf"
	// ManagerPacman is pacman (Arch).
	ManagerPacman PackageManager = "pacman"
	// ManagerChocolatey is Chocolatey.
	ManagerChocolatey PackageManager = "choco"
	// ManagerWinget is the Windows Package Manager.
	ManagerWinget PackageManager = "winget"
	// ManagerScoop is Scoop.
	ManagerScoop PackageManager = "scoop"
)

// String returns the manager's binary name.
func (m PackageManager) String() string {
	return string(m)
}

// candidates lists the managers worth probing per OS family, in selection
// priority order. Probing a manager that cannot exist on the platform
// (winget on linux) is never attempted.
var candidates = map[OS][]PackageManager{
	OSDarwin:  {ManagerBrew, ManagerMacPorts},
	OSLinux:   {ManagerApt, ManagerDnf, ManagerPacman},
	OSWindows: {ManagerChocolatey, ManagerWinget, ManagerScoop},
}

// Candidates returns the platform-appropriate managers in priority order.
func Candidates(os OS) []PackageManager {
	out := make([]PackageManager, len(candidates[os]))
	copy(out, candidates[os])
	return out
}

// Available probes each platform-appropriate manager binary and returns
// those that respond. A failed probe means "not available"; it never
// surfaces as an error.
func Available(ctx context.Context, os OS, runner ports.CommandRunner) []PackageManager {
	var available []PackageManager
	for _, m := range candidates[os] {
		result, err := runner.Run(ctx, m.String(), "--version")
		if err != nil || !result.Success() {
			continue
		}
		available = append(available, m)
	}
	return available
}

// Select picks the highest-priority manager for the platform that is
// present in available. ok is false when none qualifies.
func Select(os OS, available []PackageManager) (PackageManager, bool) {
	present := make(map[PackageManager]bool, len(available))
	for _, m := range available {
		present[m] = true
	}
	for _, m := range candidates[os] {
		if present[m] {
			return m, true
		}
	}
	return "", false
}
