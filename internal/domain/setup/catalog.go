package setup

import (
	"fmt"

	"github.com/devstrap/devstrap/internal/domain/platform"
)

// CandidateKind distinguishes core tools from editors.
type CandidateKind string

const (
	// KindTool is a core command-line tool.
	KindTool CandidateKind = "tool"
	// KindEditor is a code editor.
	KindEditor CandidateKind = "editor"
)

// CommandTemplate is a typed command line.
type CommandTemplate struct {
	Bin  string
	Args []string
}

// String renders the command line for messages.
func (t CommandTemplate) String() string {
	s := t.Bin
	for _, a := range t.Args {
		s += " " + a
	}
	return s
}

// Candidate describes one installable tool or editor: how to detect it and
// what each package manager calls it. Static per platform, never derived
// from the run context.
type Candidate struct {
	ID       string
	Kind     CandidateKind
	Detect   CommandTemplate
	Packages map[platform.PackageManager]string
}

// Identifier implements policy.Subject.
func (c Candidate) Identifier() string {
	return c.ID
}

// CoreTools returns the fixed set of core tool candidates.
func CoreTools() []Candidate {
	return []Candidate{
		{
			ID:     "git",
			Kind:   KindTool,
			Detect: CommandTemplate{Bin: "git", Args: []string{"--version"}},
			Packages: map[platform.PackageManager]string{
				platform.ManagerBrew:       "git",
				platform.ManagerMacPorts:   "git",
				platform.ManagerApt:        "git",
				platform.ManagerDnf:        "git",
				platform.ManagerPacman:     "git",
				platform.ManagerChocolatey: "git",
				platform.ManagerWinget:     "Git.Git",
				platform.ManagerScoop:      "git",
			},
		},
		{
			ID:     "node",
			Kind:   KindTool,
			Detect: CommandTemplate{Bin: "node", Args: []string{"--version"}},
			Packages: map[platform.PackageManager]string{
				platform.ManagerBrew:       "node",
				platform.ManagerMacPorts:   "nodejs22",
				platform.ManagerApt:        "nodejs",
				platform.ManagerDnf:        "nodejs",
				platform.ManagerPacman:     "nodejs",
				platform.ManagerChocolatey: "nodejs",
				platform.ManagerWinget:     "OpenJS.NodeJS",
				platform.ManagerScoop:      "nodejs",
			},
		},
		{
			ID:     "curl",
			Kind:   KindTool,
			Detect: CommandTemplate{Bin: "curl", Args: []string{"--version"}},
			Packages: map[platform.PackageManager]string{
				platform.ManagerBrew:       "curl",
				platform.ManagerMacPorts:   "curl",
				platform.ManagerApt:        "curl",
				platform.ManagerDnf:        "curl",
				platform.ManagerPacman:     "curl",
				platform.ManagerChocolatey: "curl",
				platform.ManagerWinget:     "cURL.cURL",
				platform.ManagerScoop:      "curl",
			},
		},
		{
			ID:     "jq",
			Kind:   KindTool,
			Detect: CommandTemplate{Bin: "jq", Args: []string{"--version"}},
			Packages: map[platform.PackageManager]string{
				platform.ManagerBrew:       "jq",
				platform.ManagerMacPorts:   "jq",
				platform.ManagerApt:        "jq",
				platform.ManagerDnf:        "jq",
				platform.ManagerPacman:     "jq",
				platform.ManagerChocolatey: "jq",
				platform.ManagerWinget:     "jqlang.jq",
				platform.ManagerScoop:      "jq",
			},
		},
	}
}

// Editors returns the fixed set of editor candidates.
func Editors() []Candidate {
	return []Candidate{
		{
			ID:     "vscode",
			Kind:   KindEditor,
			Detect: CommandTemplate{Bin: "code", Args: []string{"--version"}},
			Packages: map[platform.PackageManager]string{
				platform.ManagerBrew:       "visual-studio-code",
				platform.ManagerMacPorts:   "visual-studio-code",
				platform.ManagerApt:        "code",
				platform.ManagerDnf:        "code",
				platform.ManagerPacman:     "code",
				platform.ManagerChocolatey: "vscode",
				platform.ManagerWinget:     "Microsoft.VisualStudioCode",
				platform.ManagerScoop:      "vscode",
			},
		},
		{
			ID:     "cursor",
			Kind:   KindEditor,
			Detect: CommandTemplate{Bin: "cursor", Args: []string{"--version"}},
			Packages: map[platform.PackageManager]string{
				platform.ManagerBrew:       "cursor",
				platform.ManagerMacPorts:   "cursor",
				platform.ManagerApt:        "cursor",
				platform.ManagerDnf:        "cursor",
				platform.ManagerPacman:     "cursor",
				platform.ManagerChocolatey: "cursor",
				platform.ManagerWinget:     "Anysphere.Cursor",
				platform.ManagerScoop:      "cursor",
			},
		},
		{
			ID:     "zed",
			Kind:   KindEditor,
			Detect: CommandTemplate{Bin: "zed", Args: []string{"--version"}},
			Packages: map[platform.PackageManager]string{
				platform.ManagerBrew:       "zed",
				platform.ManagerMacPorts:   "zed",
				platform.ManagerApt:        "zed",
				platform.ManagerDnf:        "zed",
				platform.ManagerPacman:     "zed",
				platform.ManagerChocolatey: "zed",
				platform.ManagerWinget:     "ZedIndustries.Zed",
				platform.ManagerScoop:      "zed",
			},
		},
	}
}

// AllIdentifiers returns the identifiers of every catalog candidate.
func AllIdentifiers() []string {
	var ids []string
	for _, c := range CoreTools() {
		ids = append(ids, c.ID)
	}
	for _, c := range Editors() {
		ids = append(ids, c.ID)
	}
	return ids
}

// installArgs maps a manager and candidate kind to install arguments.
// Editors through Homebrew are casks.
func installArgs(mgr platform.PackageManager, kind CandidateKind, pkg string) []string {
	switch mgr {
	case platform.ManagerBrew:
		if kind == KindEditor {
			return []string{"install", "--cask", pkg}
		}
		return []string{"install", pkg}
	case platform.ManagerMacPorts:
		return []string{"install", pkg}
	case platform.ManagerApt:
		return []string{"install", "-y", pkg}
	case platform.ManagerDnf:
		return []string{"install", "-y", pkg}
	case platform.ManagerPacman:
		return []string{"-S", "--noconfirm", pkg}
	case platform.ManagerChocolatey:
		return []string{"install", "-y", pkg}
	case platform.ManagerWinget:
		return []string{"install", "-e", "--id", pkg}
	case platform.ManagerScoop:
		return []string{"install", pkg}
	default:
		return nil
	}
}

// InstallCommand resolves the typed install command for a candidate under
// the given manager.
func InstallCommand(mgr platform.PackageManager, c Candidate) (CommandTemplate, bool) {
	pkg, ok := c.Packages[mgr]
	if !ok {
		return CommandTemplate{}, false
	}
	args := installArgs(mgr, c.Kind, pkg)
	if args == nil {
		return CommandTemplate{}, false
	}
	return CommandTemplate{Bin: mgr.String(), Args: args}, true
}

// ValidateCatalog checks the static lookup table at startup: every
// candidate must carry a detection command and a package name for every
// manager of every supported platform.
func ValidateCatalog() error {
	all := append(CoreTools(), Editors()...)
	for _, c := range all {
		if c.Detect.Bin == "" {
			return NewConfigurationError(fmt.Sprintf("candidate %s has no detection command", c.ID))
		}
		for _, os := range []platform.OS{platform.OSDarwin, platform.OSLinux, platform.OSWindows} {
			for _, mgr := range platform.Candidates(os) {
				if _, ok := InstallCommand(mgr, c); !ok {
					return NewConfigurationError(
						fmt.Sprintf("candidate %s has no install mapping for %s on %s", c.ID, mgr, os))
				}
			}
		}
	}
	return nil
}
