package setup

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/devstrap/devstrap/internal/domain/platform"
	"github.com/devstrap/devstrap/internal/domain/policy"
	"github.com/devstrap/devstrap/internal/domain/retry"
	"github.com/devstrap/devstrap/internal/ports"
)

// minNodeVersion is the oldest Node.js the toolchain step accepts without
// complaint.
const minNodeVersion = "v18.0.0"

func (p *Pipeline) runPreflight(ctx context.Context, sc *Context) error {
	result := p.checker.Run(ctx)
	sc.Preflight = &result

	for _, w := range result.Warnings {
		p.logger.Warn(ctx, w, ports.F("step", "preflight"))
	}

	msg := "all checks passed"
	if n := len(result.Warnings); n > 0 {
		msg = fmt.Sprintf("%d warning(s)", n)
	}
	sc.Record(TaskResult{Name: "preflight", Status: StatusSuccess, Message: msg})
	return nil
}

func (p *Pipeline) detectOS(ctx context.Context, sc *Context) error {
	switch sc.Platform {
	case platform.OSDarwin, platform.OSLinux, platform.OSWindows:
	default:
		se := NewOSDetectionError(fmt.Sprintf("platform %q is outside the supported set", sc.Platform))
		sc.Record(TaskResult{Name: "detect-os", Status: StatusFailed, Message: se.Message, Err: se})
		return se
	}

	p.logger.Info(ctx, "detected platform", ports.F("os", sc.Platform.String()))
	sc.Record(TaskResult{
		Name:    "detect-os",
		Status:  StatusSuccess,
		Message: "Detected " + sc.Platform.DisplayName(),
	})
	return nil
}

func (p *Pipeline) verifyPackageManager(ctx context.Context, sc *Context) error {
	available := platform.Available(ctx, sc.Platform, p.runner)
	mgr, ok := platform.Select(sc.Platform, available)
	if !ok {
		probed := platform.Candidates(sc.Platform)
		names := make([]string, len(probed))
		for i, m := range probed {
			names[i] = m.String()
		}
		se := NewNoPackageManagerError(sc.Platform.DisplayName(), names)
		sc.Record(TaskResult{Name: "package-manager", Status: StatusFailed, Message: se.Message, Err: se})
		return se
	}

	sc.PackageManager = mgr
	p.logger.Info(ctx, "package manager selected", ports.F("manager", mgr.String()))
	sc.Record(TaskResult{
		Name:    "package-manager",
		Status:  StatusSuccess,
		Message: "Using " + mgr.String(),
	})
	return nil
}

func (p *Pipeline) installTools(ctx context.Context, sc *Context) error {
	p.installCandidates(ctx, sc, CoreTools(), p.cfg.SkipTools)
	return nil
}

// installEditors is the per-editor group. Children run sequentially in
// declaration order; an editor failure never aborts the run.
func (p *Pipeline) installEditors(ctx context.Context, sc *Context) error {
	p.installCandidates(ctx, sc, Editors(), p.cfg.SkipEditors)
	return nil
}

// installCandidates runs one install leaf per candidate: policy check,
// idempotency probe, then the install command through the retry executor.
// All failures here are warning severity, recorded per candidate.
func (p *Pipeline) installCandidates(ctx context.Context, sc *Context, candidates []Candidate, skip []string) {
	_, rejected := policy.Filter(candidates, p.cfg.Policy())
	verdicts := make(map[string]policy.Verdict, len(rejected))
	for _, r := range rejected {
		verdicts[r.ID] = r.Verdict
	}

	skipSet := make(map[string]bool, len(skip))
	for _, id := range skip {
		skipSet[id] = true
	}

	for _, c := range candidates {
		taskName := string(c.Kind) + ":" + c.ID

		if skipSet[c.ID] {
			sc.Record(TaskResult{Name: taskName, Status: StatusSkipped, Message: "Skipped by configuration"})
			continue
		}

		switch verdicts[c.ID] {
		case policy.VerdictBlocked:
			sc.Record(TaskResult{Name: taskName, Status: StatusSkipped, Message: "Blocked by policy"})
			continue
		case policy.VerdictNotAllowed:
			// Allow-list misses are dropped silently.
			continue
		}

		p.installLeaf(ctx, sc, c, taskName)
	}
}

func (p *Pipeline) installLeaf(ctx context.Context, sc *Context, c Candidate, taskName string) {
	start := p.clock.Now()
	attempts := 0
	defer func() {
		sc.RecordMetrics(taskName, TaskMetrics{
			Attempts: attempts,
			Duration: p.clock.Now().Sub(start),
		})
	}()

	// Idempotency probe: a candidate that already answers its detection
	// command is recorded as skipped without touching the executor.
	if res, err := p.runner.Run(ctx, c.Detect.Bin, c.Detect.Args...); err == nil && res.Success() {
		sc.Record(TaskResult{Name: taskName, Status: StatusSkipped, Message: "Already installed"})
		p.markInstalled(sc, c)
		return
	}

	if sc.PackageManager == "" {
		sc.Record(TaskResult{Name: taskName, Status: StatusSkipped, Message: "No package manager available"})
		return
	}

	cmd, ok := InstallCommand(sc.PackageManager, c)
	if !ok {
		// ValidateCatalog rules this out before the pipeline starts.
		se := NewConfigurationError(fmt.Sprintf("no install mapping for %s via %s", c.ID, sc.PackageManager))
		sc.Record(TaskResult{Name: taskName, Status: StatusFailed, Message: se.Message, Err: se})
		return
	}

	var lastErr error
	installed := retry.Execute(ctx, p.exec, func(runCtx context.Context) (bool, error) {
		attempts++
		res, err := p.runner.Run(runCtx, cmd.Bin, cmd.Args...)
		if err != nil {
			lastErr = err
			return false, err
		}
		if !res.Success() {
			lastErr = NewCommandError(cmd.String(), res.ExitCode, res.Stderr)
			return false, lastErr
		}
		return true, nil
	}, false, retry.Options{
		Retries:     p.cfg.MaxRetries,
		BackoffBase: p.backoffBase,
		DryRun:      p.cfg.DryRun,
		Label:       "install " + c.ID,
	})

	if p.cfg.DryRun {
		sc.Record(TaskResult{Name: taskName, Status: StatusSkipped, Message: "Dry run: would run " + cmd.String()})
		return
	}

	if !installed {
		se := p.installError(c, lastErr)
		sc.Record(TaskResult{Name: taskName, Status: StatusFailed, Message: se.Message, Err: se})
		return
	}

	sc.Record(TaskResult{Name: taskName, Status: StatusSuccess, Message: "Installed via " + sc.PackageManager.String()})
	p.markInstalled(sc, c)
}

func (p *Pipeline) markInstalled(sc *Context, c Candidate) {
	if c.Kind == KindEditor {
		sc.AddEditor(c.ID)
		return
	}
	sc.AddTool(c.ID)
}

func (p *Pipeline) installError(c Candidate, cause error) *SetupError {
	if c.Kind == KindEditor {
		return NewEditorInstallError(c.ID, cause)
	}
	return NewToolInstallError(c.ID, cause)
}

// configureToolchain is fail-fast: a broken Node toolchain invalidates the
// rest of the workstation, so error severity aborts the run.
func (p *Pipeline) configureToolchain(ctx context.Context, sc *Context) error {
	res, err := p.runner.Run(ctx, "node", "--version")
	if err != nil || !res.Success() {
		se := NewToolUnavailableError("node", "the corepack toolchain")
		sc.Record(TaskResult{Name: "toolchain", Status: StatusFailed, Message: se.Message, Err: se})
		return se
	}

	version := strings.TrimSpace(res.Stdout)
	if semver.IsValid(version) && semver.Compare(version, minNodeVersion) < 0 {
		p.logger.Warn(ctx, "node is older than the supported minimum",
			ports.F("found", version),
			ports.F("minimum", minNodeVersion),
		)
	}

	if p.cfg.DryRun {
		sc.Record(TaskResult{Name: "toolchain", Status: StatusSkipped, Message: "Dry run: would run corepack enable"})
		return nil
	}

	enabled := retry.Execute(ctx, p.exec, func(runCtx context.Context) (bool, error) {
		res, err := p.runner.Run(runCtx, "corepack", "enable")
		if err != nil {
			return false, err
		}
		if !res.Success() {
			return false, NewCommandError("corepack enable", res.ExitCode, res.Stderr)
		}
		return true, nil
	}, false, retry.Options{
		Retries:     p.cfg.MaxRetries,
		BackoffBase: p.backoffBase,
		Label:       "corepack enable",
	})

	if !enabled {
		se := NewError(KindToolUnavailable, "TOOLCHAIN_FAILED", "corepack enable failed").
			WithHelp("Run 'corepack enable' manually to inspect the failure.")
		sc.Record(TaskResult{Name: "toolchain", Status: StatusFailed, Message: se.Message, Err: se})
		return se
	}

	sc.Record(TaskResult{Name: "toolchain", Status: StatusSuccess, Message: "corepack enabled"})
	return nil
}
