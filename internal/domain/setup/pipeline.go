package setup

import (
	"context"
	"time"

	"github.com/devstrap/devstrap/internal/domain/preflight"
	"github.com/devstrap/devstrap/internal/domain/retry"
	"github.com/devstrap/devstrap/internal/ports"
)

// RunStatus is the terminal state of a pipeline run.
type RunStatus string

const (
	// RunCompleted means all steps ran and the task results are final.
	RunCompleted RunStatus = "completed"
	// RunAborted means a fail-fast step raised. The task results still
	// include everything accumulated before the abort.
	RunAborted RunStatus = "aborted"
)

// Outcome is what a pipeline run hands back to the caller.
type Outcome struct {
	Status  RunStatus
	Context *Context
}

// Pipeline sequences the provisioning steps over a shared Context: preflight,
// OS detection, package manager verification, tool and editor installs, and
// Node toolchain configuration. One run is strictly sequential; only the
// currently executing step mutates the Context.
type Pipeline struct {
	cfg     Config
	runner  ports.CommandRunner
	logger  ports.Logger
	clock   ports.Clock
	exec    *retry.Executor
	checker *preflight.Checker

	backoffBase time.Duration
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithChecker overrides the preflight checker (used in tests).
func WithChecker(c *preflight.Checker) PipelineOption {
	return func(p *Pipeline) {
		p.checker = c
	}
}

// WithBackoffBase overrides the base delay between install retries.
func WithBackoffBase(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		p.backoffBase = d
	}
}

// NewPipeline creates a Pipeline.
func NewPipeline(cfg Config, runner ports.CommandRunner, logger ports.Logger, clock ports.Clock, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		cfg:         cfg,
		runner:      runner,
		logger:      logger,
		clock:       clock,
		exec:        retry.NewExecutor(clock, logger),
		backoffBase: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.checker == nil {
		p.checker = preflight.NewChecker(logger)
	}
	return p
}

type step struct {
	name string
	run  func(ctx context.Context, sc *Context) error
}

// Run executes the standard step sequence. Steps whose classified failure
// carries warning severity are recorded and skipped over; error severity
// aborts the run. The partial task result history survives an abort.
func (p *Pipeline) Run(ctx context.Context, sc *Context) (Outcome, error) {
	logger := p.logger.With(ports.F("run_id", sc.RunID))

	if err := ValidateCatalog(); err != nil {
		se := Classify(err)
		sc.Record(TaskResult{Name: "validate", Status: StatusFailed, Message: se.Message, Err: se})
		return Outcome{Status: RunAborted, Context: sc}, se
	}
	if err := sc.Validate(); err != nil {
		se := Classify(err)
		sc.Record(TaskResult{Name: "validate", Status: StatusFailed, Message: se.Message, Err: se})
		return Outcome{Status: RunAborted, Context: sc}, se
	}

	steps := []step{
		{name: "preflight", run: p.runPreflight},
		{name: "detect-os", run: p.detectOS},
		{name: "package-manager", run: p.verifyPackageManager},
		{name: "install-tools", run: p.installTools},
		{name: "install-editors", run: p.installEditors},
		{name: "toolchain", run: p.configureToolchain},
	}

	for _, st := range steps {
		start := p.clock.Now()
		err := st.run(ctx, sc)
		sc.RecordMetrics(st.name, TaskMetrics{Attempts: 1, Duration: p.clock.Now().Sub(start)})

		if err == nil {
			continue
		}

		se := Classify(err)
		if se.Severity == SeverityError {
			logger.Error(ctx, "step failed, aborting run",
				ports.F("step", st.name),
				ports.F("code", se.Code),
				ports.F("error", se.Error()),
			)
			return Outcome{Status: RunAborted, Context: sc}, se
		}

		logger.Warn(ctx, "step failed, continuing",
			ports.F("step", st.name),
			ports.F("code", se.Code),
			ports.F("error", se.Error()),
		)
	}

	return Outcome{Status: RunCompleted, Context: sc}, nil
}
