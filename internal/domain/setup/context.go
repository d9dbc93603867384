// Package setup contains the provisioning core: the mutable run context,
// the task result log, the failure taxonomy, and the pipeline that
// sequences detection, verification, and installation steps.
package setup

import (
	"time"

	"github.com/google/uuid"

	"github.com/devstrap/devstrap/internal/domain/platform"
	"github.com/devstrap/devstrap/internal/domain/preflight"
)

// Status is the outcome of a single task.
type Status string

const (
	// StatusSuccess means the task ran and succeeded.
	StatusSuccess Status = "success"
	// StatusSkipped means the task was deliberately not run.
	StatusSkipped Status = "skipped"
	// StatusFailed means the task ran and failed.
	StatusFailed Status = "failed"
)

// TaskResult records the outcome of one task. Immutable once appended.
type TaskResult struct {
	Name    string
	Status  Status
	Message string
	Err     *SetupError
}

// TaskMetrics holds timing and attempt counters for one task.
type TaskMetrics struct {
	Attempts int
	Duration time.Duration
}

// Context is the shared mutable state of one provisioning run. It is
// created at run start, mutated only by the step currently executing, and
// discarded after the summary is emitted. It is never persisted.
type Context struct {
	RunID          string
	Platform       platform.OS
	PackageManager platform.PackageManager // empty until selected; may stay empty
	Preflight      *preflight.Result

	installedTools   map[string]bool
	installedEditors map[string]bool
	results          []TaskResult
	metrics          map[string]TaskMetrics
}

// NewContext creates a run context for the given platform with a fresh
// run ID.
func NewContext(os platform.OS) *Context {
	return &Context{
		RunID:            uuid.NewString(),
		Platform:         os,
		installedTools:   make(map[string]bool),
		installedEditors: make(map[string]bool),
		metrics:          make(map[string]TaskMetrics),
	}
}

// CreateContext probes the host and creates a context for it.
func CreateContext() *Context {
	return NewContext(platform.Detect())
}

// Validate checks the context before the pipeline starts.
func (c *Context) Validate() error {
	switch c.Platform {
	case platform.OSDarwin, platform.OSLinux, platform.OSWindows:
	default:
		return NewContextError("platform " + string(c.Platform) + " is not a supported OS family")
	}
	if c.installedTools == nil || c.installedEditors == nil || c.metrics == nil {
		return NewContextError("context was not created through NewContext")
	}
	return nil
}

// Record appends a task result. Insertion order is execution order.
func (c *Context) Record(r TaskResult) {
	c.results = append(c.results, r)
}

// Results returns a copy of the task result log.
func (c *Context) Results() []TaskResult {
	out := make([]TaskResult, len(c.results))
	copy(out, c.results)
	return out
}

// FailedCount returns the number of failed task results.
func (c *Context) FailedCount() int {
	n := 0
	for _, r := range c.results {
		if r.Status == StatusFailed {
			n++
		}
	}
	return n
}

// AddTool marks a tool as confirmed present or newly installed.
func (c *Context) AddTool(id string) {
	c.installedTools[id] = true
}

// HasTool reports whether a tool is in the installed set.
func (c *Context) HasTool(id string) bool {
	return c.installedTools[id]
}

// InstalledTools returns the installed tool identifiers.
func (c *Context) InstalledTools() []string {
	return keys(c.installedTools)
}

// AddEditor marks an editor as confirmed present or newly installed.
func (c *Context) AddEditor(id string) {
	c.installedEditors[id] = true
}

// HasEditor reports whether an editor is in the installed set.
func (c *Context) HasEditor(id string) bool {
	return c.installedEditors[id]
}

// InstalledEditors returns the installed editor identifiers.
func (c *Context) InstalledEditors() []string {
	return keys(c.installedEditors)
}

// RecordMetrics stores timing and attempt counters for a task. Only the
// step that owns the task name writes to it.
func (c *Context) RecordMetrics(task string, m TaskMetrics) {
	c.metrics[task] = m
}

// Metrics returns a copy of the per-task metrics.
func (c *Context) Metrics() map[string]TaskMetrics {
	out := make(map[string]TaskMetrics, len(c.metrics))
	for k, v := range c.metrics {
		out[k] = v
	}
	return out
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
