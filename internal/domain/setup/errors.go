package setup

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes a setup failure by the pipeline stage it arose at.
type Kind string

const (
	// KindContext is a context validation failure before the pipeline starts.
	KindContext Kind = "context_error"
	// KindOSDetection is a platform probe inconsistency.
	KindOSDetection Kind = "os_detection_error"
	// KindPackageManager is an absent manager or failed version probe.
	KindPackageManager Kind = "package_manager_error"
	// KindToolInstall is an installer failure for a required tool.
	KindToolInstall Kind = "tool_installation_error"
	// KindEditorInstall is an installer failure for an editor.
	KindEditorInstall Kind = "editor_installation_error"
	// KindCommandExecution is a wrapped external command returning nonzero.
	KindCommandExecution Kind = "command_execution_error"
	// KindToolUnavailable is a dependent tool missing post-install.
	KindToolUnavailable Kind = "tool_unavailable_error"
	// KindConfiguration is an invalid policy/config combination.
	KindConfiguration Kind = "configuration_error"
	// KindUnknown is the closed-world fallback for unrecognized failures.
	KindUnknown Kind = "unknown"
)

// Severity decides whether a failure aborts the run or merely continues.
type Severity string

const (
	// SeverityError aborts the pipeline.
	SeverityError Severity = "error"
	// SeverityWarning records the failure and continues.
	SeverityWarning Severity = "warning"
)

// DefaultSeverity returns the fixed severity for the kind.
func (k Kind) DefaultSeverity() Severity {
	switch k {
	case KindPackageManager, KindToolInstall, KindEditorInstall, KindCommandExecution:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// DefaultRetryable reports whether failures of this kind may be handed to
// the retry executor. Non-retryable kinds must never be wrapped in a retry
// loop.
func (k Kind) DefaultRetryable() bool {
	switch k {
	case KindContext, KindConfiguration, KindUnknown:
		return false
	default:
		return true
	}
}

// SetupError is a classified failure with enough metadata for a caller to
// decide whether to retry, abort the run, or log and continue.
type SetupError struct {
	Code      string
	Kind      Kind
	Severity  Severity
	Retryable bool
	Message   string
	Help      string
	Docs      string
	Context   map[string]string
	Underlying error
}

// Error returns the formatted error message.
func (e *SetupError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Underlying != nil {
		fmt.Fprintf(&b, ": %v", e.Underlying)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain support.
func (e *SetupError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is comparison by code.
func (e *SetupError) Is(target error) bool {
	if t, ok := target.(*SetupError); ok {
		return e.Code == t.Code
	}
	return false
}

// Format returns a fully formatted message with help and docs.
func (e *SetupError) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	for k, v := range e.Context {
		fmt.Fprintf(&b, "\n  %s: %s", k, v)
	}
	if e.Help != "" {
		fmt.Fprintf(&b, "\n  Help: %s", e.Help)
	}
	if e.Docs != "" {
		fmt.Fprintf(&b, "\n  Docs: %s", e.Docs)
	}
	return b.String()
}

// WithHelp returns a copy with an actionable suggestion attached.
func (e *SetupError) WithHelp(help string) *SetupError {
	c := *e
	c.Help = help
	return &c
}

// WithDocs returns a copy with a documentation link attached.
func (e *SetupError) WithDocs(docs string) *SetupError {
	c := *e
	c.Docs = docs
	return &c
}

// WithRetryable returns a copy with retryability overridden. Severity is a
// property of the kind and cannot be overridden.
func (e *SetupError) WithRetryable(retryable bool) *SetupError {
	c := *e
	c.Retryable = retryable
	return &c
}

// WithContextValue returns a copy with a context entry added.
func (e *SetupError) WithContextValue(key, value string) *SetupError {
	c := *e
	c.Context = make(map[string]string, len(e.Context)+1)
	for k, v := range e.Context {
		c.Context[k] = v
	}
	c.Context[key] = value
	return &c
}

// WithUnderlying returns a copy wrapping another error.
func (e *SetupError) WithUnderlying(err error) *SetupError {
	c := *e
	c.Underlying = err
	return &c
}

// NewError creates a SetupError of the given kind with the kind's default
// severity and retryability.
func NewError(kind Kind, code, message string) *SetupError {
	return &SetupError{
		Code:      code,
		Kind:      kind,
		Severity:  kind.DefaultSeverity(),
		Retryable: kind.DefaultRetryable(),
		Message:   message,
	}
}

// Classify maps any failure into a SetupError. It is total: an already
// classified error passes through unchanged, everything else becomes the
// unknown kind (severity error, not retryable).
func Classify(err error) *SetupError {
	if err == nil {
		return nil
	}
	var se *SetupError
	if errors.As(err, &se) {
		return se
	}
	return NewError(KindUnknown, "UNKNOWN", "unexpected failure").WithUnderlying(err)
}

// Constructors for the common pipeline failures.

// NewContextError reports a setup context that failed validation.
func NewContextError(detail string) *SetupError {
	return NewError(KindContext, "CONTEXT_INVALID",
		fmt.Sprintf("setup context is invalid: %s", detail)).
		WithHelp("This is a bug in the caller; the context must be created through NewContext.")
}

// NewOSDetectionError reports an inconsistent platform probe.
func NewOSDetectionError(detail string) *SetupError {
	return NewError(KindOSDetection, "OS_DETECTION_FAILED",
		fmt.Sprintf("could not establish host platform: %s", detail))
}

// NewNoPackageManagerError reports that no supported manager responded.
func NewNoPackageManagerError(osName string, probed []string) *SetupError {
	return NewError(KindPackageManager, "NO_PACKAGE_MANAGER",
		fmt.Sprintf("no supported package manager found on %s", osName)).
		WithContextValue("probed", strings.Join(probed, ", ")).
		WithHelp("Install one of the supported package managers and re-run.")
}

// NewToolInstallError reports a failed tool installation.
func NewToolInstallError(tool string, err error) *SetupError {
	return NewError(KindToolInstall, "TOOL_INSTALL_FAILED",
		fmt.Sprintf("failed to install %s", tool)).
		WithContextValue("tool", tool).
		WithUnderlying(err)
}

// NewEditorInstallError reports a failed editor installation.
func NewEditorInstallError(editor string, err error) *SetupError {
	return NewError(KindEditorInstall, "EDITOR_INSTALL_FAILED",
		fmt.Sprintf("failed to install %s", editor)).
		WithContextValue("editor", editor).
		WithUnderlying(err)
}

// NewCommandError reports a wrapped external command exiting nonzero.
func NewCommandError(command string, exitCode int, stderr string) *SetupError {
	return NewError(KindCommandExecution, "COMMAND_FAILED",
		fmt.Sprintf("%s exited with code %d", command, exitCode)).
		WithContextValue("stderr", strings.TrimSpace(stderr))
}

// NewToolUnavailableError reports a dependent tool missing after install.
func NewToolUnavailableError(tool, neededFor string) *SetupError {
	return NewError(KindToolUnavailable, "TOOL_UNAVAILABLE",
		fmt.Sprintf("%s is not available but %s depends on it", tool, neededFor)).
		WithHelp(fmt.Sprintf("Install %s manually and re-run.", tool))
}

// NewConfigurationError reports an invalid configuration combination.
func NewConfigurationError(detail string) *SetupError {
	return NewError(KindConfiguration, "CONFIG_INVALID",
		fmt.Sprintf("invalid configuration: %s", detail))
}
