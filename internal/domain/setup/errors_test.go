package setup

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind      Kind
		severity  Severity
		retryable bool
	}{
		{KindContext, SeverityError, false},
		{KindOSDetection, SeverityError, true},
		{KindPackageManager, SeverityWarning, true},
		{KindToolInstall, SeverityWarning, true},
		{KindEditorInstall, SeverityWarning, true},
		{KindCommandExecution, SeverityWarning, true},
		{KindToolUnavailable, SeverityError, true},
		{KindConfiguration, SeverityError, false},
		{KindUnknown, SeverityError, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.severity, tt.kind.DefaultSeverity())
			assert.Equal(t, tt.retryable, tt.kind.DefaultRetryable())
		})
	}
}

func TestClassify_PassesThroughSetupError(t *testing.T) {
	t.Parallel()

	se := NewToolInstallError("git", errors.New("network down"))
	got := Classify(se)

	assert.Same(t, se, got)
	assert.Equal(t, KindToolInstall, got.Kind)
	assert.Equal(t, SeverityWarning, got.Severity)
}

func TestClassify_UnwrapsNestedSetupError(t *testing.T) {
	t.Parallel()

	se := NewConfigurationError("bad policy")
	wrapped := fmt.Errorf("loading config: %w", se)

	got := Classify(wrapped)
	assert.Equal(t, KindConfiguration, got.Kind)
	assert.False(t, got.Retryable)
}

func TestClassify_UnrecognizedFallsBackToUnknown(t *testing.T) {
	t.Parallel()

	got := Classify(errors.New("something odd"))

	require.NotNil(t, got)
	assert.Equal(t, KindUnknown, got.Kind)
	assert.Equal(t, SeverityError, got.Severity)
	assert.False(t, got.Retryable)
	assert.ErrorContains(t, got, "something odd")
}

func TestClassify_NilIsNil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Classify(nil))
}

func TestSetupError_RetryableOverride(t *testing.T) {
	t.Parallel()

	se := NewToolInstallError("jq", nil).WithRetryable(false)
	assert.False(t, se.Retryable)
	assert.Equal(t, SeverityWarning, se.Severity, "severity is fixed by kind")
}

func TestSetupError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("exit status 1")
	se := NewEditorInstallError("cursor", cause)

	assert.ErrorIs(t, se, cause)
}

func TestSetupError_Format(t *testing.T) {
	t.Parallel()

	se := NewToolUnavailableError("node", "the corepack toolchain")
	out := se.Format()

	assert.Contains(t, out, "TOOL_UNAVAILABLE")
	assert.Contains(t, out, "Help:")
}

func TestNewCommandError_CarriesStderr(t *testing.T) {
	t.Parallel()

	se := NewCommandError("brew install git", 1, "Error: no bottle\n")
	assert.Equal(t, "Error: no bottle", se.Context["stderr"])
	assert.Equal(t, KindCommandExecution, se.Kind)
}
