package setup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devstrap/devstrap/internal/domain/platform"
)

func TestNewContext(t *testing.T) {
	t.Parallel()

	sc := NewContext(platform.OSDarwin)

	assert.NotEmpty(t, sc.RunID)
	assert.Equal(t, platform.OSDarwin, sc.Platform)
	assert.Empty(t, sc.PackageManager)
	assert.Empty(t, sc.InstalledTools())
	assert.Empty(t, sc.InstalledEditors())
	require.NoError(t, sc.Validate())
}

func TestContext_Validate_RejectsUnknownPlatform(t *testing.T) {
	t.Parallel()

	sc := NewContext(platform.OS("beos"))
	err := sc.Validate()

	require.Error(t, err)
	se := Classify(err)
	assert.Equal(t, KindContext, se.Kind)
}

func TestContext_ResultsPreserveInsertionOrder(t *testing.T) {
	t.Parallel()

	sc := NewContext(platform.OSLinux)
	sc.Record(TaskResult{Name: "a", Status: StatusSuccess})
	sc.Record(TaskResult{Name: "b", Status: StatusSkipped})
	sc.Record(TaskResult{Name: "c", Status: StatusFailed})

	results := sc.Results()
	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Name)
	assert.Equal(t, "b", results[1].Name)
	assert.Equal(t, "c", results[2].Name)
	assert.Equal(t, 1, sc.FailedCount())
}

func TestContext_ResultsReturnsCopy(t *testing.T) {
	t.Parallel()

	sc := NewContext(platform.OSLinux)
	sc.Record(TaskResult{Name: "a", Status: StatusSuccess})

	results := sc.Results()
	results[0].Name = "mutated"

	assert.Equal(t, "a", sc.Results()[0].Name)
}

func TestContext_InstalledSets(t *testing.T) {
	t.Parallel()

	sc := NewContext(platform.OSDarwin)
	sc.AddTool("git")
	sc.AddEditor("vscode")

	assert.True(t, sc.HasTool("git"))
	assert.False(t, sc.HasTool("jq"))
	assert.True(t, sc.HasEditor("vscode"))
	assert.ElementsMatch(t, []string{"git"}, sc.InstalledTools())
	assert.ElementsMatch(t, []string{"vscode"}, sc.InstalledEditors())
}

func TestContext_Metrics(t *testing.T) {
	t.Parallel()

	sc := NewContext(platform.OSDarwin)
	sc.RecordMetrics("tool:git", TaskMetrics{Attempts: 3, Duration: 2 * time.Second})

	m := sc.Metrics()
	require.Contains(t, m, "tool:git")
	assert.Equal(t, 3, m["tool:git"].Attempts)
	assert.Equal(t, 2*time.Second, m["tool:git"].Duration)
}
