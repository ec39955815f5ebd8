package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRegistry(t *testing.T) {
	path := writeRegistry(t, `{
		"version": "1.0.0",
		"lastUpdated": "2026-03-01",
		"activities": [
			{"id": "validate-lead-data", "taskType": "validate-lead-data", "category": "assessment", "retries": 3},
			{"id": "calculate-readiness", "taskType": "calculate-readiness", "category": "assessment", "retries": 3}
		]
	}`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", reg.Version)
	assert.Len(t, reg.Activities, 2)
	assert.Equal(t, []string{"validate-lead-data", "calculate-readiness"}, reg.TaskTypes())

	act, ok := reg.FindByTaskType("calculate-readiness")
	require.True(t, ok)
	assert.Equal(t, "assessment", act.Category)
	assert.Equal(t, 3, act.Retries)

	_, ok = reg.FindByTaskType("no-such-task")
	assert.False(t, ok)
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadRegistry_InvalidJSON(t *testing.T) {
	path := writeRegistry(t, `{"activities": [`)
	_, err := LoadRegistry(path)
	assert.ErrorContains(t, err, "failed to parse registry")
}

func TestValidate(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{
		{ID: "a", TaskType: "validate-lead-data"},
		{ID: "b", TaskType: "calculate-readiness"},
	}}
	assert.NoError(t, reg.Validate())

	reg.Activities = append(reg.Activities, Activity{ID: "c", TaskType: "validate-lead-data"})
	assert.ErrorContains(t, reg.Validate(), "registered by both")

	reg = &ActivityRegistry{Activities: []Activity{{ID: "d"}}}
	assert.ErrorContains(t, reg.Validate(), "no task type")
}
