package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reddit-psych-pipeline/internal/model"
)

func initTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { CloseDB() })
}

func TestRunLifecycle(t *testing.T) {
	initTestDB(t)

	opts := model.CompileOptions{InputDir: "captures", OutputPath: "out.jsonl", MinBodyLength: 5, Dedup: true}
	require.NoError(t, SaveRun("run-1", opts))
	require.NoError(t, UpdateRunStatus("run-1", model.RunStatusRunning))

	summary := model.RunSummary{RecordsSeen: 10, Malformed: 1, Kept: 9, FilesRead: 2}
	require.NoError(t, SaveRunSummary("run-1", summary))
	require.NoError(t, UpdateRunStatus("run-1", model.RunStatusCompleted))

	run, err := GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, model.RunStatusCompleted, run.Status)
	assert.Equal(t, opts, run.Options)
	require.NotNil(t, run.Summary)
	assert.Equal(t, summary, *run.Summary)
}

func TestListRuns(t *testing.T) {
	initTestDB(t)

	require.NoError(t, SaveRun("run-a", model.CompileOptions{InputDir: "a"}))
	require.NoError(t, SaveRun("run-b", model.CompileOptions{InputDir: "b"}))

	runs, err := ListRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunErrors(t *testing.T) {
	initTestDB(t)

	require.NoError(t, SaveRun("run-1", model.CompileOptions{}))
	require.NoError(t, SaveRunError("run-1", errors.New("first failure")))
	require.NoError(t, SaveRunError("run-1", errors.New("second failure")))
	require.NoError(t, SaveRunError("run-1", nil))

	messages, err := GetRunErrors("run-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"first failure", "second failure"}, messages)
}

func TestGetRunMissing(t *testing.T) {
	initTestDB(t)

	_, err := GetRun("nope")
	assert.Error(t, err)
}
