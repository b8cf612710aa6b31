package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRecorder_RecordAndQuery(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer r.Close()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		evt := &RunEvent{
			Agent:      "analytics",
			Status:     "idle",
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			DurationMs: int64(10 * i),
			Summary:    "revenue updated",
		}
		require.NoError(t, r.RecordRun(evt))
		assert.NotEmpty(t, evt.ID, "ID should be assigned")
	}
	require.NoError(t, r.RecordRun(&RunEvent{
		Agent: "content", Status: "error", StartedAt: base, Error: "claude: status 529",
	}))

	runs, err := r.RecentRuns("analytics", 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.True(t, runs[0].StartedAt.Equal(base.Add(4*time.Minute)), "newest first")
	assert.Equal(t, int64(40), runs[0].DurationMs)
	assert.Equal(t, "revenue updated", runs[0].Summary)

	runs, err = r.RecentRuns("content", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "error", runs[0].Status)
	assert.Equal(t, "claude: status 529", runs[0].Error)

	runs, err = r.RecentRuns("marketing", 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestSQLiteRecorder_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "runs.db")

	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, r.RecordRun(&RunEvent{Agent: "customer", Status: "idle", StartedAt: time.Now()}))
	require.NoError(t, r.Close())

	r, err = NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer r.Close()

	runs, err := r.RecentRuns("customer", 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestNoopRecorder(t *testing.T) {
	r := NewNoopRecorder()
	assert.NoError(t, r.RecordRun(&RunEvent{Agent: "content"}))
	runs, err := r.RecentRuns("content", 5)
	assert.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, r.Close())
}
