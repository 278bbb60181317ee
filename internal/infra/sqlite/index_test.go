package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	index, err := Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	return index
}

func TestRecordRunAssignsID(t *testing.T) {
	index := openTestIndex(t)
	ctx := context.Background()

	err := index.RecordRun(ctx, Run{
		Operation:  "backup",
		BackupFile: "full_20260901_120000.json",
		Products:   3,
		Success:    3,
	})
	require.NoError(t, err)

	runs, err := index.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.NotEmpty(t, runs[0].ID)
	assert.Equal(t, "backup", runs[0].Operation)
	assert.Equal(t, 3, runs[0].Products)
}

func TestRecentRunsNewestFirst(t *testing.T) {
	index := openTestIndex(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i, op := range []string{"backup", "discount", "restore"} {
		err := index.RecordRun(ctx, Run{
			Operation: op,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	runs, err := index.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "restore", runs[0].Operation)
	assert.Equal(t, "discount", runs[1].Operation)
}

func TestDuplicateRunIDRejected(t *testing.T) {
	index := openTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.RecordRun(ctx, Run{ID: "run-1", Operation: "backup"}))
	assert.Error(t, index.RecordRun(ctx, Run{ID: "run-1", Operation: "backup"}))
}

func TestNilIndexIsSafe(t *testing.T) {
	var index *Index

	assert.NoError(t, index.RecordRun(context.Background(), Run{Operation: "backup"}))

	runs, err := index.RecentRuns(context.Background(), 5)
	assert.NoError(t, err)
	assert.Nil(t, runs)

	assert.NoError(t, index.Close())
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}
