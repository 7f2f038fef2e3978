package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/habitflow/internal/model"
)

func openTestRemote(t *testing.T) *SQLiteRemote {
	t.Helper()
	r, err := Open(filepath.Join(t.TempDir(), "habitflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	r.SetClock(func() time.Time {
		return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	})
	return r
}

func TestSQLiteRemote_GetNotFound(t *testing.T) {
	r := openTestRemote(t)
	_, err := r.Get(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteRemote_SetGetRoundTrip(t *testing.T) {
	r := openTestRemote(t)
	ctx := context.Background()
	doc := model.NewDefaultDocument(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	doc.HabitHistory.Set("2024-01-01", "cp", model.CompletionEntry{Completed: true})

	require.NoError(t, r.Set(ctx, "alice", doc, true))

	got, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, got.HabitHistory.Completed("2024-01-01", "cp"))
	assert.False(t, got.LastUpdated.IsZero(), "writes stamp lastUpdated")
}

func TestSQLiteRemote_DocumentsIsolatedByUser(t *testing.T) {
	r := openTestRemote(t)
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	aliceDoc := model.NewDefaultDocument(now)
	aliceDoc.Gamification.XP = 10
	bobDoc := model.NewDefaultDocument(now)
	bobDoc.Gamification.XP = 99

	require.NoError(t, r.Set(ctx, "alice", aliceDoc, true))
	require.NoError(t, r.Set(ctx, "bob", bobDoc, true))

	got, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Gamification.XP)
}

func TestSQLiteRemote_MergeKeepsLatestTopLevel(t *testing.T) {
	r := openTestRemote(t)
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := model.NewDefaultDocument(now)
	require.NoError(t, r.Set(ctx, "alice", first, true))

	second := model.NewDefaultDocument(now)
	second.Gamification.XP = 42
	second.Gamification.Level = 1
	require.NoError(t, r.Set(ctx, "alice", second, true))

	got, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 42, got.Gamification.XP, "later write wins at top-level granularity")
}

func TestSQLiteRemote_GetRaw(t *testing.T) {
	r := openTestRemote(t)
	ctx := context.Background()

	_, err := r.GetRaw(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.Set(ctx, "alice", model.NewDefaultDocument(time.Now()), false))
	raw, err := r.GetRaw(ctx, "alice")
	require.NoError(t, err)
	assert.NoError(t, ValidateDocument(raw), "stored documents satisfy the schema")
}

func TestSQLiteRemote_OpenIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "habitflow.db")

	r1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, r1.Set(context.Background(), "alice", model.NewDefaultDocument(time.Now()), false))
	require.NoError(t, r1.Close())

	r2, err := Open(path)
	require.NoError(t, err)
	defer r2.Close()
	_, err = r2.Get(context.Background(), "alice")
	assert.NoError(t, err, "reopening keeps stored documents")
}
