package stash

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/habitflow/internal/model"
)

func openTestStash(t *testing.T) *Stash {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "stash.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStash_GetEmpty(t *testing.T) {
	s := openTestStash(t)
	_, ok, err := s.Get("alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStash_PutGetClear(t *testing.T) {
	s := openTestStash(t)
	doc := model.NewDefaultDocument(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	doc.Gamification.XP = 7

	require.NoError(t, s.Put("alice", doc))

	got, ok, err := s.Get("alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7, got.Gamification.XP)

	// Other users see nothing.
	_, ok, err = s.Get("bob")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Clear("alice"))
	_, ok, err = s.Get("alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStash_PutReplaces(t *testing.T) {
	s := openTestStash(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := model.NewDefaultDocument(now)
	first.Gamification.XP = 1
	second := model.NewDefaultDocument(now)
	second.Gamification.XP = 2

	require.NoError(t, s.Put("alice", first))
	require.NoError(t, s.Put("alice", second))

	got, ok, err := s.Get("alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, got.Gamification.XP, "a newer stash replaces the older one")
}

func TestStash_ClearMissingIsNoOp(t *testing.T) {
	s := openTestStash(t)
	assert.NoError(t, s.Clear("nobody"))
}
