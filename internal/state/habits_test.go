package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/habitflow/internal/model"
)

func TestAddHabit_FillsDefaults(t *testing.T) {
	s := newTestStore(t)

	h := s.AddHabit(model.Habit{Name: "Meditate"})
	assert.NotEmpty(t, h.ID)
	assert.Equal(t, "General", h.Category)
	assert.Equal(t, 30, h.Goal)
	assert.Equal(t, model.FrequencyDaily, h.Frequency)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, h.CustomDays)
	assert.Equal(t, testTime, h.CreatedAt)

	_, ok := model.FindHabit(s.Snapshot().Habits, h.ID)
	assert.True(t, ok)
}

func TestUpdateHabit(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateHabit("cp", func(h *model.Habit) {
		h.Name = "CP grind"
		h.Goal = 28
		h.ID = "hijacked"
	})
	require.NoError(t, err)

	h, ok := model.FindHabit(s.Snapshot().Habits, "cp")
	require.True(t, ok, "the id cannot be changed by an update")
	assert.Equal(t, "CP grind", h.Name)
	assert.Equal(t, 28, h.Goal)

	assert.ErrorIs(t, s.UpdateHabit("missing", func(*model.Habit) {}), ErrNotFound)
}

func TestArchiveRestoreRoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.ArchiveHabit("cp"))
	snap := s.Snapshot()
	_, active := model.FindHabit(snap.Habits, "cp")
	assert.False(t, active)
	archived, ok := model.FindHabit(snap.ArchivedHabits, "cp")
	require.True(t, ok)
	assert.Equal(t, testTime, archived.ArchivedAt)

	require.NoError(t, s.RestoreHabit("cp"))
	snap = s.Snapshot()
	restored, ok := model.FindHabit(snap.Habits, "cp")
	require.True(t, ok)
	assert.True(t, restored.ArchivedAt.IsZero(), "restore strips the stamp")
	assert.Empty(t, snap.ArchivedHabits)
}

func TestCompleteRestoreRoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CompleteHabit("typing"))
	snap := s.Snapshot()
	done, ok := model.FindHabit(snap.CompletedHabits, "typing")
	require.True(t, ok)
	assert.Equal(t, testTime, done.CompletedAt)

	require.NoError(t, s.RestoreCompletedHabit("typing"))
	restored, ok := model.FindHabit(s.Snapshot().Habits, "typing")
	require.True(t, ok)
	assert.True(t, restored.CompletedAt.IsZero())
}

func TestDeleteHabit_KeepsHistory(t *testing.T) {
	s := newTestStore(t)
	date := model.DateKey(testTime)
	s.ToggleHabit(date, "cp", nil)

	require.NoError(t, s.DeleteHabit("cp"))
	snap := s.Snapshot()
	_, ok := model.FindHabit(snap.Habits, "cp")
	assert.False(t, ok)
	assert.True(t, snap.HabitHistory.Completed(date, "cp"),
		"history under a deleted habit id is retained")
}

func TestDeleteFromCollections(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.ArchiveHabit("cp"))
	require.NoError(t, s.DeleteArchivedHabit("cp"))
	assert.Empty(t, s.Snapshot().ArchivedHabits)

	require.NoError(t, s.CompleteHabit("webdev"))
	require.NoError(t, s.DeleteCompletedHabit("webdev"))
	assert.Empty(t, s.Snapshot().CompletedHabits)

	assert.ErrorIs(t, s.DeleteHabit("nope"), ErrNotFound)
	assert.ErrorIs(t, s.DeleteArchivedHabit("nope"), ErrNotFound)
	assert.ErrorIs(t, s.DeleteCompletedHabit("nope"), ErrNotFound)
	assert.ErrorIs(t, s.ArchiveHabit("nope"), ErrNotFound)
	assert.ErrorIs(t, s.RestoreHabit("nope"), ErrNotFound)
	assert.ErrorIs(t, s.CompleteHabit("nope"), ErrNotFound)
	assert.ErrorIs(t, s.RestoreCompletedHabit("nope"), ErrNotFound)
}
