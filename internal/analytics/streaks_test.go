package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/habitflow/internal/model"
)

// 2024-04-15 is a Monday.
var monday = time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC)

func TestHabitStreak_RestDaysDoNotBreakRun(t *testing.T) {
	doc := aprilDoc()
	// gym rests on weekends. Completed Thu 11th, Fri 12th, Mon 15th.
	complete(doc.HabitHistory, "2024-04-11", "gym")
	complete(doc.HabitHistory, "2024-04-12", "gym")
	complete(doc.HabitHistory, "2024-04-15", "gym")

	current, longest := HabitStreak(doc, "gym", monday)

	assert.Equal(t, 3, current, "the weekend gap is not a break")
	assert.Equal(t, 3, longest)
}

func TestHabitStreak_TodayIncompleteIsExempt(t *testing.T) {
	doc := aprilDoc()
	complete(doc.HabitHistory, "2024-04-12", "gym")

	current, _ := HabitStreak(doc, "gym", monday)

	assert.Equal(t, 1, current, "an unfinished today keeps Friday's run alive")
}

func TestHabitStreak_MissedScheduledDayBreaks(t *testing.T) {
	doc := aprilDoc()
	complete(doc.HabitHistory, "2024-04-11", "gym") // Thursday
	// Friday the 12th missed.
	complete(doc.HabitHistory, "2024-04-15", "gym")

	current, longest := HabitStreak(doc, "gym", monday)

	assert.Equal(t, 1, current)
	assert.Equal(t, 1, longest)
}

func TestHabitStreak_LongestFromRecordedHistory(t *testing.T) {
	doc := aprilDoc()
	// A five-day run far in the past, currently broken.
	for day := 1; day <= 5; day++ {
		d := time.Date(2024, 4, day, 0, 0, 0, 0, time.UTC)
		complete(doc.HabitHistory, model.DateKey(d), "read")
	}

	current, longest := HabitStreak(doc, "read", monday)

	assert.Equal(t, 0, current)
	assert.Equal(t, 5, longest)
}

func TestHabitStreak_ArchivedHabitStillReadable(t *testing.T) {
	doc := model.Document{
		ArchivedHabits: []model.Habit{dailyHabit("old", "Misc")},
		HabitHistory:   model.History{},
	}
	complete(doc.HabitHistory, "2024-04-14", "old")
	complete(doc.HabitHistory, "2024-04-15", "old")

	current, longest := HabitStreak(doc, "old", monday)

	assert.Equal(t, 2, current)
	assert.Equal(t, 2, longest)
}

func TestHabitStreak_UnknownHabitIsZero(t *testing.T) {
	doc := aprilDoc()
	current, longest := HabitStreak(doc, "nope", monday)
	assert.Zero(t, current)
	assert.Zero(t, longest)
}
