package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/habitflow/internal/model"
)

func weekdayHabit(id string) model.Habit {
	return model.Habit{ID: id, Name: id, Category: "Fitness", Frequency: model.FrequencyWeekdays}
}

func dailyHabit(id, category string) model.Habit {
	return model.Habit{ID: id, Name: id, Category: category, Frequency: model.FrequencyDaily}
}

func complete(h model.History, date, habitID string) {
	h.Set(date, habitID, model.CompletionEntry{Completed: true})
}

// April 2024: the 1st is a Monday, 30 days, so a weekdays habit has 22
// scheduled days.
func aprilDoc() model.Document {
	doc := model.Document{
		Habits:       []model.Habit{dailyHabit("read", "Learning"), weekdayHabit("gym")},
		HabitHistory: model.History{},
	}
	return doc
}

func TestGlobalStats_ScheduleAwareGoal(t *testing.T) {
	doc := aprilDoc()
	complete(doc.HabitHistory, "2024-04-01", "read")
	complete(doc.HabitHistory, "2024-04-01", "gym")
	complete(doc.HabitHistory, "2024-04-02", "read")

	s := GlobalStats(doc, 2024, time.April)

	assert.Equal(t, 3, s.Completed)
	assert.Equal(t, 30+22, s.Goal, "daily habit 30 days, weekdays habit 22 days")
	assert.Equal(t, 6, s.Percentage)
}

func TestHabitMonthStats_DynamicGoalAndLeft(t *testing.T) {
	doc := aprilDoc()
	complete(doc.HabitHistory, "2024-04-01", "gym")
	complete(doc.HabitHistory, "2024-04-02", "gym")
	// Saturday completion counts even though the habit rests on weekends.
	complete(doc.HabitHistory, "2024-04-06", "gym")

	s := HabitMonthStats(doc, "gym", 2024, time.April)

	assert.Equal(t, 3, s.Completed)
	assert.Equal(t, 22, s.Goal)
	assert.Equal(t, 19, s.Left)
	assert.Equal(t, 14, s.Percentage)
}

func TestHabitMonthStats_UnknownHabitHasZeroGoal(t *testing.T) {
	doc := aprilDoc()
	complete(doc.HabitHistory, "2024-04-01", "ghost")

	s := HabitMonthStats(doc, "ghost", 2024, time.April)

	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 0, s.Goal)
	assert.Equal(t, 0, s.Percentage)
	assert.Equal(t, 0, s.Left)
}

func TestDailyCompletionTrend(t *testing.T) {
	doc := aprilDoc()
	complete(doc.HabitHistory, "2024-04-01", "read")
	complete(doc.HabitHistory, "2024-04-01", "gym")
	complete(doc.HabitHistory, "2024-04-02", "read")

	trend := DailyCompletionTrend(doc, 2024, time.April)

	require.Len(t, trend, 30)
	assert.Equal(t, 100, trend[0])
	assert.Equal(t, 50, trend[1])
	assert.Equal(t, 0, trend[2])
}

func TestDailyCompletionTrend_NoHabits(t *testing.T) {
	doc := model.Document{HabitHistory: model.History{}}
	trend := DailyCompletionTrend(doc, 2024, time.April)
	require.Len(t, trend, 30)
	for _, v := range trend {
		assert.Zero(t, v)
	}
}

func TestWeeklyStats_ChunksOfSeven(t *testing.T) {
	doc := aprilDoc()
	// Complete both habits every day of the first chunk.
	for day := 1; day <= 7; day++ {
		key := time.Date(2024, time.April, day, 0, 0, 0, 0, time.UTC)
		complete(doc.HabitHistory, model.DateKey(key), "read")
		complete(doc.HabitHistory, model.DateKey(key), "gym")
	}

	weeks := WeeklyStats(doc, 2024, time.April)

	require.Len(t, weeks, 5, "30 days split into 7+7+7+7+2")
	assert.Equal(t, 1, weeks[0].Week)
	assert.Equal(t, 100, weeks[0].Percentage)
	assert.Equal(t, 0, weeks[1].Percentage)
}

func TestFocusDistribution(t *testing.T) {
	doc := aprilDoc()
	doc.StudyLogs = []model.StudyLog{
		{ID: "1", Date: "2024-04-10", Category: "Learning", Hours: 2},
		{ID: "2", Date: "2024-04-11", Category: "Learning", Hours: 1.5},
		{ID: "3", Date: "2024-04-12", Category: "", Hours: 1},
		{ID: "4", Date: "2024-03-31", Category: "Learning", Hours: 4}, // outside the month
	}

	dist := FocusDistribution(doc, 2024, time.April)

	assert.InDelta(t, 3.5, dist["Learning"], 1e-9)
	assert.InDelta(t, 1.0, dist["General"], 1e-9, "uncategorized logs fall back to General")
	assert.Zero(t, dist["Fitness"], "habit categories present even with no hours")
	_, ok := dist["Fitness"]
	assert.True(t, ok)
}

func TestTopHabits_SortedByPercentage(t *testing.T) {
	doc := aprilDoc()
	// gym: 11 of 22 scheduled days; read: 3 of 30.
	for day := 1; day <= 15; day++ {
		d := time.Date(2024, time.April, day, 0, 0, 0, 0, time.UTC)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			complete(doc.HabitHistory, model.DateKey(d), "gym")
		}
	}
	for day := 1; day <= 3; day++ {
		d := time.Date(2024, time.April, day, 0, 0, 0, 0, time.UTC)
		complete(doc.HabitHistory, model.DateKey(d), "read")
	}

	ranked := TopHabits(doc, 2024, time.April)

	require.Len(t, ranked, 2)
	assert.Equal(t, "gym", ranked[0].Habit.ID)
	assert.Equal(t, "read", ranked[1].Habit.ID)
	assert.Greater(t, ranked[0].Stats.Percentage, ranked[1].Stats.Percentage)
}
