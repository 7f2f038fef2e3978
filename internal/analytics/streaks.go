package analytics

import (
	"sort"
	"time"

	"github.com/roach88/habitflow/internal/model"
	"github.com/roach88/habitflow/internal/schedule"
)

// streakWalkLimit bounds the backward walk over history.
const streakWalkLimit = 365

// HabitStreak reports one habit's current and longest run of completions.
//
// The current streak walks backward from today, skipping days the habit is
// not scheduled; today itself may be incomplete without breaking the run.
// The longest streak counts consecutive recorded completion dates only.
// Past schedules are not reconstructable once the habit's frequency has
// changed, so scheduled gaps in old history read as breaks there; the
// current streak, which does respect the live schedule, takes precedence
// when higher. Archived habits keep their streaks readable.
func HabitStreak(doc model.Document, habitID string, today time.Time) (current, longest int) {
	habit, ok := model.FindHabit(doc.Habits, habitID)
	if !ok {
		habit, ok = model.FindHabit(doc.ArchivedHabits, habitID)
	}
	if !ok {
		return 0, 0
	}

	todayKey := model.DateKey(today)
	day := today
	for i := 0; i < streakWalkLimit; i++ {
		if !schedule.IsScheduled(habit, day) {
			day = day.AddDate(0, 0, -1)
			continue
		}
		key := model.DateKey(day)
		if doc.HabitHistory.Completed(key, habitID) {
			current++
			day = day.AddDate(0, 0, -1)
			continue
		}
		if key == todayKey {
			day = day.AddDate(0, 0, -1)
			continue
		}
		break
	}

	longest = longestRecordedRun(doc.HabitHistory, habitID)
	if current > longest {
		longest = current
	}
	return current, longest
}

// longestRecordedRun finds the longest chain of strictly consecutive
// calendar days with a recorded completion.
func longestRecordedRun(history model.History, habitID string) int {
	var dates []string
	for key := range history {
		if history.Completed(key, habitID) {
			dates = append(dates, key)
		}
	}
	sort.Strings(dates)

	longest, run := 0, 0
	var prev time.Time
	for i, key := range dates {
		day, err := model.ParseDateKey(key)
		if err != nil {
			continue
		}
		if i > 0 && day.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		prev = day
		if run > longest {
			longest = run
		}
	}
	return longest
}
