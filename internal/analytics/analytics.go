// Package analytics derives read-only monthly statistics from a document
// snapshot. Everything here is pure: no clocks, no stores, no mutation.
package analytics

import (
	"sort"
	"time"

	"github.com/roach88/habitflow/internal/model"
	"github.com/roach88/habitflow/internal/schedule"
)

// Stats is a completed-versus-goal summary.
type Stats struct {
	Completed  int
	Goal       int
	Percentage int
}

// WeekStat is the completion percentage of one calendar-month week chunk.
type WeekStat struct {
	Week       int
	Percentage int
}

// HabitStats is the monthly summary for one habit. Goal is the number of
// scheduled days in the month, not the habit's static goal, so habits on
// sparse schedules are not penalized.
type HabitStats struct {
	Completed  int
	Goal       int
	Percentage int
	Left       int
}

// RankedHabit pairs a habit with its monthly stats for leaderboards.
type RankedHabit struct {
	Habit model.Habit
	Stats HabitStats
}

// monthDays lists every day of the given month at midnight UTC.
func monthDays(year int, month time.Month) []time.Time {
	var days []time.Time
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func pct(completed, goal int) int {
	if goal <= 0 {
		return 0
	}
	return int(float64(completed)/float64(goal)*100 + 0.5)
}

// DailyCompletionTrend returns, per day of the month, the percentage of
// habits completed that day.
func DailyCompletionTrend(doc model.Document, year int, month time.Month) []int {
	days := monthDays(year, month)
	trend := make([]int, 0, len(days))
	for _, day := range days {
		key := model.DateKey(day)
		completed := 0
		for _, h := range doc.Habits {
			if doc.HabitHistory.Completed(key, h.ID) {
				completed++
			}
		}
		trend = append(trend, pct(completed, len(doc.Habits)))
	}
	return trend
}

// WeeklyStats splits the month into chunks of seven days and reports the
// completion percentage of each chunk across all habits.
func WeeklyStats(doc model.Document, year int, month time.Month) []WeekStat {
	days := monthDays(year, month)
	var weeks []WeekStat
	for i := 0; i < len(days); i += 7 {
		end := i + 7
		if end > len(days) {
			end = len(days)
		}
		chunk := days[i:end]
		completed := 0
		for _, day := range chunk {
			key := model.DateKey(day)
			for _, h := range doc.Habits {
				if doc.HabitHistory.Completed(key, h.ID) {
					completed++
				}
			}
		}
		weeks = append(weeks, WeekStat{
			Week:       len(weeks) + 1,
			Percentage: pct(completed, len(chunk)*len(doc.Habits)),
		})
	}
	return weeks
}

// FocusDistribution sums the month's study hours per category. Categories
// owned by active habits appear even at zero hours; logs in categories with
// no matching habit still get their own bucket.
func FocusDistribution(doc model.Document, year int, month time.Month) map[string]float64 {
	dist := map[string]float64{}
	for _, h := range doc.Habits {
		if h.Category != "" {
			dist[h.Category] = 0
		}
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	for _, log := range doc.StudyLogs {
		day, err := model.ParseDateKey(log.Date)
		if err != nil || day.Before(start) || !day.Before(end) {
			continue
		}
		category := log.Category
		if category == "" {
			category = "General"
		}
		dist[category] += log.Hours
	}
	return dist
}

// GlobalStats reports month-wide completions against the number of
// habit-days actually scheduled.
func GlobalStats(doc model.Document, year int, month time.Month) Stats {
	var s Stats
	for _, day := range monthDays(year, month) {
		key := model.DateKey(day)
		for _, h := range doc.Habits {
			if !schedule.IsScheduled(h, day) {
				continue
			}
			s.Goal++
			if doc.HabitHistory.Completed(key, h.ID) {
				s.Completed++
			}
		}
	}
	s.Percentage = pct(s.Completed, s.Goal)
	return s
}

// HabitMonthStats reports one habit's month. Completions on unscheduled
// days still count toward Completed; the goal is the scheduled-day count.
func HabitMonthStats(doc model.Document, habitID string, year int, month time.Month) HabitStats {
	habit, found := model.FindHabit(doc.Habits, habitID)
	var s HabitStats
	for _, day := range monthDays(year, month) {
		key := model.DateKey(day)
		if doc.HabitHistory.Completed(key, habitID) {
			s.Completed++
		}
		if found && schedule.IsScheduled(habit, day) {
			s.Goal++
		}
	}
	s.Percentage = pct(s.Completed, s.Goal)
	s.Left = s.Goal - s.Completed
	if s.Left < 0 {
		s.Left = 0
	}
	return s
}

// TopHabits ranks active habits by monthly completion percentage,
// highest first. Ties keep the document's habit order.
func TopHabits(doc model.Document, year int, month time.Month) []RankedHabit {
	ranked := make([]RankedHabit, 0, len(doc.Habits))
	for _, h := range doc.Habits {
		ranked = append(ranked, RankedHabit{
			Habit: h,
			Stats: HabitMonthStats(doc, h.ID, year, month),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Stats.Percentage > ranked[j].Stats.Percentage
	})
	return ranked
}
