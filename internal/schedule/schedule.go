// Package schedule decides whether a habit is due on a given calendar date.
//
// IsScheduled is a pure, total predicate: it never fails, and unknown
// frequency values fall back to daily so a habit with a corrupt schedule
// still shows up rather than silently disappearing.
package schedule

import (
	"time"

	"github.com/roach88/habitflow/internal/model"
)

// IsScheduled reports whether the habit is due on the given date.
func IsScheduled(h model.Habit, date time.Time) bool {
	weekday := date.Weekday() // 0=Sunday .. 6=Saturday

	switch h.Frequency {
	case model.FrequencyWeekdays:
		return weekday != time.Saturday && weekday != time.Sunday
	case model.FrequencyWeekends:
		return weekday == time.Saturday || weekday == time.Sunday
	case model.FrequencyCustom:
		for _, d := range h.CustomDays {
			if d == int(weekday) {
				return true
			}
		}
		return false
	default:
		// daily, empty, or unknown
		return true
	}
}

// ScheduledOn filters habits down to those due on the date.
func ScheduledOn(habits []model.Habit, date time.Time) []model.Habit {
	var out []model.Habit
	for _, h := range habits {
		if IsScheduled(h, date) {
			out = append(out, h)
		}
	}
	return out
}
