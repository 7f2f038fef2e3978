package gamify

import (
	"math"
	"time"

	"github.com/roach88/habitflow/internal/model"
	"github.com/roach88/habitflow/internal/schedule"
)

// StreakCompletionRatio is the share of a day's scheduled habits that must
// be completed for the day to qualify, applied through ceil. At 0.5 a
// single-habit day requires that habit; a five-habit day requires three.
const StreakCompletionRatio = 0.5

// maxStreakLookback bounds the backward walk.
const maxStreakLookback = 365

// CurrentStreak counts consecutive qualifying days walking backward from
// today. Rest days (no scheduled habits) are skipped. An open "today" that
// falls short is skipped without incrementing; any earlier shortfall ends
// the walk.
func CurrentStreak(history model.History, habits []model.Habit, today time.Time) int {
	streak := 0
	check := today

	for i := 0; i < maxStreakLookback; i++ {
		scheduled := schedule.ScheduledOn(habits, check)
		if len(scheduled) == 0 {
			// Rest day: neither counts for nor against.
			check = check.AddDate(0, 0, -1)
			continue
		}

		date := model.DateKey(check)
		completed := 0
		for _, h := range scheduled {
			if history.Completed(date, h.ID) {
				completed++
			}
		}

		need := int(math.Ceil(float64(len(scheduled)) * StreakCompletionRatio))
		if completed >= need {
			streak++
			check = check.AddDate(0, 0, -1)
			continue
		}

		// Today's partial progress never breaks a streak while the day is
		// still open; look at yesterday without incrementing.
		if model.DateKey(check) == model.DateKey(today) {
			check = check.AddDate(0, 0, -1)
			continue
		}
		break
	}

	return streak
}
