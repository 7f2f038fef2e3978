package gamify

import (
	"time"

	"github.com/roach88/habitflow/internal/model"
)

// Recalculate rebuilds the full derived state from the raw log.
//
// Total XP is the count of completed entries across all days times
// XPPerHabit, plus the rounded study XP of every log. Level, streak, and
// badges follow from that. currentBadges seeds the monotonic badge set so
// previously earned badges survive a streak reset.
//
// Idempotent: identical inputs always produce an identical result, and the
// result agrees with the incremental toggle/log path.
func Recalculate(history model.History, logs []model.StudyLog, habits []model.Habit, currentBadges []string, today time.Time) model.GamificationState {
	xp := history.CompletedCount() * XPPerHabit
	for _, log := range logs {
		xp += StudyXP(log.Hours)
	}

	streak := CurrentStreak(history, habits, today)
	return model.GamificationState{
		XP:     xp,
		Level:  LevelFromXP(xp),
		Badges: UpdateBadges(currentBadges, streak),
		Streak: streak,
	}
}
