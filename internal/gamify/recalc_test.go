package gamify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/habitflow/internal/model"
)

func TestRecalculate_WorkedExample(t *testing.T) {
	// One daily habit, toggled complete on "today", plus a 2h study log:
	// 1 + round(2*3) = 7 XP, level floor(7/100)+1 = 1, streak 1.
	today := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	habits := []model.Habit{{ID: "read", Frequency: model.FrequencyDaily, Goal: 10}}

	h := model.History{}
	h.Set("2024-01-01", "read", model.CompletionEntry{Completed: true})
	logs := []model.StudyLog{{ID: "l1", Date: "2024-01-01", Category: "Health", Hours: 2}}

	got := Recalculate(h, logs, habits, nil, today)
	assert.Equal(t, 7, got.XP)
	assert.Equal(t, 1, got.Level)
	assert.Equal(t, 1, got.Streak)
}

func TestRecalculate_Idempotent(t *testing.T) {
	today := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	habits := []model.Habit{daily("a"), daily("b")}
	h := model.History{}
	for i := 0; i < 10; i++ {
		complete(h, today.AddDate(0, 0, -i), "a", "b")
	}
	logs := []model.StudyLog{
		{ID: "l1", Hours: 1.5},
		{ID: "l2", Hours: 3},
	}

	first := Recalculate(h, logs, habits, nil, today)
	second := Recalculate(h, logs, habits, first.Badges, today)
	assert.Equal(t, first, second)
}

func TestRecalculate_SeedsBadges(t *testing.T) {
	today := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)

	// Empty log, zero streak - but previously earned badges survive.
	got := Recalculate(model.History{}, nil, []model.Habit{daily("a")}, []string{"starter"}, today)
	assert.Equal(t, 0, got.Streak)
	assert.Contains(t, got.Badges, "starter")
}

func TestRecalculate_AgreesWithIncrementalPath(t *testing.T) {
	today := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	habits := []model.Habit{daily("a")}
	h := model.History{}

	// Incremental: toggle on (+1), study 2h (+6), toggle off (-1).
	xp := 0
	xp += XPForToggle(false, true)
	complete(h, today, "a")
	logs := []model.StudyLog{{ID: "l1", Hours: 2}}
	xp += StudyXP(2)
	xp += XPForToggle(true, false)
	h.Remove(model.DateKey(today), "a")
	xp = ClampXP(xp)

	full := Recalculate(h, logs, habits, nil, today)
	assert.Equal(t, xp, full.XP)
	assert.Equal(t, LevelFromXP(xp), full.Level)
}
