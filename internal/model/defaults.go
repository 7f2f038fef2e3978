package model

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a collision-free identifier for habits and study logs.
func NewID() string {
	return uuid.NewString()
}

// DefaultHabits returns the starter habit set written for first-time users.
func DefaultHabits() []Habit {
	allDays := []int{0, 1, 2, 3, 4, 5, 6}
	return []Habit{
		{ID: "cp", Name: "CP (solve ≥ 3 Qs)", Goal: 25, Category: "CP", Color: "#ef4444", Frequency: FrequencyDaily, CustomDays: allDays},
		{ID: "webdev", Name: "WebDev (learn topic)", Goal: 22, Category: "WebDev", Color: "#3b82f6", Frequency: FrequencyDaily, CustomDays: allDays},
		{ID: "mlds", Name: "ML/DS (study)", Goal: 20, Category: "MLDS", Color: "#10b981", Frequency: FrequencyDaily, CustomDays: allDays},
		{ID: "typing", Name: "Typing Practice", Goal: 25, Category: "Typing", Color: "#f59e0b", Frequency: FrequencyDaily, CustomDays: allDays},
		{ID: "project", Name: "PROJECT", Goal: 20, Category: "Projects", Color: "#a855f7", Frequency: FrequencyDaily, CustomDays: allDays},
	}
}

// DefaultGamification returns zeroed derived state at level 1.
func DefaultGamification() GamificationState {
	return GamificationState{XP: 0, Level: 1, Badges: []string{}, Streak: 0}
}

// DefaultSettings returns settings anchored to the current year/month.
func DefaultSettings(now time.Time) Settings {
	return Settings{
		Year:         now.Year(),
		Month:        int(now.Month()) - 1, // stored 0-based, January = 0
		Theme:        "dark",
		WeekStartDay: 0,
	}
}

// NewDefaultDocument builds the initial document for a first-time user.
func NewDefaultDocument(now time.Time) Document {
	return Document{
		Habits:            DefaultHabits(),
		HabitHistory:      History{},
		StudyLogs:         []StudyLog{},
		Gamification:      DefaultGamification(),
		ShareableProgress: ShareableProgress{},
		ArchivedHabits:    []Habit{},
		CompletedHabits:   []Habit{},
		Settings:          DefaultSettings(now),
		CreatedAt:         now,
	}
}

// Normalize fills missing fields with defaults, field by field. Stored
// documents written by older client shapes may omit entire sections; after
// Normalize the document is safe to prime a session from. History is pruned
// to canonical form.
func (d *Document) Normalize(now time.Time) {
	if d.Habits == nil {
		d.Habits = DefaultHabits()
	}
	if d.HabitHistory == nil {
		d.HabitHistory = History{}
	}
	d.HabitHistory.Prune()
	if d.StudyLogs == nil {
		d.StudyLogs = []StudyLog{}
	}
	// Level is 1-based, so a zero level means the section was absent.
	if d.Gamification.Level == 0 {
		d.Gamification = DefaultGamification()
	}
	if d.Gamification.Badges == nil {
		d.Gamification.Badges = []string{}
	}
	if d.ShareableProgress == nil {
		d.ShareableProgress = ShareableProgress{}
	}
	if d.ArchivedHabits == nil {
		d.ArchivedHabits = []Habit{}
	}
	if d.CompletedHabits == nil {
		d.CompletedHabits = []Habit{}
	}
	if d.Settings.Year == 0 {
		d.Settings = DefaultSettings(now)
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
}
