package model

import (
	"strings"
	"time"
)

// Frequency describes which calendar days a habit is scheduled on.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekdays Frequency = "weekdays"
	FrequencyWeekends Frequency = "weekends"
	FrequencyCustom   Frequency = "custom"
)

// IsValid reports whether f is one of the known frequency values.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekdays, FrequencyWeekends, FrequencyCustom:
		return true
	default:
		return false
	}
}

// ParseFrequency normalizes user input into a Frequency.
// Unknown or empty input falls back to daily - scheduling treats missing
// frequency as daily, so parsing never fails.
func ParseFrequency(input string) Frequency {
	f := Frequency(strings.TrimSpace(strings.ToLower(input)))
	if !f.IsValid() {
		return FrequencyDaily
	}
	return f
}

// Habit is a recurring tracked behavior with a schedule and a monthly goal.
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Goal      int       `json:"goal"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon,omitempty"`
	Frequency Frequency `json:"frequency"`
	// CustomDays holds weekday indices (0=Sunday .. 6=Saturday) and only
	// applies when Frequency is custom.
	CustomDays []int     `json:"customDays"`
	CreatedAt  time.Time `json:"createdAt,omitzero"`

	// Lifecycle stamps. Exactly one may be set, and only while the habit
	// lives in the corresponding soft-state collection.
	ArchivedAt  time.Time `json:"archivedAt,omitzero"`
	CompletedAt time.Time `json:"completedAt,omitzero"`
}

// CompletionEntry records a habit being done on a given date.
// Absence of an entry is the canonical "not completed" state; entries with
// Completed false are treated as absent wherever completion is checked.
type CompletionEntry struct {
	Completed bool      `json:"completed"`
	Timestamp time.Time `json:"timestamp,omitzero"`
	Note      string    `json:"note,omitempty"`
	Value     float64   `json:"value,omitempty"`
}

// DayEntries maps habit id to that habit's completion entry for one date.
type DayEntries map[string]CompletionEntry

// History maps ISO date keys (2006-01-02) to the day's completion entries.
type History map[string]DayEntries

// StudyLog is one append-only study session record.
type StudyLog struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Category  string    `json:"category"`
	Topic     string    `json:"topic"`
	Hours     float64   `json:"hours"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// GamificationState is the derived progress bundle.
type GamificationState struct {
	XP     int      `json:"xp"`
	Level  int      `json:"level"`
	Badges []string `json:"badges"`
	Streak int      `json:"streak"`
}

// Settings holds freely mutable user preferences. Not derived.
type Settings struct {
	Year              int    `json:"year"`
	Month             int    `json:"month"`
	Theme             string `json:"theme"`
	AllowPastEditing  bool   `json:"allowPastEditing"`
	WeekStartDay      int    `json:"weekStartDay"`
	RemindersEnabled  bool   `json:"remindersEnabled"`
	ReminderTime      string `json:"reminderTime,omitempty"`
	SoundEnabled      bool   `json:"soundEnabled"`
	HasSeenOnboarding bool   `json:"hasSeenOnboarding"`
}

// ShareableProgress maps habit id to a user-set progress percentage.
// Values are restricted to ProgressLevels; independent of History.
type ShareableProgress map[string]int

// ProgressLevels are the allowed ShareableProgress percentages.
var ProgressLevels = []int{0, 25, 50, 75, 100}

// ValidProgress reports whether pct is one of the allowed progress levels.
func ValidProgress(pct int) bool {
	for _, p := range ProgressLevels {
		if p == pct {
			return true
		}
	}
	return false
}

// Document is the full per-user document stored remotely.
// JSON field names are the external contract - do not rename.
type Document struct {
	Habits            []Habit           `json:"habits"`
	HabitHistory      History           `json:"habitHistory"`
	StudyLogs         []StudyLog        `json:"studyLogs"`
	Gamification      GamificationState `json:"gamification"`
	ShareableProgress ShareableProgress `json:"shareableProgress"`
	ArchivedHabits    []Habit           `json:"archivedHabits"`
	CompletedHabits   []Habit           `json:"completedHabits"`
	Settings          Settings          `json:"settings"`
	LastUpdated       time.Time         `json:"lastUpdated,omitzero"`
	CreatedAt         time.Time         `json:"createdAt,omitzero"`
}

// FindHabit returns the habit with the given id from the slice, if present.
func FindHabit(habits []Habit, id string) (Habit, bool) {
	for _, h := range habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}

// RemoveHabit returns habits with the given id filtered out.
func RemoveHabit(habits []Habit, id string) []Habit {
	out := habits[:0:0]
	for _, h := range habits {
		if h.ID != id {
			out = append(out, h)
		}
	}
	return out
}
