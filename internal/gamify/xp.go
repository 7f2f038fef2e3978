package gamify

import (
	"errors"
	"math"
)

const (
	// XPPerHabit is awarded for each habit completion.
	XPPerHabit = 1

	// XPPerStudyHour is awarded per logged study hour (rounded).
	XPPerStudyHour = 3

	// XPPerLevel is the flat XP cost of each level.
	XPPerLevel = 100

	// MaxStudyHours caps a single study log entry.
	MaxStudyHours = 24
)

// ErrInvalidHours rejects study hours outside (0, MaxStudyHours].
var ErrInvalidHours = errors.New("study hours must be greater than 0 and at most 24")

// XPForToggle returns the XP delta for a completion transition.
// Metadata-only edits (no transition) are worth nothing.
func XPForToggle(wasCompleted, isNowCompleted bool) int {
	switch {
	case !wasCompleted && isNowCompleted:
		return XPPerHabit
	case wasCompleted && !isNowCompleted:
		return -XPPerHabit
	default:
		return 0
	}
}

// ValidHours reports whether hours is an acceptable study duration.
func ValidHours(hours float64) bool {
	return hours > 0 && hours <= MaxStudyHours && !math.IsNaN(hours)
}

// StudyXP returns the XP for a study session of the given length.
// Callers validate hours first; StudyXP itself just rounds.
func StudyXP(hours float64) int {
	return int(math.Round(hours * XPPerStudyHour))
}

// LevelFromXP returns the level for a total XP value.
// XP is clamped to zero before leveling, so level is always at least 1.
func LevelFromXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// ClampXP keeps accumulated XP non-negative after a negative delta.
func ClampXP(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp
}
