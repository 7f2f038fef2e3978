// Package gamify derives XP, level, streak, and badges from the raw
// completion log.
//
// Everything here is a pure function over immutable inputs. The state store
// applies the incremental helpers (XPForToggle, StudyXP) as an optimization,
// but Recalculate is the ground truth: for any fixed (history, studyLogs,
// habits) it must produce the same GamificationState every time, and the
// incremental path must agree with it after any sequence of toggles and log
// edits.
//
// Streak semantics: the walk runs backward from today, at most a year. A
// date with no scheduled habits is a rest day and is skipped - it neither
// extends nor breaks the streak. Today itself is exempt while the day is
// still open: insufficient completions on today skip to yesterday instead of
// breaking.
//
// Badges are monotonic. Once a streak threshold has been reached the badge
// stays earned, even after the streak resets to zero.
package gamify
