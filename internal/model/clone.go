package model

// Clone deep-copies the document. Snapshots handed to observers must never
// alias live store state.
func (d Document) Clone() Document {
	out := d
	out.Habits = cloneHabits(d.Habits)
	out.HabitHistory = d.HabitHistory.Clone()
	out.ArchivedHabits = cloneHabits(d.ArchivedHabits)
	out.CompletedHabits = cloneHabits(d.CompletedHabits)

	if d.StudyLogs != nil {
		out.StudyLogs = make([]StudyLog, len(d.StudyLogs))
		copy(out.StudyLogs, d.StudyLogs)
	}
	if d.Gamification.Badges != nil {
		out.Gamification.Badges = append([]string{}, d.Gamification.Badges...)
	}
	if d.ShareableProgress != nil {
		out.ShareableProgress = make(ShareableProgress, len(d.ShareableProgress))
		for id, pct := range d.ShareableProgress {
			out.ShareableProgress[id] = pct
		}
	}
	return out
}

func cloneHabits(habits []Habit) []Habit {
	if habits == nil {
		return nil
	}
	out := make([]Habit, len(habits))
	for i, h := range habits {
		out[i] = h
		if h.CustomDays != nil {
			out[i].CustomDays = append([]int{}, h.CustomDays...)
		}
	}
	return out
}
