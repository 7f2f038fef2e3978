package gamify

// Badge describes one streak achievement.
type Badge struct {
	ID       string
	Name     string
	Desc     string
	Required int // streak days
}

// Badges lists all badge definitions in ascending threshold order.
var Badges = []Badge{
	{ID: "starter", Name: "Starter", Desc: "7 Day Streak", Required: 7},
	{ID: "committed", Name: "Committed", Desc: "14 Day Streak", Required: 14},
	{ID: "grinder", Name: "Grinder", Desc: "21 Day Streak", Required: 21},
	{ID: "legend", Name: "Legend", Desc: "30 Day Streak", Required: 30},
}

// UpdateBadges returns current plus any badges newly unlocked by streakDays.
// Badges are never removed: a badge present in current stays present even if
// the streak has since reset. The input slice is not mutated.
func UpdateBadges(current []string, streakDays int) []string {
	out := append([]string{}, current...)
	have := make(map[string]bool, len(out))
	for _, id := range out {
		have[id] = true
	}
	for _, b := range Badges {
		if streakDays >= b.Required && !have[b.ID] {
			out = append(out, b.ID)
		}
	}
	return out
}
