package cli

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/habitflow/internal/analytics"
)

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	*RootOptions
	Year  int
	Month int
}

type statsView struct {
	Year   int                  `json:"year"`
	Month  string               `json:"month"`
	Global analytics.Stats      `json:"global"`
	Weeks  []analytics.WeekStat `json:"weeks"`
	Top    []rankedView         `json:"habits"`
	Focus  map[string]float64   `json:"focusHours"`
}

type rankedView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Completed  int    `json:"completed"`
	Goal       int    `json:"goal"`
	Percentage int    `json:"percentage"`
	Streak     int    `json:"streak"`
	Longest    int    `json:"longest"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show monthly completion and focus statistics",
		Args:  cobra.NoArgs,

		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Year, "year", 0, "year to report (default current)")
	cmd.Flags().IntVar(&opts.Month, "month", 0, "month to report, 1-12 (default current)")

	return cmd
}

func runStats(cmd *cobra.Command, opts *StatsOptions) error {
	now := time.Now()
	year, month := opts.Year, time.Month(opts.Month)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	if month < time.January || month > time.December {
		return NewExitError(ExitCommandError, "invalid --month: must be 1-12")
	}

	sess, err := OpenSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer sess.Close()

	doc := sess.Store.Snapshot()
	view := statsView{
		Year:   year,
		Month:  month.String(),
		Global: analytics.GlobalStats(doc, year, month),
		Weeks:  analytics.WeeklyStats(doc, year, month),
		Focus:  analytics.FocusDistribution(doc, year, month),
	}
	for _, r := range analytics.TopHabits(doc, year, month) {
		current, longest := analytics.HabitStreak(doc, r.Habit.ID, now)
		view.Top = append(view.Top, rankedView{
			ID:         r.Habit.ID,
			Name:       r.Habit.Name,
			Completed:  r.Stats.Completed,
			Goal:       r.Stats.Goal,
			Percentage: r.Stats.Percentage,
			Streak:     current,
			Longest:    longest,
		})
	}

	return sess.Out.Success(view, func(w io.Writer) {
		fmt.Fprintf(w, "%s %d: %d/%d habit-days (%d%%)\n",
			view.Month, view.Year, view.Global.Completed, view.Global.Goal, view.Global.Percentage)
		for _, wk := range view.Weeks {
			fmt.Fprintf(w, "  week %d: %d%%\n", wk.Week, wk.Percentage)
		}
		fmt.Fprintln(w, "habits:")
		for _, h := range view.Top {
			fmt.Fprintf(w, "  %-12s %3d%%  %d/%d  streak %d (best %d)\n",
				h.ID, h.Percentage, h.Completed, h.Goal, h.Streak, h.Longest)
		}
		if len(view.Focus) > 0 {
			fmt.Fprintln(w, "focus hours:")
			for _, cat := range sortedKeys(view.Focus) {
				fmt.Fprintf(w, "  %-12s %.1fh\n", cat, view.Focus[cat])
			}
		}
	})
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
