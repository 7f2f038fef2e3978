package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/habitflow/internal/model"
	"github.com/roach88/habitflow/internal/state"
)

// ToggleOptions holds flags for the toggle command.
type ToggleOptions struct {
	*RootOptions
	Date  string
	Note  string
	Value float64
}

// NewToggleCommand creates the toggle command.
func NewToggleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ToggleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "toggle <habit-id>",
		Short: "Flip a habit's completion for a day",
		Long: `Flip a habit's completion for a day (today by default).

Toggling off removes the day's entry entirely. Passing --note or --value
forces the entry to completed and attaches the metadata.

Example:
  habitflow toggle cp
  habitflow toggle cp --date 2026-08-30 --note "5 problems" --value 5`,
		Args: cobra.ExactArgs(1),

		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "date to toggle, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&opts.Note, "note", "", "note to attach to the completion")
	cmd.Flags().Float64Var(&opts.Value, "value", 0, "numeric value to attach to the completion")

	return cmd
}

func runToggle(cmd *cobra.Command, opts *ToggleOptions, habitID string) error {
	date := opts.Date
	if date == "" {
		date = model.DateKey(time.Now())
	} else if _, err := model.ParseDateKey(date); err != nil {
		return WrapExitError(ExitCommandError, "invalid --date", err)
	}

	sess, err := OpenSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer sess.Close()

	doc := sess.Store.Snapshot()
	if _, ok := model.FindHabit(doc.Habits, habitID); !ok {
		return NewExitError(ExitFailure, fmt.Sprintf("unknown habit %q", habitID))
	}

	var extra *state.ToggleExtra
	if cmd.Flags().Changed("note") || cmd.Flags().Changed("value") {
		extra = &state.ToggleExtra{}
		if cmd.Flags().Changed("note") {
			extra.Note = &opts.Note
		}
		if cmd.Flags().Changed("value") {
			extra.Value = &opts.Value
		}
	}

	sess.Store.ToggleHabit(date, habitID, extra)

	after := sess.Store.Snapshot()
	completed := after.HabitHistory.Completed(date, habitID)
	view := map[string]interface{}{
		"habit":     habitID,
		"date":      date,
		"completed": completed,
		"xp":        after.Gamification.XP,
		"streak":    after.Gamification.Streak,
	}
	return sess.Out.Success(view, func(w io.Writer) {
		verb := "unchecked"
		if completed {
			verb = "completed"
		}
		fmt.Fprintf(w, "%s %s on %s (xp %d, streak %d)\n",
			verb, habitID, date, after.Gamification.XP, after.Gamification.Streak)
	})
}
