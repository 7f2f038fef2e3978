package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/habitflow/internal/model"
)

// HabitAddOptions holds flags for the habit add command.
type HabitAddOptions struct {
	*RootOptions
	Category  string
	Goal      int
	Color     string
	Frequency string
	Days      []int
}

// NewHabitCommand creates the habit command group.
func NewHabitCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage habits",
	}
	cmd.AddCommand(newHabitAddCommand(rootOpts))
	cmd.AddCommand(newHabitListCommand(rootOpts))
	cmd.AddCommand(newHabitArchiveCommand(rootOpts))
	cmd.AddCommand(newHabitRestoreCommand(rootOpts))
	cmd.AddCommand(newHabitRmCommand(rootOpts))
	cmd.AddCommand(newHabitDoneCommand(rootOpts))
	return cmd
}

func newHabitAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HabitAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a habit",
		Long: `Create a habit. Missing fields get defaults.

Example:
  habitflow habit add "Morning run" --category Fitness --frequency weekdays
  habitflow habit add Reading --frequency custom --days 1,3,5`,
		Args: cobra.ExactArgs(1),

		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := OpenSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer sess.Close()

			h := model.Habit{
				Name:      args[0],
				Category:  opts.Category,
				Goal:      opts.Goal,
				Color:     opts.Color,
				Frequency: model.ParseFrequency(opts.Frequency),
			}
			if cmd.Flags().Changed("days") {
				h.CustomDays = opts.Days
			}
			h = sess.Store.AddHabit(h)

			return sess.Out.Success(h, func(w io.Writer) {
				fmt.Fprintf(w, "added %s (%s, %s)\n", h.ID, h.Name, h.Frequency)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "habit category")
	cmd.Flags().IntVar(&opts.Goal, "goal", 0, "monthly goal in days")
	cmd.Flags().StringVar(&opts.Color, "color", "", "display color")
	cmd.Flags().StringVar(&opts.Frequency, "frequency", "daily", "daily|weekdays|weekends|custom")
	cmd.Flags().IntSliceVar(&opts.Days, "days", nil, "weekdays for custom frequency, 0=Sunday")

	return cmd
}

func newHabitListCommand(rootOpts *RootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits",
		Args:  cobra.NoArgs,

		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := OpenSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer sess.Close()

			doc := sess.Store.Snapshot()
			view := map[string][]model.Habit{"active": doc.Habits}
			if all {
				view["archived"] = doc.ArchivedHabits
				view["completed"] = doc.CompletedHabits
			}
			return sess.Out.Success(view, func(w io.Writer) {
				printHabits(w, "active", doc.Habits)
				if all {
					printHabits(w, "archived", doc.ArchivedHabits)
					printHabits(w, "completed", doc.CompletedHabits)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include archived and completed habits")
	return cmd
}

func printHabits(w io.Writer, label string, habits []model.Habit) {
	fmt.Fprintf(w, "%s (%d):\n", label, len(habits))
	for _, h := range habits {
		fmt.Fprintf(w, "  %-12s %-24s %-10s %s\n", h.ID, h.Name, h.Category, h.Frequency)
	}
}

// lifecycleCommand builds the archive/restore/rm/done family: each is a
// one-id command delegating to a store mutator.
func lifecycleCommand(rootOpts *RootOptions, use, short, verb string, op func(*Session, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),

		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := OpenSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := op(sess, args[0]); err != nil {
				return WrapExitError(ExitFailure, verb+" habit", err)
			}
			sess.Out.Printf("%s %s\n", verb, args[0])
			return nil
		},
	}
}

func newHabitArchiveCommand(rootOpts *RootOptions) *cobra.Command {
	return lifecycleCommand(rootOpts, "archive <habit-id>", "Archive a habit, keeping its history", "archived",
		func(s *Session, id string) error { return s.Store.ArchiveHabit(id) })
}

func newHabitRestoreCommand(rootOpts *RootOptions) *cobra.Command {
	return lifecycleCommand(rootOpts, "restore <habit-id>", "Restore an archived or completed habit", "restored",
		func(s *Session, id string) error {
			if err := s.Store.RestoreHabit(id); err == nil {
				return nil
			}
			return s.Store.RestoreCompletedHabit(id)
		})
}

func newHabitRmCommand(rootOpts *RootOptions) *cobra.Command {
	return lifecycleCommand(rootOpts, "rm <habit-id>", "Delete an active habit (history is kept)", "deleted",
		func(s *Session, id string) error { return s.Store.DeleteHabit(id) })
}

func newHabitDoneCommand(rootOpts *RootOptions) *cobra.Command {
	return lifecycleCommand(rootOpts, "done <habit-id>", "Mark a habit's goal as achieved", "completed",
		func(s *Session, id string) error { return s.Store.CompleteHabit(id) })
}
