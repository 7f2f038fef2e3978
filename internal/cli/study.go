package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/habitflow/internal/model"
)

// StudyAddOptions holds flags for the study add command.
type StudyAddOptions struct {
	*RootOptions
	Date     string
	Category string
	Topic    string
	Hours    float64
	Notes    string
}

// NewStudyCommand creates the study command group.
func NewStudyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Manage study log entries",
	}
	cmd.AddCommand(newStudyAddCommand(rootOpts))
	cmd.AddCommand(newStudyRmCommand(rootOpts))
	cmd.AddCommand(newStudyListCommand(rootOpts))
	return cmd
}

func newStudyAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StudyAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a study session and earn its XP",
		Args:  cobra.NoArgs,

		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudyAdd(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "session date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&opts.Category, "category", "", "study category")
	cmd.Flags().StringVar(&opts.Topic, "topic", "", "what was studied")
	cmd.Flags().Float64Var(&opts.Hours, "hours", 0, "hours studied (0 < h <= 24)")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func runStudyAdd(cmd *cobra.Command, opts *StudyAddOptions) error {
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

	log, err := sess.Store.AddStudyLog(model.StudyLog{
		Date:     date,
		Category: opts.Category,
		Topic:    opts.Topic,
		Hours:    opts.Hours,
		Notes:    opts.Notes,
	})
	if err != nil {
		return WrapExitError(ExitFailure, "add study log", err)
	}

	xp := sess.Store.Snapshot().Gamification.XP
	return sess.Out.Success(log, func(w io.Writer) {
		fmt.Fprintf(w, "logged %.1fh of %s on %s (id %s, xp %d)\n",
			log.Hours, displayCategory(log.Category), log.Date, log.ID, xp)
	})
}

func newStudyRmCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <log-id>",
		Short: "Delete a study log entry and refund its XP",
		Args:  cobra.ExactArgs(1),

		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := OpenSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.Store.DeleteStudyLog(args[0]); err != nil {
				return WrapExitError(ExitFailure, "delete study log", err)
			}
			sess.Out.Printf("deleted %s\n", args[0])
			return nil
		},
	}
}

func newStudyListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List study log entries, newest first",
		Args:  cobra.NoArgs,

		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := OpenSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer sess.Close()

			logs := sess.Store.Snapshot().StudyLogs
			return sess.Out.Success(logs, func(w io.Writer) {
				if len(logs) == 0 {
					fmt.Fprintln(w, "no study logs")
					return
				}
				for i := len(logs) - 1; i >= 0; i-- {
					log := logs[i]
					fmt.Fprintf(w, "%s  %-10s %5.1fh  %s  (%s)\n",
						log.Date, displayCategory(log.Category), log.Hours, log.Topic, log.ID)
				}
			})
		},
	}
}

func displayCategory(category string) string {
	if category == "" {
		return "General"
	}
	return category
}
