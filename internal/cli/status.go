package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

type statusView struct {
	User   string   `json:"user"`
	Level  int      `json:"level"`
	XP     int      `json:"xp"`
	Streak int      `json:"streak"`
	Badges []string `json:"badges"`
	Habits int      `json:"habits"`
	Logs   int      `json:"studyLogs"`
	Sync   string   `json:"sync"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current progress summary",
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
			view := statusView{
				User:   rootOpts.User,
				Level:  doc.Gamification.Level,
				XP:     doc.Gamification.XP,
				Streak: doc.Gamification.Streak,
				Badges: doc.Gamification.Badges,
				Habits: len(doc.Habits),
				Logs:   len(doc.StudyLogs),
				Sync:   sess.Engine.State().String(),
			}
			return sess.Out.Success(view, func(w io.Writer) {
				fmt.Fprintf(w, "user:    %s\n", view.User)
				fmt.Fprintf(w, "level:   %d (%d xp)\n", view.Level, view.XP)
				fmt.Fprintf(w, "streak:  %d day(s)\n", view.Streak)
				badges := "none"
				if len(view.Badges) > 0 {
					badges = strings.Join(view.Badges, ", ")
				}
				fmt.Fprintf(w, "badges:  %s\n", badges)
				fmt.Fprintf(w, "habits:  %d active\n", view.Habits)
				fmt.Fprintf(w, "logs:    %d study entries\n", view.Logs)
				fmt.Fprintf(w, "sync:    %s\n", view.Sync)
			})
		},
	}
}
