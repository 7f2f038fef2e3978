package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/habitflow/internal/model"
	"github.com/roach88/habitflow/internal/schedule"
)

type todayHabit struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
}

// NewTodayCommand creates the today command.
func NewTodayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "List today's scheduled habits and their completion",
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
			now := time.Now()
			key := model.DateKey(now)

			var list []todayHabit
			for _, h := range schedule.ScheduledOn(doc.Habits, now) {
				list = append(list, todayHabit{
					ID:        h.ID,
					Name:      h.Name,
					Category:  h.Category,
					Completed: doc.HabitHistory.Completed(key, h.ID),
				})
			}

			return sess.Out.Success(list, func(w io.Writer) {
				if len(list) == 0 {
					fmt.Fprintln(w, "no habits scheduled today")
					return
				}
				fmt.Fprintf(w, "%s\n", key)
				for _, h := range list {
					mark := " "
					if h.Completed {
						mark = "x"
					}
					fmt.Fprintf(w, "  [%s] %-12s %s\n", mark, h.ID, h.Name)
				}
			})
		},
	}
}
