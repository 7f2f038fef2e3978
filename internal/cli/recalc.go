package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// NewRecalcCommand creates the recalc command.
func NewRecalcCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc",
		Short: "Rebuild XP, level, streak, and badges from history",
		Long: `Rebuild the full gamification bundle from habit history and study
logs. The incremental updates applied on every toggle converge to the
same result; recalc is the recovery path for documents written by older
clients or edited by hand.`,
		Args: cobra.NoArgs,

		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := OpenSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer sess.Close()

			g := sess.Store.RecalculateGamification()
			return sess.Out.Success(g, func(w io.Writer) {
				badges := "none"
				if len(g.Badges) > 0 {
					badges = strings.Join(g.Badges, ", ")
				}
				fmt.Fprintf(w, "level %d, %d xp, streak %d, badges: %s\n",
					g.Level, g.XP, g.Streak, badges)
			})
		},
	}
}
