package cli

import (
	"github.com/spf13/cobra"
)

// NewSignOutCommand creates the signout command.
func NewSignOutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "End the user's session, flushing any recovered state",
		Long: `End the user's session. Starting the session replays any stashed
snapshot left by an earlier crash, so a signout after an unclean exit is
the cheapest way to make sure everything reached the database.`,
		Args: cobra.NoArgs,

		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := OpenSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer sess.Close()

			sess.Engine.SignOut()
			sess.Out.Printf("signed out %s\n", rootOpts.User)
			return nil
		},
	}
}
