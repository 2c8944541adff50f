package cli

import (
	"github.com/spf13/cobra"
)

// newShowCmd creates the show command.
func newShowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a shortcut's command and modifiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, st, err := a.newSession(false)
			if err != nil {
				return err
			}

			if _, err := session.Load(cmd.Context(), args[0]); err != nil {
				return err
			}
			printShortcut(cmd.OutOrStdout(), st.Path(args[0]), session.Draft())
			return nil
		},
	}

	return cmd
}
