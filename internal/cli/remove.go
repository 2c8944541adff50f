package cli

import (
	"github.com/spf13/cobra"
)

// newRemoveCmd creates the remove command.
func newRemoveCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a shortcut",
		Long: `Delete a shortcut from the shortcut directory.

Deleting never asks for elevated privileges. If the directory is protected,
remove the file as root instead.`,
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := a.newSession(yes)
			if err != nil {
				return err
			}

			status, err := session.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), status)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")

	return cmd
}
