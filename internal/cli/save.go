package cli

import (
	"github.com/spf13/cobra"

	"github.com/shorts-cli/shorts/internal/shortcut"
)

// newSaveCmd creates the save command.
func newSaveCmd(a *app) *cobra.Command {
	var modifiers ModifierFlags
	var yes bool

	cmd := &cobra.Command{
		Use:   "save <name> -- <command>...",
		Short: "Create or overwrite a shortcut",
		Long: `Save a command as an executable shortcut.

Put the command after "--" so its flags are not read by shorts. A single
quoted argument is kept verbatim, e.g.

  shorts save logs -- 'journalctl -f | grep error'

Overwriting an existing shortcut asks for confirmation unless --yes is given.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := a.newSession(yes)
			if err != nil {
				return err
			}

			status, err := session.Save(cmd.Context(), shortcut.Draft{
				Name:      args[0],
				Command:   joinCommand(args[1:]),
				Modifiers: modifiers.Modifiers(),
			})
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), status)
			return nil
		},
	}

	AddModifierFlags(cmd, &modifiers)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Overwrite without asking")

	return cmd
}
