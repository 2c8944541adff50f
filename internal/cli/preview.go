package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shorts-cli/shorts/internal/shortcut"
)

// newPreviewCmd creates the preview command.
func newPreviewCmd(a *app) *cobra.Command {
	var modifiers ModifierFlags
	var full bool

	cmd := &cobra.Command{
		Use:   "preview -- <command>...",
		Short: "Show the line a shortcut would run, without saving",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := joinCommand(args)
			m := modifiers.Modifiers()
			out := cmd.OutOrStdout()

			if full {
				composer := shortcut.Composer{Interpreter: a.config.Interpreter}
				fmt.Fprint(out, composer.Compose(command, m))
				return nil
			}

			session, _, err := a.newSession(false)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, commandStyle.Render(session.Preview(shortcut.Draft{Command: command, Modifiers: m})))
			if err := shortcut.Lint(command, m); err != nil {
				fmt.Fprintln(out, hintStyle.Render("warning: "+err.Error()))
			}
			return nil
		},
	}

	AddModifierFlags(cmd, &modifiers)
	cmd.Flags().BoolVar(&full, "script", false, "Print the whole script instead of the command line")

	return cmd
}
