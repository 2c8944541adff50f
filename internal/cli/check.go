package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shorts-cli/shorts/internal/shortcut"
)

// newCheckCmd creates the check command.
func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [name]",
		Short: "Check stored shortcuts for shell syntax errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.newStore()
			if err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				if names, err = st.List(cmd.Context()); err != nil {
					return fmt.Errorf("failed to list shortcuts: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, name := range names {
				text, err := st.Read(cmd.Context(), name)
				if err != nil {
					return err
				}
				parsed := shortcut.Parse(text)
				if err := shortcut.Lint(parsed.Command, parsed.Modifiers); err != nil {
					failed++
					fmt.Fprintf(out, "%s %s: %v\n", errorStyle.Render("✗"), name, err)
					continue
				}
				fmt.Fprintf(out, "%s %s\n", successStyle.Render("✓"), name)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d shortcut(s) failed the syntax check", failed, len(names))
			}
			return nil
		},
	}

	return cmd
}
