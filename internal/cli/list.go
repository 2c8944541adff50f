package cli

import (
	"fmt"
	"sort"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/shorts-cli/shorts/internal/shortcut"
)

// newListCmd creates the list command.
func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [pattern]",
		Short: "List shortcuts",
		Long: `List all shortcuts in the shortcut directory.

An optional pattern filters names with fuzzy matching, best match first.`,
		Aliases: []string{"ls"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.newStore()
			if err != nil {
				return err
			}

			names, err := st.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list shortcuts: %w", err)
			}
			if len(args) == 1 {
				names = filterNames(args[0], names)
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "No shortcuts found")
				return nil
			}

			width := 0
			for _, name := range names {
				width = max(width, len(name))
			}
			for _, name := range names {
				line := ""
				if text, err := st.Read(cmd.Context(), name); err != nil {
					a.logger.Debug("failed to read shortcut", "name", name, "err", err)
				} else {
					line = shortcut.Parse(text).Line
				}
				printEntry(out, name, line, width)
			}
			return nil
		},
	}

	return cmd
}

// filterNames returns the names matching pattern, best match first.
func filterNames(pattern string, names []string) []string {
	if pattern == "" {
		return names
	}

	matches := fuzzy.Find(pattern, names)
	sort.Sort(matches)

	results := make([]string, len(matches))
	for i, m := range matches {
		results[i] = names[m.Index]
	}
	return results
}
