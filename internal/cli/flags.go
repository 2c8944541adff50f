package cli

import (
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/shorts-cli/shorts/internal/shortcut"
)

// ModifierFlags holds the execution modifier flags for commands.
type ModifierFlags struct {
	Sudo       bool
	Background bool
	OpenEnded  bool
}

// AddModifierFlags adds --sudo, --background and --open-ended to a command.
func AddModifierFlags(cmd *cobra.Command, flags *ModifierFlags) {
	cmd.Flags().BoolVarP(&flags.Sudo, "sudo", "s", false, "Run the command as superuser")
	cmd.Flags().BoolVarP(&flags.Background, "background", "b", false, "Run the command detached in the background")
	cmd.Flags().BoolVarP(&flags.OpenEnded, "open-ended", "o", false, "Pass the shortcut's arguments on to the command")
}

// Modifiers returns the modifiers selected by the flags.
func (f *ModifierFlags) Modifiers() shortcut.Modifiers {
	return shortcut.Modifiers{
		Elevated:   f.Sudo,
		Background: f.Background,
		OpenEnded:  f.OpenEnded,
	}
}

// joinCommand turns positional arguments back into a command line.
// A single argument is taken verbatim so pipes and quoting survive;
// several are quoted as needed to keep their boundaries.
func joinCommand(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return shellquote.Join(args...)
}
