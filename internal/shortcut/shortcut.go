// Package shortcut holds the shortcut domain: names, drafts, and the script
// text that wraps a command with its execution modifiers.
package shortcut

import "strings"

// Modifiers are the execution options wrapped around a shortcut command.
// All three are independent.
type Modifiers struct {
	// Elevated runs the command through sudo.
	Elevated bool
	// Background detaches the command with nohup and &.
	Background bool
	// OpenEnded forwards the shortcut's arguments to the command.
	OpenEnded bool
}

// String lists the enabled modifiers, e.g. "sudo,background".
func (m Modifiers) String() string {
	var parts []string
	if m.Elevated {
		parts = append(parts, "sudo")
	}
	if m.Background {
		parts = append(parts, "background")
	}
	if m.OpenEnded {
		parts = append(parts, "open-ended")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// Draft is the editable form of a shortcut.
// Command never includes the synthesized modifier tokens.
type Draft struct {
	Name      string
	Command   string
	Modifiers Modifiers
}

// Normalize returns a copy of d with surrounding whitespace trimmed.
func (d Draft) Normalize() Draft {
	d.Name = strings.TrimSpace(d.Name)
	d.Command = strings.TrimSpace(d.Command)
	return d
}
