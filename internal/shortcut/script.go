package shortcut

import (
	"strings"
)

const (
	// DefaultInterpreter is the interpreter directive written to new shortcuts.
	DefaultInterpreter = "/bin/bash"

	// ElevationPrefix requests superuser execution.
	ElevationPrefix = "sudo "
	// BackgroundPrefix detaches the command from the controlling terminal.
	BackgroundPrefix = "nohup "
	// BackgroundSuffix runs the command asynchronously.
	BackgroundSuffix = " &"
	// ForwardToken forwards all shortcut arguments to the command.
	ForwardToken = "$@"

	directiveMarker = "#!"
)

// header is written between the interpreter directive and the command line.
var header = []string{
	"# Shortcut created with shorts -- command-line shortcut manager",
	"# Feel free to copy, modify, and distribute shortcuts created with shorts",
	"# This shortcut comes with no guarantees or warranties, use at your own risk",
	"# shortcut command is below this line",
}

// Composer builds shortcut script text.
type Composer struct {
	// Interpreter is the path written after "#!". Empty means DefaultInterpreter.
	Interpreter string
}

// Compose builds a script with the default interpreter.
func Compose(command string, m Modifiers) string {
	return Composer{}.Compose(command, m)
}

// Compose returns the full script text for command wrapped with m.
func (c Composer) Compose(command string, m Modifiers) string {
	interpreter := c.Interpreter
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}

	var b strings.Builder
	b.WriteString(directiveMarker + interpreter + "\n")
	for _, line := range header {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(CommandLine(command, m))
	b.WriteString("\n")
	return b.String()
}

// CommandLine returns the single executable line for command wrapped with m.
func CommandLine(command string, m Modifiers) string {
	var b strings.Builder
	if m.Background {
		b.WriteString(BackgroundPrefix)
	}
	if m.Elevated && !strings.Contains(command, ElevationPrefix) {
		b.WriteString(ElevationPrefix)
	}
	b.WriteString(command)
	if m.OpenEnded {
		b.WriteString(" " + ForwardToken)
	}
	if m.Background {
		b.WriteString(BackgroundSuffix)
	}
	return b.String()
}

// Parsed is what Parse recovers from a script.
type Parsed struct {
	// Line is the command line exactly as found in the script.
	Line string
	// Command is Line without the tokens Compose synthesizes.
	Command   string
	Modifiers Modifiers
}

// Draft returns a Draft named name from the parsed script.
func (p Parsed) Draft(name string) Draft {
	return Draft{Name: name, Command: p.Command, Modifiers: p.Modifiers}
}

// Parse recovers the command line and modifiers from script text.
//
// Modifiers are detected by substring anywhere in the line, so a command
// that literally contains "sudo ", "nohup " or "$@" reads back with that
// modifier set. Existing shortcut files depend on this.
func Parse(text string) Parsed {
	line := commandLine(text)

	m := Modifiers{
		Elevated:   strings.Contains(line, ElevationPrefix),
		Background: strings.Contains(line, BackgroundPrefix) || strings.HasSuffix(line, BackgroundSuffix),
		OpenEnded:  strings.Contains(line, ForwardToken),
	}

	return Parsed{
		Line:      line,
		Command:   strip(line, m),
		Modifiers: m,
	}
}

// commandLine returns the last non-blank, non-comment line. An interpreter
// directive is used only when nothing else is left, minus its marker token.
func commandLine(text string) string {
	lines := strings.Split(text, "\n")
	directive := ""
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		switch {
		case line == "":
		case strings.HasPrefix(line, directiveMarker):
			directive = line
		case strings.HasPrefix(line, "#"):
		default:
			return line
		}
	}
	if directive == "" {
		return ""
	}
	_, rest, _ := strings.Cut(directive, " ")
	return strings.TrimSpace(rest)
}

// strip removes the tokens Compose adds, only from the positions it adds them.
func strip(line string, m Modifiers) string {
	cmd := line
	if m.Background {
		cmd = strings.TrimPrefix(cmd, BackgroundPrefix)
		cmd = strings.TrimSuffix(cmd, BackgroundSuffix)
	}
	if m.OpenEnded {
		for _, tok := range []string{` "` + ForwardToken + `"`, " " + ForwardToken} {
			if trimmed, ok := strings.CutSuffix(cmd, tok); ok {
				cmd = trimmed
				break
			}
		}
	}
	if m.Elevated {
		cmd = strings.TrimPrefix(cmd, ElevationPrefix)
	}
	return strings.TrimSpace(cmd)
}
