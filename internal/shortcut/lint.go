package shortcut

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Lint parses the composed command line with the bash grammar and
// reports syntax errors. It never runs anything.
func Lint(command string, m Modifiers) error {
	line := CommandLine(command, m)
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	if _, err := parser.Parse(strings.NewReader(line), "command"); err != nil {
		return fmt.Errorf("command syntax error: %w", err)
	}
	return nil
}
