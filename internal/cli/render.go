package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/shorts-cli/shorts/internal/shortcut"
)

var (
	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")).
			Italic(true)
)

// printStatus prints a status line returned by the session.
func printStatus(w io.Writer, status string) {
	fmt.Fprintln(w, successStyle.Render("✓ "+status))
}

// printEntry prints one shortcut in list form.
func printEntry(w io.Writer, name, line string, width int) {
	fmt.Fprintf(w, "  %s  %s\n", nameStyle.Width(width).Render(name), commandStyle.Render(line))
}

// printShortcut prints the details of one shortcut.
func printShortcut(w io.Writer, path string, d shortcut.Draft) {
	fmt.Fprintln(w, nameStyle.Render(d.Name))
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("path:     "), path)
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("command:  "), d.Command)
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("modifiers:"), d.Modifiers)
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("runs:     "), commandStyle.Render(shortcut.CommandLine(d.Command, d.Modifiers)))
}
