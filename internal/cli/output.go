package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dgallion1/torgen/internal/validate"
)

var (
	// okStyle for passing validation
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")).
		Bold(true)

	// errorStyle for issue kinds
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	// dimStyle for paths and metadata
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// headerStyle for section listings
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)
)

// FormatResult prints a validation result, one line per issue.
func FormatResult(w io.Writer, res validate.Result) {
	if res.OK() {
		fmt.Fprintln(w, okStyle.Render("✓ document is valid"))
		return
	}
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("✗ %d issue(s)", len(res.Issues))))
	for _, issue := range res.Issues {
		path := issue.Path
		if path == "" {
			path = "(root)"
		}
		fmt.Fprintf(w, "  %s %s %s\n",
			errorStyle.Render(string(issue.Kind)),
			dimStyle.Render(path),
			issue.Message,
		)
	}
}
