package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Egor213/LogiScan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// printSummary writes the short end-of-run summary for the operator.
// Styling is dropped automatically when w is not a terminal.
func printSummary(w io.Writer, a domain.Analysis) {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	value := r.NewStyle().Bold(true)
	alert := r.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	count := func(n int, warn bool) string {
		if warn && n > 0 {
			return alert.Render(strconv.Itoa(n))
		}
		return value.Render(strconv.Itoa(n))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, title.Render("Analysis Complete!"))
	fmt.Fprintf(w, "Total Requests: %s\n", count(a.Stats.TotalRequests, false))
	fmt.Fprintf(w, "Security Incidents: %s\n", count(len(a.Security.Incidents), true))
	fmt.Fprintf(w, "Errors Found: %s\n", count(len(a.Stats.Errors), true))
}
