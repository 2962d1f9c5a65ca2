package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/docsift/docsift/report"
	"github.com/docsift/docsift/validate"
)

var (
	// titleStyle for section headers
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	// okStyle for matched counts
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	// warnStyle for missing and out-of-order counts
	warnStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("214"))

	// boxStyle for the validation summary box
	boxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("39")).
		Padding(0, 1)
)

// printValidation renders the validation summary box.
func printValidation(w io.Writer, r validate.Report) {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Validation") + "\n")
	b.WriteString(fmt.Sprintf("%s %d\n", dimStyle.Render("ToC sections:"), r.TOCSectionCount))
	b.WriteString(fmt.Sprintf("%s %d\n", dimStyle.Render("Parsed sections:"), r.ParsedSectionCount))
	b.WriteString(fmt.Sprintf("%s %s\n", dimStyle.Render("Matched:"), okStyle.Render(fmt.Sprint(len(r.MatchedSections)))))
	b.WriteString(fmt.Sprintf("%s %s\n", dimStyle.Render("Missing:"), warnStyle.Render(fmt.Sprint(len(r.MissingSections)))))
	b.WriteString(fmt.Sprintf("%s %s\n", dimStyle.Render("Extra:"), warnStyle.Render(fmt.Sprint(len(r.ExtraSections)))))
	b.WriteString(fmt.Sprintf("%s %s", dimStyle.Render("Out of order:"), warnStyle.Render(fmt.Sprint(len(r.OutOfOrderSections)))))
	fmt.Fprintln(w, boxStyle.Render(b.String()))
}

// printFinal renders the final report summary and recommendations.
func printFinal(w io.Writer, f report.Final) {
	fmt.Fprintln(w, titleStyle.Render(f.Summary))
	if len(f.Discrepancies) > 0 {
		fmt.Fprintf(w, "%s %d\n", dimStyle.Render("Discrepancies:"), len(f.Discrepancies))
	}
	for _, rec := range f.Recommendations {
		fmt.Fprintf(w, "  %s %s\n", warnStyle.Render("•"), rec)
	}
}
