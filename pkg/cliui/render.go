package cliui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/papercomputeco/marksort/pkg/reorder"
	"github.com/papercomputeco/marksort/pkg/usage"
)

// maxCellWidth bounds a table cell in terminal cells.
const maxCellWidth = 64

// Cell prepares s for a markdown table cell: pipes are escaped and the text
// is truncated to maxCellWidth terminal cells.
func Cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	if ansi.StringWidth(s) <= maxCellWidth {
		return s
	}
	return ansi.Truncate(s, maxCellWidth, "…")
}

// StatsMarkdown renders usage entries as a markdown table.
func StatsMarkdown(entries []usage.Entry) string {
	if len(entries) == 0 {
		return "_No visits recorded yet._\n"
	}

	var b strings.Builder
	b.WriteString("| # | Visits | Bookmark |\n")
	b.WriteString("|--:|-------:|----------|\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "| %d | %d | %s |\n", i+1, e.Count, Cell(e.Identity))
	}
	return b.String()
}

// ReportMarkdown renders a reorder report. dryRun changes the heading since
// a plan's moves were not applied.
func ReportMarkdown(report *reorder.Report, dryRun bool) string {
	var b strings.Builder

	verb := "Applied"
	if dryRun {
		verb = "Planned"
	}

	fmt.Fprintf(&b, "## %s %d moves across %d folders\n\n", verb, len(report.Moves), report.Folders)

	if len(report.Moves) > 0 {
		b.WriteString("| Node | Parent | From | To |\n")
		b.WriteString("|------|--------|-----:|---:|\n")
		for _, m := range report.Moves {
			fmt.Fprintf(&b, "| %s | %s | %d | %d |\n", Cell(m.ID), Cell(m.ParentID), m.From, m.To)
		}
		b.WriteString("\n")
	}

	if n := len(report.Suppressed); n > 0 {
		fmt.Fprintf(&b, "%d top-level moves suppressed.\n\n", n)
	}

	if len(report.Failed) > 0 {
		b.WriteString("### Failed\n\n")
		for _, f := range report.Failed {
			fmt.Fprintf(&b, "- `%s` to %d: %s\n", f.ID, f.To, f.Error)
		}
		b.WriteString("\n")
	}

	if len(report.Missing) > 0 {
		fmt.Fprintf(&b, "Skipped missing nodes: %s\n", strings.Join(report.Missing, ", "))
	}

	return b.String()
}
