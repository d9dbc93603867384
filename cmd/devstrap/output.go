package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/devstrap/devstrap/internal/domain/setup"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func statusBadge(s setup.Status) string {
	switch s {
	case setup.StatusSuccess:
		return successStyle.Render("ok")
	case setup.StatusSkipped:
		return skipStyle.Render("skip")
	default:
		return failStyle.Render("FAIL")
	}
}

// printSummary renders the task result log and the installed sets.
func printSummary(w io.Writer, outcome setup.Outcome) {
	sc := outcome.Context

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Setup %s on %s", outcome.Status, sc.Platform.DisplayName())))
	fmt.Fprintln(w, dimStyle.Render("run "+sc.RunID))
	fmt.Fprintln(w)

	for _, r := range sc.Results() {
		line := fmt.Sprintf("  %-6s %-18s %s", statusBadge(r.Status), r.Name, r.Message)
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}

	fmt.Fprintln(w)
	printSet(w, "Tools", sc.InstalledTools())
	printSet(w, "Editors", sc.InstalledEditors())

	if n := sc.FailedCount(); n > 0 {
		fmt.Fprintln(w, failStyle.Render(fmt.Sprintf("%d task(s) failed", n)))
	}
}

func printSet(w io.Writer, label string, ids []string) {
	if len(ids) == 0 {
		fmt.Fprintf(w, "%s: %s\n", label, dimStyle.Render("none"))
		return
	}
	sort.Strings(ids)
	fmt.Fprintf(w, "%s: %s\n", label, strings.Join(ids, ", "))
}
