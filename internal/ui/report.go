package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ossguard/nodefw/monitor"
)

// PrintShutdownSummary writes the human-readable shutdown summary to w
// (normally os.Stderr, via the caller's captured original handle), gated
// on risk >= medium.
func PrintShutdownSummary(w io.Writer, report monitor.Report) {
	if report.Risk != monitor.RiskMedium && report.Risk != monitor.RiskHigh {
		return
	}

	icon := Colors.Yellow("!")
	color := Colors.Yellow
	if report.Risk == monitor.RiskHigh {
		icon = Colors.Red("✗")
		color = Colors.Red
	}

	fmt.Fprintf(w, "%s %s\n", icon, color("firewall: run assessed as %s risk", report.Risk.String()))

	for _, f := range report.ContributingFactors {
		fmt.Fprintf(w, "  %s %s\n", Colors.Dim("-"), Colors.Dim(f))
	}

	if len(report.SuspiciousEvents) > 0 {
		fmt.Fprintln(w)
		renderEventsTable(w, report.SuspiciousEvents)
	}
}

func renderEventsTable(w io.Writer, events []monitor.SuspiciousEvent) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Kind", "Decision", "Reason", "Severity", "Target"})

	for _, e := range events {
		t.AppendRow(table.Row{e.Kind, e.Decision, e.Reason, e.Severity.String(), e.Target})
	}

	t.Render()
}

// StderrWriter returns the process's real stderr handle. Kept as a
// function (rather than a bare os.Stderr reference at call sites) so the
// shutdown reporter can substitute an adapter-captured original handle
// when running under interception.
func StderrWriter() io.Writer {
	return os.Stderr
}
