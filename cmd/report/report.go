// Package report implements the firewall CLI's "report" subcommand,
// printing the last structured report written by a prior run without
// re-executing anything.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ossguard/nodefw/config"
	report "github.com/ossguard/nodefw/report"
)

// NewCommand builds the "report" subcommand.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the last recorded shutdown report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("report: failed to load configuration: %w", err)
			}

			path := cfg.Reporting.ReportFile
			if path == "" {
				return fmt.Errorf("report: no reporting.reportFile configured")
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("report: failed to read %s: %w", path, err)
			}

			var doc report.Document
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("report: failed to parse %s: %w", path, err)
			}

			printDocument(cmd, doc)
			return nil
		},
	}
}

func printDocument(cmd *cobra.Command, doc report.Document) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "session:   %s\n", doc.SessionID)
	fmt.Fprintf(out, "generated: %s\n", doc.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintf(out, "risk:      %s\n", doc.Risk)
	fmt.Fprintf(out, "digest:    %s\n", doc.ConfigDigest)

	if len(doc.ContributingFactors) > 0 {
		fmt.Fprintln(out, "contributing factors:")
		for _, f := range doc.ContributingFactors {
			fmt.Fprintf(out, "  - %s\n", f)
		}
	}

	if len(doc.SuspiciousEvents) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Kind", "Decision", "Reason", "Severity", "Target"})
	for _, e := range doc.SuspiciousEvents {
		t.AppendRow(table.Row{e.Kind, e.Decision, e.Reason, e.Severity.String(), e.Target})
	}
	t.Render()
}
