// Package report implements the shutdown reporter: it turns a behavioral
// monitor snapshot into a structured JSON report file, a human-readable
// stderr summary, and process exit-code steering. Reporting failures are
// swallowed: the exit path must never throw because a report could not
// be written.
package report

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/ossguard/nodefw/config"
	"github.com/ossguard/nodefw/internal/ui"
	"github.com/ossguard/nodefw/monitor"
)

// Document is the structured, serializable shutdown report written to
// reporting.reportFile.
type Document struct {
	GeneratedAt         time.Time                 `json:"generated_at"`
	SessionID           string                    `json:"session_id,omitempty"`
	Risk                string                    `json:"risk"`
	ContributingFactors []string                  `json:"contributing_factors,omitempty"`
	Counters            monitor.Counters          `json:"counters"`
	SuspiciousEvents    []monitor.SuspiciousEvent `json:"suspicious_events,omitempty"`
	ConfigDigest        string                    `json:"config_digest"`
}

// Build assembles a Document from a monitor snapshot and the
// configuration digest it ran under.
func Build(snapshot monitor.Report, cfg config.Config) Document {
	return Document{
		GeneratedAt:         time.Now().UTC(),
		Risk:                snapshot.Risk.String(),
		ContributingFactors: snapshot.ContributingFactors,
		Counters:            snapshot.Counters,
		SuspiciousEvents:    snapshot.SuspiciousEvents,
		ConfigDigest:        cfg.Digest(),
	}
}

// BuildWithSession is Build plus a session identifier, used by the CLI
// to correlate a report with the audit log records it was generated
// alongside.
func BuildWithSession(snapshot monitor.Report, cfg config.Config, sessionID string) Document {
	doc := Build(snapshot, cfg)
	doc.SessionID = sessionID
	return doc
}

// WriteFile writes doc as indented JSON to path, silently doing nothing
// when path is empty and swallowing all I/O errors.
func WriteFile(path string, doc Document) {
	if path == "" {
		return
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return
	}

	_ = os.WriteFile(path, data, 0o644)
}

// PrintSummary writes the human-readable shutdown summary to w (normally
// a firewall context's captured original stderr handle).
func PrintSummary(w io.Writer, snapshot monitor.Report) {
	ui.PrintShutdownSummary(w, snapshot)
}

// ExitCode steers the process exit code from the assessed risk: high
// risk forces a non-zero exit. Any other risk leaves the caller's own
// exit code (normally 0) untouched.
func ExitCode(risk monitor.Risk, currentExitCode int) int {
	if risk == monitor.RiskHigh {
		return 1
	}
	return currentExitCode
}
