package report

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ossguard/nodefw/config"
	"github.com/ossguard/nodefw/monitor"
)

// Shutdown performs the full end-of-run reporting sequence: build the
// report, write it to reportFile, print the human summary to stderr (if
// risk warrants it), and return the exit code the caller should use,
// overriding currentExitCode only when risk is high.
func Shutdown(stderr *os.File, m *monitor.Monitor, cfg config.Config, sessionID string, currentExitCode int) int {
	snapshot := m.Snapshot()
	doc := BuildWithSession(snapshot, cfg, sessionID)

	WriteFile(cfg.Reporting.ReportFile, doc)
	PrintSummary(stderr, snapshot)

	return ExitCode(snapshot.Risk, currentExitCode)
}

// WatchSignals installs handlers for SIGINT and SIGTERM that run
// Shutdown before re-raising the signal's conventional exit code
// (130 for SIGINT, 143 for SIGTERM), so an interrupted run still leaves
// behind a report rather than losing it silently.
func WatchSignals(stderr *os.File, m *monitor.Monitor, cfg config.Config, sessionID string) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		Shutdown(stderr, m, cfg, sessionID, 0)

		switch sig {
		case syscall.SIGTERM:
			os.Exit(143)
		default:
			os.Exit(130)
		}
	}()
}
