package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
	"github.com/ossguard/nodefw/monitor"
)

func TestShutdownPreservesExitCodeWhenNotHighRisk(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Reporting.ReportFile = filepath.Join(t.TempDir(), "report.json")

	m := monitor.New(cfg.Behavioral)

	got := Shutdown(os.Stderr, m, cfg, "session-1", 7)
	require.Equal(t, 7, got)

	data, err := os.ReadFile(cfg.Reporting.ReportFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "session-1")
}

func TestShutdownOverridesExitCodeOnHighRisk(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Reporting.ReportFile = filepath.Join(t.TempDir(), "report.json")

	m := monitor.New(cfg.Behavioral)
	req := access.New(access.FSWrite, "/etc/shadow", "")
	m.Record(req, access.DenyWithReason(access.ReasonBlockedWrite, access.SeverityCritical))

	got := Shutdown(os.Stderr, m, cfg, "session-2", 0)
	require.Equal(t, 1, got)
}
