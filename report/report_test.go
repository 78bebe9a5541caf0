package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
	"github.com/ossguard/nodefw/monitor"
)

func TestBuildCarriesConfigDigest(t *testing.T) {
	cfg := config.DefaultConfig()
	m := monitor.New(cfg.Behavioral)

	doc := Build(m.Snapshot(), cfg)
	require.Equal(t, cfg.Digest(), doc.ConfigDigest)
	require.Equal(t, "clean", doc.Risk)
}

func TestWriteFileSkipsEmptyPath(t *testing.T) {
	// Must not panic or create anything when no report file is configured.
	WriteFile("", Document{})
}

func TestWriteFileWritesValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "report.json")

	doc := Document{Risk: "high", ConfigDigest: "abc123"}
	WriteFile(path, doc)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Document
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, "high", got.Risk)
	require.Equal(t, "abc123", got.ConfigDigest)
}

func TestExitCodeHighRiskIsNonZero(t *testing.T) {
	require.Equal(t, 1, ExitCode(monitor.RiskHigh, 0))
}

func TestExitCodeOtherRiskPreservesCurrent(t *testing.T) {
	require.Equal(t, 0, ExitCode(monitor.RiskMedium, 0))
	require.Equal(t, 0, ExitCode(monitor.RiskLow, 0))
	require.Equal(t, 0, ExitCode(monitor.RiskClean, 0))
}

func TestPrintSummarySilentWhenClean(t *testing.T) {
	var buf bytes.Buffer
	m := monitor.New(config.DefaultConfig().Behavioral)
	PrintSummary(&buf, m.Snapshot())
	require.Empty(t, buf.String())
}

func TestPrintSummaryReportsHighRisk(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	m := monitor.New(cfg.Behavioral)

	req := access.New(access.FSWrite, "/etc/shadow", "")
	m.Record(req, access.DenyWithReason(access.ReasonBlockedWrite, access.SeverityCritical))

	PrintSummary(&buf, m.Snapshot())
	require.Contains(t, buf.String(), "high risk")
}
