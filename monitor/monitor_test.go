package monitor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
)

func newTestMonitor() *Monitor {
	return New(config.DefaultConfig().Behavioral)
}

func TestCleanWithNoEvents(t *testing.T) {
	m := newTestMonitor()
	risk, factors := m.Assess()
	require.Equal(t, RiskClean, risk)
	require.Empty(t, factors)
}

func TestCriticalDenyEscalatesToHigh(t *testing.T) {
	m := newTestMonitor()
	req := access.New(access.FSWrite, "/etc/passwd", "")
	v := access.DenyWithReason(access.ReasonBlockedWrite, access.SeverityCritical)
	m.Record(req, v)

	risk, factors := m.Assess()
	require.Equal(t, RiskHigh, risk)
	require.NotEmpty(t, factors)
}

func TestCredentialDetectionEscalatesToHigh(t *testing.T) {
	m := newTestMonitor()
	req := access.New(access.NetSend, "evil.com:443", "")
	v := access.DenyWithReason(access.ReasonCredentialPattern, access.SeverityCritical)
	m.Record(req, v)

	risk, _ := m.Assess()
	require.Equal(t, RiskHigh, risk)
}

// Invariant 9: adding an event never decreases the assessed risk.
func TestRiskMonotonicity(t *testing.T) {
	m := newTestMonitor()

	risk0, _ := m.Assess()

	m.Record(access.New(access.NetConnect, "example.com:443", ""), access.DenyWithReason(access.ReasonBlockedDomain, access.SeverityMedium))
	risk1, _ := m.Assess()
	require.GreaterOrEqual(t, int(risk1), int(risk0))

	m.Record(access.New(access.FSWrite, "/etc/x", ""), access.DenyWithReason(access.ReasonBlockedWrite, access.SeverityCritical))
	risk2, _ := m.Assess()
	require.GreaterOrEqual(t, int(risk2), int(risk1))
}

// Invariant 10: the structured report's counters equal the total
// recorded events per kind.
func TestReportIntegrity(t *testing.T) {
	m := newTestMonitor()

	for i := 0; i < 3; i++ {
		m.Record(access.New(access.FSRead, "/tmp/a", ""), access.AllowPassed())
	}
	for i := 0; i < 2; i++ {
		m.Record(access.New(access.NetConnect, "example.com:443", ""), access.AllowPassed())
	}

	report := m.Snapshot()
	require.Equal(t, 3, report.Counters.FileReads)
	require.Equal(t, 2, report.Counters.NetworkRequests)
}

func TestRingBufferBounded(t *testing.T) {
	m := newTestMonitor()
	for i := 0; i < ringSize+10; i++ {
		m.Record(access.New(access.NetConnect, "example.com:443", ""), access.AllowPassed())
	}

	report := m.Snapshot()
	require.Len(t, report.NetworkRing, ringSize)
}

func TestMonitorConcurrentRecord(t *testing.T) {
	m := newTestMonitor()
	done := make(chan struct{})

	for i := 0; i < 50; i++ {
		go func() {
			m.Record(access.New(access.FSRead, "/tmp/x", ""), access.AllowPassed())
			done <- struct{}{}
		}()
	}

	for i := 0; i < 50; i++ {
		<-done
	}

	report := m.Snapshot()
	require.Equal(t, 50, report.Counters.FileReads)
}
