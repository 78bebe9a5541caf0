package intercept

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
)

func baseConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Filesystem.BlockedReadPaths = nil
	cfg.Filesystem.BlockedWritePaths = nil
	cfg.Filesystem.BlockedExtensions = nil
	cfg.Network.BlockedDomains = nil
	cfg.Network.SuspiciousPorts = nil
	cfg.Network.CredentialPatterns = nil
	cfg.Commands.BlockedPatterns = nil
	cfg.Environment.ProtectedVariables = nil
	return cfg
}

func TestEvaluateDefaultAllow(t *testing.T) {
	ctx := New(baseConfig(t))
	v := ctx.Evaluate(access.New(access.FSRead, "/tmp/file.txt", ""))
	require.Equal(t, access.Allow, v.Decision)
}

func TestEvaluateDeniesBlockedRead(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Filesystem.BlockedReadPaths = []string{"/etc/passwd"}

	ctx := New(cfg)
	v := ctx.Evaluate(access.New(access.FSRead, "/etc/passwd", ""))
	require.Equal(t, access.Deny, v.Decision)
	require.Equal(t, access.ReasonBlockedRead, v.Reason)
}

func TestEvaluateAlertOnlyDowngradesDeny(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Mode.AlertOnly = true
	cfg.Filesystem.BlockedReadPaths = []string{"/etc/passwd"}

	ctx := New(cfg)
	v := ctx.Evaluate(access.New(access.FSRead, "/etc/passwd", ""))
	require.Equal(t, access.Warn, v.Decision)
}

func TestEvaluateRecordsOnMonitor(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Filesystem.BlockedReadPaths = []string{"/etc/passwd"}

	ctx := New(cfg)
	ctx.Evaluate(access.New(access.FSRead, "/etc/passwd", ""))

	snapshot := ctx.Monitor().Snapshot()
	require.NotEqual(t, 0, snapshot.Counters.FileReads)
	require.NotEmpty(t, snapshot.SuspiciousEvents)
}

func TestEvaluateStrictReadyModeDeniesWhenNotReady(t *testing.T) {
	ctx := New(baseConfig(t), WithReadyMode(ReadyModeStrict))
	ctx.ready = false

	v := ctx.Evaluate(access.New(access.FSRead, "/tmp/file.txt", ""))
	require.Equal(t, access.Deny, v.Decision)
	require.Equal(t, access.ReasonFirewallNotReady, v.Reason)
}

func TestEvaluatePermissiveReadyModeWarnsWhenNotReady(t *testing.T) {
	ctx := New(baseConfig(t), WithReadyMode(ReadyModePermissive))
	ctx.ready = false

	v := ctx.Evaluate(access.New(access.FSRead, "/tmp/file.txt", ""))
	require.Equal(t, access.Warn, v.Decision)
}

func TestReloadPublishesNewConfig(t *testing.T) {
	ctx := New(baseConfig(t))

	updated := baseConfig(t)
	updated.Mode.StrictMode = true
	ctx.Reload(updated)

	require.True(t, ctx.Config().Mode.StrictMode)
}

func TestSessionIDIsStableAndUnique(t *testing.T) {
	a := New(baseConfig(t))
	b := New(baseConfig(t))

	require.NotEmpty(t, a.SessionID())
	require.NotEqual(t, a.SessionID(), b.SessionID())
	require.Equal(t, a.SessionID(), a.SessionID())
}
