package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
	"github.com/ossguard/nodefw/trust"
)

// Blocked domain under the default block mode still denies.
func TestNetworkModeBlockDeniesBlockedDomain(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Network.BlockedDomains = []string{"pastebin.com"}
	cfg.Network.Mode = config.NetworkModeBlock

	req := access.New(access.NetConnect, "pastebin.com:443", "")
	v := Decide(req, cfg, trust.Decision{})

	require.Equal(t, access.Deny, v.Decision)
	require.Equal(t, access.ReasonBlockedDomain, v.Reason)
}

// Monitor mode downgrades what would have been a network DENY to WARN,
// preserving the reason and severity the block-mode decision carried.
func TestNetworkModeMonitorDowngradesDenyToWarn(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Network.BlockedDomains = []string{"pastebin.com"}
	cfg.Network.Mode = config.NetworkModeMonitor

	req := access.New(access.NetConnect, "pastebin.com:443", "")
	v := Decide(req, cfg, trust.Decision{})

	require.Equal(t, access.Warn, v.Decision)
	require.Equal(t, access.ReasonBlockedDomain, v.Reason)
	require.Equal(t, access.SeverityHigh, v.Severity)
}

// Monitor mode leaves an ALLOW verdict untouched.
func TestNetworkModeMonitorDoesNotAffectAllow(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Network.Mode = config.NetworkModeMonitor

	req := access.New(access.NetConnect, "example.com:443", "")
	v := Decide(req, cfg, trust.Decision{})

	require.Equal(t, access.Allow, v.Decision)
}

// Monitor mode is scoped to network-kind requests only; a filesystem
// DENY is unaffected by the network-only observe-and-allow setting.
func TestNetworkModeMonitorDoesNotAffectOtherKinds(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Filesystem.BlockedReadPaths = []string{"/.ssh/"}
	cfg.Network.Mode = config.NetworkModeMonitor

	req := access.New(access.FSRead, "/home/u/.ssh/id_rsa", "")
	v := Decide(req, cfg, trust.Decision{})

	require.Equal(t, access.Deny, v.Decision)
	require.Equal(t, access.ReasonBlockedRead, v.Reason)
}
