// Package policy implements the Policy Decision Engine: a deterministic,
// pure mapping from (AccessRequest, Config, TrustDecision) to Verdict.
// No function here performs I/O or touches shared state; every decision
// is reproducible byte-for-byte given the same inputs.
package policy

import (
	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
	"github.com/ossguard/nodefw/trust"
)

// Decide evaluates req against cfg and the caller's trust decision, in
// order: disabled check, trusted-module bypass, exception coverage,
// kind-specific rules, then default allow. alertOnly downgrade is
// applied last, uniformly.
func Decide(req access.Request, cfg config.Config, t trust.Decision) access.Verdict {
	v := decide(req, cfg, t)

	if v.Decision == access.Deny && cfg.Mode.AlertOnly {
		return v.Downgraded()
	}

	return v
}

func decide(req access.Request, cfg config.Config, t trust.Decision) access.Verdict {
	if !cfg.Mode.Enabled {
		return access.AllowWithReason(access.ReasonDisabled)
	}

	if t.Trusted && trustBypasses(req.Kind) {
		return access.AllowWithReason(access.ReasonTrustedModule)
	}

	if t.Exception != nil && exceptionCovers(req, t.Exception) {
		return access.AllowWithReason(access.ReasonException)
	}

	switch {
	case req.Kind.IsFilesystem():
		return decideFilesystem(req, cfg)
	case req.Kind.IsNetwork():
		return decideNetwork(req, cfg)
	case req.Kind.IsCommand():
		return decideCommand(req, cfg)
	case req.Kind.IsEnvironment():
		return decideEnvironment(req, cfg, t)
	case req.Kind == access.ModuleLoad:
		return decideModuleLoad(req, cfg)
	default:
		return access.AllowPassed()
	}
}

// trustBypasses reports whether a trusted caller bypasses default blocks
// for this operation kind. Trust bypasses filesystem and network only;
// it never covers commands, environment, or module load.
func trustBypasses(kind access.Kind) bool {
	return kind.IsFilesystem() || kind.IsNetwork()
}

func exceptionCovers(req access.Request, e *trust.ExceptionView) bool {
	switch {
	case req.Kind.IsFilesystem():
		return e.CoversFilesystem(req.Target)
	case req.Kind.IsNetwork():
		return e.CoversNetwork(hostOf(req.Target))
	case req.Kind.IsCommand():
		return e.CoversCommand(req.Target)
	default:
		return false
	}
}
