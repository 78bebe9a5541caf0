package policy

import (
	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
	"github.com/ossguard/nodefw/trust"
)

func decideEnvironment(req access.Request, cfg config.Config, t trust.Decision) access.Verdict {
	if req.Kind == access.EnvEnum {
		// Enumeration itself is always allowed; filtering protected names
		// out of the returned key set is a surface contract the adapter
		// enforces.
		return access.AllowPassed()
	}

	if containsString(cfg.Environment.ProtectedVariables, req.Target) {
		if !t.Trusted || !cfg.Environment.AllowTrustedModulesAccess {
			return access.DenyWithReason(access.ReasonProtectedVariable, access.SeverityHigh)
		}
	}

	return access.AllowPassed()
}
