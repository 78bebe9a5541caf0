package policy

import (
	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
	"github.com/ossguard/nodefw/scanner/source"
)

// decideModuleLoad runs the Module Source Scanner over a loaded module's
// source, using AccessRequest.Payload as the module's source text by
// convention of the module-load adapter. Its result flows back through
// Decide's uniform alertOnly downgrade
// like every other kind.
func decideModuleLoad(req access.Request, cfg config.Config) access.Verdict {
	scanner := source.New(toRulePatterns(cfg.Modules.MaliciousPatterns))
	return scanner.Scan(req.Target, req.Payload)
}

func toRulePatterns(patterns []config.SourcePattern) []source.RulePattern {
	out := make([]source.RulePattern, len(patterns))
	for i, p := range patterns {
		out[i] = source.RulePattern{Regex: p.Regex, Severity: p.Severity, Description: p.Description}
	}
	return out
}
