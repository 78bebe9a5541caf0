package policy

import (
	"strings"

	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
	"github.com/ossguard/nodefw/pattern"
)

func decideCommand(req access.Request, cfg config.Config) access.Verdict {
	fullCommand := req.Target
	argv0 := argv0Of(req)

	// Escape hatches apply before any regex check: a
	// recognized first-party package-manager toolchain marker in the
	// caller id, or argv0 on the fixed build-tool list. The event is
	// still recorded by the Behavioral Monitor upstream; the engine only
	// returns the verdict here.
	if packageManagerMarkerHit(req.CallerModule.String()) {
		return access.AllowWithReason(access.ReasonPackageManager)
	}
	if containsString(config.BuildToolAllowlist(), argv0) {
		return access.AllowWithReason(access.ReasonBuildTool)
	}

	strictHit := req.Kind == access.CmdSpawn && config.StrictArgumentHit(argv0, req.Observation.SpawnArgv)

	rule, ruleHit := matchBlockedPattern(fullCommand, cfg.Commands.BlockedPatterns)

	if strictHit || ruleHit {
		severity := access.SeverityCritical
		reasonToFire := strictHit || (ruleHit && rule.Severity == "critical") || !req.Observation.Interactive

		if reasonToFire {
			if ruleHit {
				severity = severityFromString(rule.Severity)
			}
			return access.DenyWithReason(access.ReasonBlockedCommand, severity).
				WithObservable(access.Observable{MatchedPattern: rule.Description})
		}
	}

	if len(cfg.Commands.AllowedCommands) > 0 && !containsString(cfg.Commands.AllowedCommands, argv0) {
		return access.DenyWithReason(access.ReasonBlockedCommand, access.SeverityMedium)
	}

	return access.AllowPassed()
}

func argv0Of(req access.Request) string {
	if len(req.Observation.SpawnArgv) > 0 {
		return req.Observation.SpawnArgv[0]
	}
	fields := strings.Fields(req.Target)
	if len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func packageManagerMarkerHit(caller string) bool {
	if caller == "" {
		return false
	}
	for _, marker := range config.PackageManagerToolchainMarkers() {
		if strings.Contains(caller, marker) {
			return true
		}
	}
	return false
}

func matchBlockedPattern(fullCommand string, patterns []config.BlockedCommandPattern) (pattern.CompiledRule, bool) {
	regexes := make([]string, len(patterns))
	severities := make([]string, len(patterns))
	descriptions := make([]string, len(patterns))
	for i, p := range patterns {
		regexes[i] = p.Regex
		severities[i] = p.Severity
		descriptions[i] = p.Description
	}

	rules, err := pattern.CompileRules(regexes, severities, descriptions)
	if err != nil {
		return pattern.CompiledRule{}, false
	}

	return pattern.RegexHitRule(fullCommand, rules)
}

func severityFromString(s string) access.Severity {
	switch strings.ToLower(s) {
	case "critical":
		return access.SeverityCritical
	case "high":
		return access.SeverityHigh
	case "medium":
		return access.SeverityMedium
	case "low":
		return access.SeverityLow
	default:
		return access.SeverityInfo
	}
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
