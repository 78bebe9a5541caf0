// Package source implements the module source scanner: a static screen
// of loaded third-party module source against configured malicious
// patterns.
package source

import (
	"strings"

	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/pattern"
)

// packageRootMarker is the fixed substring used to classify a module URL
// as third-party versus project-local, mirroring the host runtime's own
// dependency-directory convention.
const packageRootMarker = "node_modules/"

// RulePattern is one configured malicious-source rule.
type RulePattern struct {
	Regex       string
	Severity    string
	Description string
}

// Scanner holds compiled malicious-source patterns.
type Scanner struct {
	rules []pattern.CompiledRule
}

// New compiles patterns into a reusable Scanner, skipping any pattern
// that fails to compile.
func New(rules []RulePattern) *Scanner {
	regexes := make([]string, len(rules))
	severities := make([]string, len(rules))
	descriptions := make([]string, len(rules))
	for i, r := range rules {
		regexes[i] = r.Regex
		severities[i] = r.Severity
		descriptions[i] = r.Description
	}

	compiled, err := pattern.CompileRules(regexes, severities, descriptions)
	if err != nil {
		compiled = nil
	}

	return &Scanner{rules: compiled}
}

// IsThirdParty reports whether url names a dependency (versus
// project-local) source file.
func IsThirdParty(url string) bool {
	return strings.Contains(url, packageRootMarker)
}

// Scan classifies a module load and returns the verdict the policy
// engine should return for it:
//   - third-party module, any critical match  -> DENY(malicious_code, critical)
//   - project-local module, any critical match -> WARN
//   - any non-critical match                   -> WARN
//   - no match                                 -> ALLOW(passed)
//
// alertOnly downgrade of a critical third-party DENY into WARN is the
// Policy Engine's uniform post-processing step and is not duplicated
// here.
func (s *Scanner) Scan(url string, sourceBytes []byte) access.Verdict {
	rule, hit := pattern.RegexHitRule(string(sourceBytes), s.rules)
	if !hit {
		return access.AllowPassed()
	}

	observable := access.Observable{MatchedPattern: rule.Description, Package: url}

	if strings.EqualFold(rule.Severity, "critical") && IsThirdParty(url) {
		return access.DenyWithReason(access.ReasonMaliciousCode, access.SeverityCritical).WithObservable(observable)
	}

	severity := access.SeverityLow
	if strings.EqualFold(rule.Severity, "critical") {
		severity = access.SeverityCritical
	}

	return access.Verdict{Decision: access.Warn, Reason: access.ReasonMaliciousCode, Severity: severity, Observable: observable}
}
