// Package pattern compiles immutable policy strings — path fragments,
// extensions, domain suffixes and regex rules — into matcher primitives
// used by the Policy Decision Engine. Every exported function is pure and
// side-effect free; compiled values are safe for concurrent reuse across
// decisions.
package pattern

import (
	"fmt"
	"regexp"
	"runtime"
	"strings"
)

// caseFold reports whether substring matching on this platform should be
// case-insensitive, mirroring the filesystems whose paths are
// case-insensitive by default.
func caseFold() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}

// PathHit reports whether any fragment is a substring of the canonical
// path. Order is irrelevant to the boolean result; MatchedFragment
// additionally reports which configured fragment produced the hit,
// preferring the first one in list order for stable reporting.
func PathHit(canonicalPath string, fragments []string) bool {
	_, ok := MatchedFragment(canonicalPath, fragments)
	return ok
}

// MatchedFragment returns the first configured fragment (in list order)
// that is a substring of canonicalPath, and whether any matched.
func MatchedFragment(canonicalPath string, fragments []string) (string, bool) {
	haystack := canonicalPath
	if caseFold() {
		haystack = strings.ToLower(haystack)
	}

	for _, frag := range fragments {
		needle := frag
		if caseFold() {
			needle = strings.ToLower(needle)
		}

		if needle == "" {
			continue
		}

		if strings.Contains(haystack, needle) {
			return frag, true
		}
	}

	return "", false
}

// ExtHit reports whether the path ends with any of the configured
// extensions (each including its leading dot).
func ExtHit(canonicalPath string, exts []string) bool {
	_, ok := MatchedExtension(canonicalPath, exts)
	return ok
}

// MatchedExtension returns the first configured extension that the path
// ends with, and whether any matched.
func MatchedExtension(canonicalPath string, exts []string) (string, bool) {
	haystack := canonicalPath
	if caseFold() {
		haystack = strings.ToLower(haystack)
	}

	for _, ext := range exts {
		needle := ext
		if caseFold() {
			needle = strings.ToLower(needle)
		}

		if needle == "" {
			continue
		}

		if strings.HasSuffix(haystack, needle) {
			return ext, true
		}
	}

	return "", false
}

// DomainHit reports whether host equals any pattern, or is a subdomain of
// any pattern ("x.example.com" matches "example.com"). The special
// pattern "*" matches every host.
func DomainHit(host string, patterns []string) bool {
	_, ok := MatchedDomain(host, patterns)
	return ok
}

// MatchedDomain returns the first configured domain pattern that matches
// host, and whether any matched.
func MatchedDomain(host string, patterns []string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(host))

	for _, p := range patterns {
		if p == "*" {
			return p, true
		}

		pl := strings.ToLower(strings.TrimSpace(p))
		if pl == "" {
			continue
		}

		if h == pl || strings.HasSuffix(h, "."+pl) {
			return p, true
		}
	}

	return "", false
}

// CompiledRule pairs a compiled regex with the metadata a policy rule
// carries alongside it (severity, human description).
type CompiledRule struct {
	Regex       *regexp.Regexp
	Source      string
	Severity    string
	Description string
}

// CompileRules compiles a list of (pattern, severity, description)
// triples into CompiledRule values in input order. A rule that fails to
// compile is skipped rather than aborting the whole list, since
// configuration is untrusted input and one bad rule shouldn't disable
// the rest of the policy.
func CompileRules(patterns []string, severities []string, descriptions []string) ([]CompiledRule, error) {
	if len(patterns) != len(severities) || len(patterns) != len(descriptions) {
		return nil, fmt.Errorf("pattern: mismatched rule slices (patterns=%d severities=%d descriptions=%d)",
			len(patterns), len(severities), len(descriptions))
	}

	rules := make([]CompiledRule, 0, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}

		rules = append(rules, CompiledRule{
			Regex:       re,
			Source:      p,
			Severity:    severities[i],
			Description: descriptions[i],
		})
	}

	return rules, nil
}

// CompileSimple compiles a flat list of regex strings, skipping any that
// fail to compile.
func CompileSimple(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		out = append(out, re)
	}
	return out
}

// RegexHit returns the first regex (in input order) that matches text,
// or nil if none match.
func RegexHit(text string, regexes []*regexp.Regexp) *regexp.Regexp {
	for _, re := range regexes {
		if re.MatchString(text) {
			return re
		}
	}
	return nil
}

// RegexHitRule is like RegexHit but operates over CompiledRule values and
// returns the first matching rule.
func RegexHitRule(text string, rules []CompiledRule) (CompiledRule, bool) {
	for _, r := range rules {
		if r.Regex.MatchString(text) {
			return r, true
		}
	}
	return CompiledRule{}, false
}
