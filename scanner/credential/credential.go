// Package credential implements the credential scanner: pattern matching
// over outgoing network payload bytes, capped and excerpt-bounded so that
// raw secret bytes never propagate past this package.
package credential

import "github.com/ossguard/nodefw/pattern"

// DefaultInspectionCap is the default prefix length inspected per
// payload.
const DefaultInspectionCap = 64 * 1024

// Match is the result of a positive scan. Excerpt carries only the
// matched fragment plus up to 16 bytes of surrounding context — never
// the full payload — and callers must still avoid persisting Excerpt to
// any audit sink; only PatternID and Offset are safe to log verbatim.
type Match struct {
	PatternID string
	Offset    int
	Excerpt   string
}

// Scanner holds compiled credential patterns, built once from
// config.Network.CredentialPatterns at snapshot load time.
type Scanner struct {
	rules []pattern.CompiledRule
}

// New compiles patterns into a reusable Scanner. Patterns that fail to
// compile are skipped; network.credentialPatterns is untrusted
// configuration and a single bad entry must not disable the rest.
func New(patterns []string) *Scanner {
	rules := make([]pattern.CompiledRule, 0, len(patterns))
	for _, p := range patterns {
		compiled := pattern.CompileSimple([]string{p})
		if len(compiled) == 0 {
			continue
		}
		rules = append(rules, pattern.CompiledRule{Regex: compiled[0], Source: p})
	}
	return &Scanner{rules: rules}
}

// Scan inspects payload (capped to cap bytes, or DefaultInspectionCap
// when cap <= 0) against the scanner's compiled patterns as UTF-8. The
// first matching rule, in configured order, wins.
func (s *Scanner) Scan(payload []byte, cap int) (Match, bool) {
	if cap <= 0 {
		cap = DefaultInspectionCap
	}
	if len(payload) > cap {
		payload = payload[:cap]
	}

	text := string(payload)

	for _, r := range s.rules {
		loc := r.Regex.FindStringIndex(text)
		if loc == nil {
			continue
		}

		start := loc[0] - 16
		if start < 0 {
			start = 0
		}
		end := loc[1] + 16
		if end > len(text) {
			end = len(text)
		}

		return Match{
			PatternID: r.Source,
			Offset:    loc[0],
			Excerpt:   text[start:end],
		}, true
	}

	return Match{}, false
}
