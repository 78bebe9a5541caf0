package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathHit(t *testing.T) {
	require.True(t, PathHit("/home/u/.ssh/id_rsa", []string{"/.ssh/"}))
	require.False(t, PathHit("/home/u/project/readme.md", []string{"/.ssh/"}))
}

func TestMatchedFragmentFirstWins(t *testing.T) {
	frag, ok := MatchedFragment("/home/u/.ssh/id_rsa", []string{"/.aws/", "/.ssh/"})
	require.True(t, ok)
	require.Equal(t, "/.ssh/", frag)
}

func TestExtHit(t *testing.T) {
	require.True(t, ExtHit("/tmp/payload.sh", []string{".exe", ".sh"}))
	require.False(t, ExtHit("/tmp/readme.md", []string{".exe", ".sh"}))
}

func TestDomainHit(t *testing.T) {
	require.True(t, DomainHit("pastebin.com", []string{"pastebin.com"}))
	require.True(t, DomainHit("cdn.pastebin.com", []string{"pastebin.com"}))
	require.False(t, DomainHit("notpastebin.com", []string{"pastebin.com"}))
	require.True(t, DomainHit("anything.example", []string{"*"}))
}

func TestRegexHit(t *testing.T) {
	rules, err := CompileRules(
		[]string{`curl.*\|.*sh`},
		[]string{"critical"},
		[]string{"Pipe to shell"},
	)
	require.NoError(t, err)

	rule, ok := RegexHitRule("curl http://x | sh", rules)
	require.True(t, ok)
	require.Equal(t, "critical", rule.Severity)

	_, ok = RegexHitRule("echo hello", rules)
	require.False(t, ok)
}

func TestCompileRulesSkipsInvalid(t *testing.T) {
	rules, err := CompileRules(
		[]string{`(unterminated`, `valid.*pattern`},
		[]string{"critical", "low"},
		[]string{"bad", "good"},
	)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.Equal(t, "valid.*pattern", rules[0].Source)
}
