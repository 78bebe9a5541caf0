package trust

import (
	"strings"

	"github.com/ossguard/nodefw/pattern"
)

// CoversFilesystem reports whether the exception's allow-list covers the
// canonical path via prefix matching.
func (e *ExceptionView) CoversFilesystem(canonicalPath string) bool {
	if e == nil {
		return false
	}

	for _, p := range e.AllowFilesystem {
		if strings.HasPrefix(canonicalPath, p) {
			return true
		}
	}

	return false
}

// CoversNetwork reports whether the exception's allow-list covers host via
// domain matching.
func (e *ExceptionView) CoversNetwork(host string) bool {
	if e == nil {
		return false
	}

	return pattern.DomainHit(host, e.AllowNetwork)
}

// CoversCommand reports whether the exception's allow-list covers
// fullCommand via substring matching.
func (e *ExceptionView) CoversCommand(fullCommand string) bool {
	if e == nil {
		return false
	}

	for _, c := range e.AllowCommands {
		if c != "" && strings.Contains(fullCommand, c) {
			return true
		}
	}

	return false
}

// ExceptionView is a read-only view over config.ModuleException, kept in
// the trust package so the matching rules live next to the resolver that
// produces exceptions.
type ExceptionView struct {
	AllowFilesystem []string
	AllowNetwork    []string
	AllowCommands   []string
}
