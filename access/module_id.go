package access

import "strings"

// ModuleId identifies a third-party module/package as extracted from a
// call stack by the Interception Normalization Layer. It preserves scoped
// identifiers such as "@scope/name".
type ModuleId string

// Empty reports whether the module id carries no identity. A "null"
// callerModule is represented as ModuleId("").
func (m ModuleId) Empty() bool {
	return m == ""
}

func (m ModuleId) String() string {
	return string(m)
}

// Scope returns the "@scope" portion of a scoped module id, or "" if the
// id is unscoped.
func (m ModuleId) Scope() string {
	s := string(m)
	if !strings.HasPrefix(s, "@") {
		return ""
	}

	idx := strings.Index(s, "/")
	if idx < 0 {
		return s
	}

	return s[:idx]
}
