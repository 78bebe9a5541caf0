package access

import "time"

// Request is the canonical AccessRequest value produced by the
// Interception Normalization Layer and consumed by the Policy Decision
// Engine. Targets are canonicalized before construction: paths are made
// absolute and symlink-resolved, domains are lowercased, commands are
// rendered as a single string.
type Request struct {
	Kind Kind

	// Target is the canonicalized representation: absolute path,
	// "host:port", full command line, environment variable name, or
	// module URL, depending on Kind.
	Target string

	// Payload carries outgoing bytes for NET_SEND and content for
	// FS_WRITE/FS_CREATE, capped by the caller before being attached.
	Payload []byte

	// CallerModule is the third-party module id extracted from the call
	// stack, or "" when none could be determined.
	CallerModule ModuleId

	// Timestamp is a monotonic instant recorded at request construction.
	Timestamp time.Time

	// Observation carries operation-specific hints gathered by the
	// normalization layer that the Policy Engine needs but that don't
	// belong in Target (e.g. whether a filesystem write payload begins
	// with a shebang, or whether an existing target file is executable).
	Observation RequestObservation
}

// RequestObservation carries auxiliary, operation-specific facts about a
// request that the caller (an adapter) is best positioned to observe
// before handing off to the Policy Engine.
type RequestObservation struct {
	// FileExists/FileExecutable describe the current state of an FS_WRITE
	// target prior to the write.
	FileExists     bool
	FileExecutable bool

	// SpawnArgv is the full argument vector for CMD_SPAWN requests
	// (argv[0] plus arguments), used for the strict argument table check.
	SpawnArgv []string

	// Interactive mirrors mode.interactive at the time of the request,
	// used by the command severity-escalation rule.
	Interactive bool
}

// New constructs a Request with the timestamp set to now.
func New(kind Kind, target string, caller ModuleId) Request {
	return Request{
		Kind:         kind,
		Target:       target,
		CallerModule: caller,
		Timestamp:    time.Now(),
	}
}
