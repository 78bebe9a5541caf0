package policy

import (
	"strings"

	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
	"github.com/ossguard/nodefw/pattern"
)

func decideFilesystem(req access.Request, cfg config.Config) access.Verdict {
	switch req.Kind {
	case access.FSRead:
		return decideFSRead(req, cfg)
	case access.FSWrite, access.FSCreate:
		return decideFSWrite(req, cfg)
	default:
		return access.AllowPassed()
	}
}

func decideFSRead(req access.Request, cfg config.Config) access.Verdict {
	if frag, hit := pattern.MatchedFragment(req.Target, cfg.Filesystem.BlockedReadPaths); hit {
		return access.DenyWithReason(access.ReasonBlockedRead, access.SeverityHigh).
			WithObservable(access.Observable{MatchedPattern: frag})
	}

	if cfg.Mode.StrictMode && !pattern.PathHit(req.Target, cfg.Filesystem.AllowedPaths) {
		return access.DenyWithReason(access.ReasonStrictModeNotAllowed, access.SeverityMedium)
	}

	return access.AllowPassed()
}

func decideFSWrite(req access.Request, cfg config.Config) access.Verdict {
	if frag, hit := pattern.MatchedFragment(req.Target, cfg.Filesystem.BlockedWritePaths); hit {
		return access.DenyWithReason(access.ReasonBlockedWrite, access.SeverityCritical).
			WithObservable(access.Observable{MatchedPattern: frag})
	}

	if isExecutableByContent(req, cfg) {
		return access.DenyWithReason(access.ReasonExecutableFileBlocked, access.SeverityCritical)
	}

	if ext, hit := pattern.MatchedExtension(req.Target, cfg.Filesystem.BlockedExtensions); hit {
		return access.DenyWithReason(access.ReasonBlockedExtension, access.SeverityHigh).
			WithObservable(access.Observable{Extension: ext})
	}

	if cfg.Mode.StrictMode && !pattern.PathHit(req.Target, cfg.Filesystem.AllowedPaths) {
		return access.DenyWithReason(access.ReasonStrictModeNotAllowed, access.SeverityMedium)
	}

	return access.AllowPassed()
}

// isExecutableByContent implements three executable-by-content tests:
// shebang payload, existing execute bit, or a fixed script-extension
// suffix.
func isExecutableByContent(req access.Request, cfg config.Config) bool {
	if len(req.Payload) > 0 && strings.HasPrefix(string(req.Payload), "#!") {
		return true
	}

	if req.Observation.FileExists && req.Observation.FileExecutable {
		return true
	}

	return pattern.ExtHit(req.Target, config.ExecutableScriptExtensions())
}
