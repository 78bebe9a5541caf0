// Package trust implements the trust resolver: given a caller module id,
// it decides whether the caller is trusted and/or covered by a per-module
// exception.
package trust

import (
	"github.com/Masterminds/semver"
	"github.com/safedep/dry/log"

	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
)

// Decision is the Trust Resolver's output for a single caller.
type Decision struct {
	Trusted   bool
	Exception *ExceptionView
}

// Resolver resolves trust decisions against a Configuration Snapshot.
type Resolver struct {
	cfg config.Config
}

// New builds a Resolver bound to cfg. Resolvers are cheap and immutable;
// callers typically build one per decision from the live snapshot.
func New(cfg config.Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve computes the TrustDecision for caller, optionally using a
// version hint when the adapter could supply one (used only for
// semver-constrained trusted module entries; a plain exact-match rule
// is always evaluated first and alone is sufficient to trust).
//
// A null (empty) callerModule is never trusted and has no exception.
func (r *Resolver) Resolve(caller access.ModuleId, versionHint string) Decision {
	if caller.Empty() {
		return Decision{}
	}

	decision := Decision{Trusted: r.isTrusted(caller, versionHint)}

	if exc, ok := r.cfg.Exceptions.Modules[caller.String()]; ok {
		decision.Exception = &ExceptionView{
			AllowFilesystem: exc.AllowFilesystem,
			AllowNetwork:    exc.AllowNetwork,
			AllowCommands:   exc.AllowCommands,
		}
	}

	return decision
}

func (r *Resolver) isTrusted(caller access.ModuleId, versionHint string) bool {
	for _, entry := range r.cfg.TrustedModules {
		if entry.ID != caller.String() {
			continue
		}

		if entry.Version == "" {
			return true
		}

		if versionHint == "" {
			// No version to check against a constrained entry: the
			// exact-id match still stands; constraints only narrow when a
			// hint is present.
			return true
		}

		constraint, err := semver.NewConstraint(entry.Version)
		if err != nil {
			log.Warnf("trust: invalid semver constraint %q for module %q: %v", entry.Version, entry.ID, err)
			continue
		}

		v, err := semver.NewVersion(versionHint)
		if err != nil {
			log.Warnf("trust: invalid version hint %q for module %q: %v", versionHint, entry.ID, err)
			continue
		}

		if constraint.Check(v) {
			return true
		}
	}

	return false
}
