// Package intercept implements the interception normalization layer: the
// bridge between raw runtime calls and the policy decision engine. It
// owns no policy logic of its own — every decision is
// delegated to policy.Decide — and instead normalizes call shapes,
// extracts caller module identity, and translates verdicts back into the
// caller's blocking convention.
package intercept

import (
	"os"

	"github.com/google/uuid"
	"github.com/safedep/dry/log"

	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
	"github.com/ossguard/nodefw/internal/eventlog"
	"github.com/ossguard/nodefw/internal/usefulerror"
	"github.com/ossguard/nodefw/monitor"
	"github.com/ossguard/nodefw/policy"
	"github.com/ossguard/nodefw/trust"
)

// ReadyMode governs how the layer behaves when the policy engine cannot
// yet be consulted.
type ReadyMode int

const (
	// ReadyModePermissive allows with firewall_not_ready when not ready.
	ReadyModePermissive ReadyMode = iota
	// ReadyModeStrict fails closed when not ready.
	ReadyModeStrict
)

// FirewallContext is the explicit, non-global object that owns a single
// interception context's state: the live Configuration Snapshot, its
// Behavioral Monitor, and the escape-I/O handles used for the context's
// own housekeeping writes. Hooks close over a FirewallContext at install
// time; multiple contexts may coexist per process (worker isolates,
// child processes), each with its own explicit state rather than any
// shared global.
type FirewallContext struct {
	snapshot *config.Snapshot
	monitor  *monitor.Monitor
	audit    *eventlog.Logger

	ready     bool
	readyMode ReadyMode

	sentinel *BuildSentinel

	callsites *CallsiteCache

	// sessionID identifies this interception context's run in audit log
	// records and reports, so records from concurrent contexts (worker
	// isolates, child processes) can be told apart.
	sessionID string

	// originalStderr is the escape-I/O handle captured at construction,
	// used by the layer's own logging so it never re-enters itself.
	originalStderr *os.File
}

// Option configures a FirewallContext at construction.
type Option func(*FirewallContext)

// WithReadyMode overrides the default permissive ready mode.
func WithReadyMode(mode ReadyMode) Option {
	return func(c *FirewallContext) { c.readyMode = mode }
}

// WithAuditLogger attaches an audit log sink.
func WithAuditLogger(l *eventlog.Logger) Option {
	return func(c *FirewallContext) { c.audit = l }
}

// New constructs a FirewallContext bound to cfg and ready for
// interception. The build-process sentinel is probed immediately; if it
// fires, Evaluate always returns ALLOW(passed) without consulting the
// Policy Engine.
func New(cfg config.Config, opts ...Option) *FirewallContext {
	c := &FirewallContext{
		snapshot:       config.NewSnapshot(cfg),
		monitor:        monitor.New(cfg.Behavioral),
		ready:          true,
		readyMode:      ReadyModePermissive,
		sentinel:       ProbeBuildSentinel(),
		callsites:      NewCallsiteCache(defaultCallsiteCacheSize, defaultCallsiteCacheTTL),
		sessionID:      uuid.NewString(),
		originalStderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Reload publishes a new Configuration Snapshot atomically. On failure
// the caller should not invoke Reload at all — construction of a valid
// Config is the caller's responsibility; Reload itself cannot fail, only
// replace: the live snapshot is retained when a new one can't be
// constructed upstream.
func (c *FirewallContext) Reload(cfg config.Config) {
	c.snapshot.Store(cfg)
}

// Config returns the live Configuration Snapshot.
func (c *FirewallContext) Config() config.Config {
	return c.snapshot.Load()
}

// Monitor returns the context's Behavioral Monitor.
func (c *FirewallContext) Monitor() *monitor.Monitor {
	return c.monitor
}

// OriginalStderr returns the escape handle for the context's own
// logging, bypassing interception.
func (c *FirewallContext) OriginalStderr() *os.File {
	return c.originalStderr
}

// SessionID returns the unique identifier for this interception context,
// stamped on every audit record it produces.
func (c *FirewallContext) SessionID() string {
	return c.sessionID
}

// Disabled reports whether the build-process sentinel disabled this
// context wholesale at construction.
func (c *FirewallContext) Disabled() bool {
	return c.sentinel.Matched
}

// Evaluate is the single entry point every adapter calls: it resolves
// trust, asks the Policy Engine for a verdict, records the event on the
// Behavioral Monitor, and writes an audit record. Adapters translate the
// returned Verdict into their own blocking convention.
func (c *FirewallContext) Evaluate(req access.Request) access.Verdict {
	if c.sentinel.Matched {
		return access.AllowPassed()
	}

	if !c.ready {
		ue := usefulerror.FirewallNotReady()
		log.Warnf("intercept: %s %s", ue.HumanError(), ue.Help())

		if c.readyMode == ReadyModeStrict {
			return access.DenyWithReason(access.ReasonFirewallNotReady, access.SeverityMedium)
		}
		return access.Verdict{Decision: access.Warn, Reason: access.ReasonFirewallNotReady}
	}

	cfg := c.snapshot.Load()
	resolver := trust.New(cfg)
	decision := resolver.Resolve(req.CallerModule, "")

	v := policy.Decide(req, cfg, decision)

	c.monitor.Record(req, v)
	c.logAudit(req, v)

	return v
}
