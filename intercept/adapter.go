package intercept

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/internal/eventlog"
)

// Adapter is the capability-set the Interception Normalization Layer
// consumes for one host runtime primitive (filesystem, subprocess, HTTP,
// DNS, module loading, environment). One adapter implementation exists
// per platform primitive; the policy engine is unaware of any of them.
type Adapter interface {
	// Name identifies the adapter for logging.
	Name() string

	// Install wraps the primitive's entry points, closing over ctx so
	// every intercepted call reaches FirewallContext.Evaluate.
	Install(ctx *FirewallContext) error

	// Uninstall restores the primitive's original entry points.
	Uninstall() error

	// Originals returns the captured pre-interception function handles,
	// used by the layer's own housekeeping I/O to avoid re-entrance.
	Originals() map[string]any
}

// logAudit writes one audit record for a completed evaluation, trimming
// internal/runtime frames from the call stack.
func (c *FirewallContext) logAudit(req access.Request, v access.Verdict) {
	if c.audit == nil {
		return
	}

	var threats []string
	if v.Observable.MatchedPattern != "" {
		threats = append(threats, v.Observable.MatchedPattern)
	}

	c.audit.Log(eventlog.Record{
		SessionID:    c.sessionID,
		Action:       strings.ToLower(v.Decision.String()),
		Operation:    req.Kind.String(),
		Target:       req.Target,
		CallerModule: req.CallerModule.String(),
		Threats:      threats,
		CallStack:    trimmedCallStack(),
	})
}

// trimmedCallStack captures the current goroutine's stack with
// internal/runtime frames removed and capped to a small depth.
func trimmedCallStack() []string {
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(3, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	out := make([]string, 0, n)
	for {
		f, more := frames.Next()
		if !isSkippableFrame(f.Function) {
			out = append(out, fmt.Sprintf("%s:%d", f.Function, f.Line))
		}
		if !more || len(out) >= 8 {
			break
		}
	}
	return out
}
