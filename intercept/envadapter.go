package intercept

import "github.com/ossguard/nodefw/access"

// EnvAdapter normalizes environment reads and enumeration into ENV_GET/
// ENV_ENUM requests.
type EnvAdapter struct {
	ctx       *FirewallContext
	originals map[string]any
}

// NewEnvAdapter constructs an uninstalled EnvAdapter.
func NewEnvAdapter() *EnvAdapter {
	return &EnvAdapter{originals: map[string]any{}}
}

func (a *EnvAdapter) Name() string { return "env" }

func (a *EnvAdapter) Install(ctx *FirewallContext) error {
	a.ctx = ctx
	return nil
}

func (a *EnvAdapter) Uninstall() error {
	a.ctx = nil
	return nil
}

func (a *EnvAdapter) Originals() map[string]any { return a.originals }

// Get evaluates ENV_GET(name) and returns the value, or "" when denied,
// per the convention that a denied environment read returns undefined.
func (a *EnvAdapter) Get(name string, lookup func(string) (string, bool), caller access.ModuleId) (string, bool) {
	req := access.New(access.EnvGet, name, caller)
	if v := a.ctx.Evaluate(req); v.Decision == access.Deny {
		return "", false
	}
	return lookup(name)
}

// Enumerate evaluates ENV_ENUM and filters protected variable names out
// of the returned key set: enumeration itself is always allowed,
// filtering is the adapter's surface contract.
func (a *EnvAdapter) Enumerate(keys []string, caller access.ModuleId) []string {
	req := access.New(access.EnvEnum, "", caller)
	a.ctx.Evaluate(req)

	cfg := a.ctx.Config()
	protected := make(map[string]bool, len(cfg.Environment.ProtectedVariables))
	for _, p := range cfg.Environment.ProtectedVariables {
		protected[p] = true
	}

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !protected[k] {
			out = append(out, k)
		}
	}
	return out
}
