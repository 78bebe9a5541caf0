package intercept

import "github.com/ossguard/nodefw/access"

// ModuleAdapter normalizes static and dynamic module-load calls into
// MODULE_LOAD requests and delegates to the Module Source Scanner branch
// of the Policy Engine.
type ModuleAdapter struct {
	ctx       *FirewallContext
	originals map[string]any
}

// NewModuleAdapter constructs an uninstalled ModuleAdapter.
func NewModuleAdapter() *ModuleAdapter {
	return &ModuleAdapter{originals: map[string]any{}}
}

func (a *ModuleAdapter) Name() string { return "module" }

func (a *ModuleAdapter) Install(ctx *FirewallContext) error {
	a.ctx = ctx
	return nil
}

func (a *ModuleAdapter) Uninstall() error {
	a.ctx = nil
	return nil
}

func (a *ModuleAdapter) Originals() map[string]any { return a.originals }

// CheckLoad evaluates a MODULE_LOAD for url's sourceBytes, throwing from
// the loader hook on DENY.
func (a *ModuleAdapter) CheckLoad(url string, sourceBytes []byte, caller access.ModuleId) error {
	req := access.New(access.ModuleLoad, url, caller)
	req.Payload = sourceBytes

	if v := a.ctx.Evaluate(req); v.Decision == access.Deny {
		return ErrPermissionDenied
	}
	return nil
}
