package intercept

import (
	"fmt"

	"github.com/ossguard/nodefw/access"
)

// NetAdapter normalizes raw socket connects, HTTP(S) requests, and DNS
// lookups into NET_CONNECT/NET_SEND/NET_RESOLVE requests.
type NetAdapter struct {
	ctx       *FirewallContext
	originals map[string]any
}

// NewNetAdapter constructs an uninstalled NetAdapter.
func NewNetAdapter() *NetAdapter {
	return &NetAdapter{originals: map[string]any{}}
}

func (a *NetAdapter) Name() string { return "net" }

func (a *NetAdapter) Install(ctx *FirewallContext) error {
	a.ctx = ctx
	return nil
}

func (a *NetAdapter) Uninstall() error {
	a.ctx = nil
	return nil
}

func (a *NetAdapter) Originals() map[string]any { return a.originals }

// CheckConnect evaluates a NET_CONNECT to host:port. On DENY the caller
// should emit an "error" event on the request/socket rather than
// throwing synchronously.
func (a *NetAdapter) CheckConnect(host string, port uint16, caller access.ModuleId) error {
	req := access.New(access.NetConnect, fmt.Sprintf("%s:%d", host, port), caller)
	if v := a.ctx.Evaluate(req); v.Decision == access.Deny {
		return ErrPermissionDenied
	}
	return nil
}

// CheckResolve evaluates a NET_RESOLVE (DNS lookup).
func (a *NetAdapter) CheckResolve(host string, caller access.ModuleId) error {
	req := access.New(access.NetResolve, host, caller)
	if v := a.ctx.Evaluate(req); v.Decision == access.Deny {
		return ErrPermissionDenied
	}
	return nil
}

// CheckSend evaluates a NET_SEND once a request body is available,
// running the Credential Scanner over payload via the Policy Engine.
func (a *NetAdapter) CheckSend(host string, port uint16, payload []byte, caller access.ModuleId) error {
	req := access.New(access.NetSend, fmt.Sprintf("%s:%d", host, port), caller)
	req.Payload = payload
	if v := a.ctx.Evaluate(req); v.Decision == access.Deny {
		return ErrPermissionDenied
	}
	return nil
}
