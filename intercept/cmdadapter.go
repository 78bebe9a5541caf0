package intercept

import (
	"strings"

	"github.com/ossguard/nodefw/access"
)

// CmdAdapter normalizes exec/spawn/execFile calls into CMD_EXEC/
// CMD_SPAWN requests.
type CmdAdapter struct {
	ctx       *FirewallContext
	originals map[string]any
}

// NewCmdAdapter constructs an uninstalled CmdAdapter.
func NewCmdAdapter() *CmdAdapter {
	return &CmdAdapter{originals: map[string]any{}}
}

func (a *CmdAdapter) Name() string { return "cmd" }

func (a *CmdAdapter) Install(ctx *FirewallContext) error {
	a.ctx = ctx
	return nil
}

func (a *CmdAdapter) Uninstall() error {
	a.ctx = nil
	return nil
}

func (a *CmdAdapter) Originals() map[string]any { return a.originals }

// CheckExec evaluates a synchronous CMD_EXEC given the full command
// line.
func (a *CmdAdapter) CheckExec(fullCommand string, interactive bool, caller access.ModuleId) error {
	req := access.New(access.CmdExec, fullCommand, caller)
	req.Observation.Interactive = interactive

	if v := a.ctx.Evaluate(req); v.Decision == access.Deny {
		return ErrPermissionDenied
	}
	return nil
}

// CheckSpawn evaluates a CMD_SPAWN given an argument vector. Spawn
// always throws on DENY rather than allowing the spawn and killing the
// child afterward.
func (a *CmdAdapter) CheckSpawn(argv []string, interactive bool, caller access.ModuleId) error {
	req := access.New(access.CmdSpawn, strings.Join(argv, " "), caller)
	req.Observation.SpawnArgv = argv
	req.Observation.Interactive = interactive

	if v := a.ctx.Evaluate(req); v.Decision == access.Deny {
		return ErrPermissionDenied
	}
	return nil
}
