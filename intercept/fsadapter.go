package intercept

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/ossguard/nodefw/access"
)

// ErrPermissionDenied is the error thrown/returned on a synchronous
// DENY.
var ErrPermissionDenied = errors.New("firewall: permission denied")

// FSAdapter normalizes filesystem calls into FS_READ/FS_WRITE/
// FS_CREATE/FS_DELETE requests. Real installation would replace package-
// level os/fs entry points with wrappers that call through to this
// adapter's exported Check* methods; the wrapping mechanics themselves
// are host-runtime specific and out of this layer's scope.
type FSAdapter struct {
	ctx       *FirewallContext
	originals map[string]any
}

// NewFSAdapter constructs an uninstalled FSAdapter.
func NewFSAdapter() *FSAdapter {
	return &FSAdapter{originals: map[string]any{}}
}

func (a *FSAdapter) Name() string { return "fs" }

func (a *FSAdapter) Install(ctx *FirewallContext) error {
	a.ctx = ctx
	a.originals["open"] = os.Open
	a.originals["create"] = os.Create
	a.originals["remove"] = os.Remove
	return nil
}

func (a *FSAdapter) Uninstall() error {
	a.ctx = nil
	return nil
}

func (a *FSAdapter) Originals() map[string]any { return a.originals }

// normalizePath absolute-resolves path against the current working
// directory and symlink-resolves it, so policy matching always runs
// against a canonical form.
func normalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// Path may not exist yet (e.g. FS_CREATE of a new file); fall
		// back to the absolute form.
		return abs
	}

	return resolved
}

// CheckRead evaluates a synchronous FS_READ and returns ErrPermissionDenied
// on DENY, matching the "sync file read: throw on DENY" convention.
func (a *FSAdapter) CheckRead(path string, caller access.ModuleId) error {
	req := access.New(access.FSRead, normalizePath(path), caller)
	v := a.ctx.Evaluate(req)
	if v.Decision == access.Deny {
		return ErrPermissionDenied
	}
	return nil
}

// CheckWrite evaluates a synchronous FS_WRITE/FS_CREATE.
func (a *FSAdapter) CheckWrite(path string, payload []byte, create bool, caller access.ModuleId) error {
	kind := access.FSWrite
	if create {
		kind = access.FSCreate
	}

	req := access.New(kind, normalizePath(path), caller)
	req.Payload = payload
	req.Observation.FileExists, req.Observation.FileExecutable = statExecutable(path)

	v := a.ctx.Evaluate(req)
	if v.Decision == access.Deny {
		return ErrPermissionDenied
	}
	return nil
}

// CheckReadAsync evaluates an asynchronous FS_READ, invoking done with a
// permission-denied error on DENY and never calling the original.
func (a *FSAdapter) CheckReadAsync(path string, caller access.ModuleId, done func(error)) {
	done(a.CheckRead(path, caller))
}

func statExecutable(path string) (exists bool, executable bool) {
	info, err := os.Stat(path)
	if err != nil {
		return false, false
	}
	return true, info.Mode()&0o111 != 0
}
