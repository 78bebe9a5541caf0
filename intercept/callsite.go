package intercept

import (
	"crypto/sha256"
	"encoding/hex"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/ossguard/nodefw/access"
)

const (
	defaultCallsiteCacheSize = 512
	defaultCallsiteCacheTTL  = 30 * time.Second

	// maxFrames bounds how many stack frames are hashed and walked.
	maxFrames = 32

	// packageRootSeparator is the segment marker extraction pivots on.
	packageRootSeparator = "node_modules/"
)

// stdlibFramePrefixes identifies frames inside the host runtime's
// standard library, skipped during caller-module extraction.
var stdlibFramePrefixes = []string{
	"runtime.",
	"internal/",
}

// firewallModulePrefix identifies frames inside this module itself,
// also skipped so the firewall never names itself as the caller.
const firewallModulePrefix = "github.com/ossguard/nodefw/"

type cacheEntry struct {
	moduleID  access.ModuleId
	expiresAt time.Time
}

// CallsiteCache memoizes call-site module extraction by a stable hash of
// the top-k frames, with a short TTL and bounded, simple eviction.
type CallsiteCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
}

// NewCallsiteCache constructs a bounded cache.
func NewCallsiteCache(maxSize int, ttl time.Duration) *CallsiteCache {
	return &CallsiteCache{
		entries: make(map[string]cacheEntry, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// stackFrame is the subset of runtime.Frame this layer needs: Function
// to decide whether a frame belongs to the runtime or this module, File
// to extract the calling package's identity.
type stackFrame struct {
	Function string
	File     string
}

// ExtractCallerModule walks the call stack starting skip frames above
// the caller of this function, returning the first third-party package
// identifier found. Results are memoized by a hash of the walked frames.
func (c *CallsiteCache) ExtractCallerModule(skip int) access.ModuleId {
	frames := captureFrames(skip + 1)
	key := hashFrames(frames)

	if id, ok := c.lookup(key); ok {
		return id
	}

	id := extractModuleFromFrames(frames)
	c.store(key, id)
	return id
}

func (c *CallsiteCache) lookup(key string) (access.ModuleId, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	return e.moduleID, true
}

func (c *CallsiteCache) store(key string, id access.ModuleId) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.maxSize {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}

	c.entries[key] = cacheEntry{moduleID: id, expiresAt: time.Now().Add(c.ttl)}
}

func captureFrames(skip int) []stackFrame {
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(skip+1, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	out := make([]stackFrame, 0, n)
	for {
		f, more := frames.Next()
		out = append(out, stackFrame{Function: f.Function, File: f.File})
		if !more {
			break
		}
	}
	return out
}

func hashFrames(frames []stackFrame) string {
	h := sha256.New()
	for _, f := range frames {
		h.Write([]byte(f.Function))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// extractModuleFromFrames returns the first third-party package
// identifier found by matching the segment following a
// node_modules-style separator, preserving scoped identifiers
// (@scope/name).
func extractModuleFromFrames(frames []stackFrame) access.ModuleId {
	for _, f := range frames {
		if isSkippableFrame(f.Function) {
			continue
		}

		if id, ok := packageIDFromPath(f.File); ok {
			return id
		}
	}
	return ""
}

// isSkippableFrame reports whether function belongs to the host runtime
// or to this module itself, using the fully-qualified function name
// (e.g. "runtime.gopanic", "github.com/ossguard/nodefw/intercept.(*FSAdapter).CheckRead")
// rather than the source file path, since vendored/GOPATH source layouts
// make file-path prefixes unreliable.
func isSkippableFrame(function string) bool {
	if strings.HasPrefix(function, firewallModulePrefix) {
		return true
	}
	for _, p := range stdlibFramePrefixes {
		if strings.HasPrefix(function, p) {
			return true
		}
	}
	return false
}

func packageIDFromPath(file string) (access.ModuleId, bool) {
	idx := strings.LastIndex(file, packageRootSeparator)
	if idx < 0 {
		return "", false
	}

	rest := file[idx+len(packageRootSeparator):]
	segments := strings.Split(rest, "/")
	if len(segments) == 0 || segments[0] == "" {
		return "", false
	}

	if strings.HasPrefix(segments[0], "@") && len(segments) > 1 {
		return access.ModuleId(segments[0] + "/" + segments[1]), true
	}

	return access.ModuleId(segments[0]), true
}
