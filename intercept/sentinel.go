package intercept

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// trustedNativeBuildParents lists parent-process basenames recognized as
// a trusted native-addon build toolchain. When the sentinel matches, the
// entire layer disables itself
// wholesale and emits no interceptions, since legitimate native builds
// routinely perform filesystem and subprocess operations that would
// otherwise look indistinguishable from an attack.
var trustedNativeBuildParents = []string{
	"node-gyp", "gyp", "cmake-js", "prebuild", "prebuildify",
}

// lifecycleEnvMarkers are environment variable names whose mere presence
// indicates a package manager lifecycle-script build step is underway.
var lifecycleEnvMarkers = []string{
	"npm_lifecycle_event",
	"npm_config_node_gyp",
}

// BuildSentinel records the sentinel probe's outcome at construction.
type BuildSentinel struct {
	Matched bool
	Reason  string
}

// ProbeBuildSentinel inspects the parent process name and lifecycle-event
// environment once, at FirewallContext construction.
func ProbeBuildSentinel() *BuildSentinel {
	if name := parentProcessName(); name != "" {
		for _, trusted := range trustedNativeBuildParents {
			if strings.EqualFold(name, trusted) {
				return &BuildSentinel{Matched: true, Reason: "trusted native-addon build parent: " + name}
			}
		}
	}

	for _, marker := range lifecycleEnvMarkers {
		if v := os.Getenv(marker); v != "" {
			return &BuildSentinel{Matched: true, Reason: "lifecycle-event environment marker: " + marker}
		}
	}

	return &BuildSentinel{}
}

// parentProcessName resolves the parent process's executable basename
// via /proc, when available. On platforms without /proc this returns ""
// and the sentinel falls back to the environment-marker check alone.
func parentProcessName() string {
	ppid := os.Getppid()
	if ppid <= 0 {
		return ""
	}

	exe, err := os.Readlink(filepath.Join("/proc", strconv.Itoa(ppid), "exe"))
	if err != nil {
		return ""
	}

	return filepath.Base(exe)
}
