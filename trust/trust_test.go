package trust

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
)

func TestNullCallerNeverTrusted(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TrustedModules = []config.TrustedModuleEntry{{ID: "left-pad"}}

	r := New(cfg)
	d := r.Resolve(access.ModuleId(""), "")

	require.False(t, d.Trusted)
	require.Nil(t, d.Exception)
}

func TestExactIdTrust(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TrustedModules = []config.TrustedModuleEntry{{ID: "left-pad"}}

	r := New(cfg)
	require.True(t, r.Resolve("left-pad", "").Trusted)
	require.False(t, r.Resolve("right-pad", "").Trusted)
}

func TestScopedIdTrust(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TrustedModules = []config.TrustedModuleEntry{{ID: "@scope/name"}}

	r := New(cfg)
	require.True(t, r.Resolve("@scope/name", "").Trusted)
	require.False(t, r.Resolve("name", "").Trusted)
}

func TestSemverConstrainedTrust(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TrustedModules = []config.TrustedModuleEntry{{ID: "left-pad", Version: ">=1.0.0 <2.0.0"}}

	r := New(cfg)
	require.True(t, r.Resolve("left-pad", "1.2.3").Trusted)
	require.False(t, r.Resolve("left-pad", "2.0.0").Trusted)
}

func TestExceptionLookupIsExactAndLocal(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Exceptions.Modules["ok-pkg"] = config.ModuleException{AllowFilesystem: []string{"/tmp/"}}

	r := New(cfg)
	d := r.Resolve("ok-pkg", "")
	require.NotNil(t, d.Exception)
	require.True(t, d.Exception.CoversFilesystem("/tmp/file"))

	other := r.Resolve("other-pkg", "")
	require.Nil(t, other.Exception)
}

func TestTrustAndExceptionAreIndependent(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TrustedModules = []config.TrustedModuleEntry{{ID: "left-pad"}}
	cfg.Exceptions.Modules["other-pkg"] = config.ModuleException{AllowFilesystem: []string{"/tmp/"}}

	r := New(cfg)
	d := r.Resolve("left-pad", "")
	require.True(t, d.Trusted)
	require.Nil(t, d.Exception)
}
