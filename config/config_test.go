package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigHasDigest(t *testing.T) {
	cfg := DefaultConfig()
	require.NotEmpty(t, cfg.Digest())
}

func TestDigestIsDeterministic(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	require.Equal(t, a.Digest(), b.Digest())
}

func TestDigestChangesWithPolicy(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	b.Mode.StrictMode = true
	b.digest = computeDigest(b)

	require.NotEqual(t, a.Digest(), b.Digest())
}

func TestStrictArgumentHit(t *testing.T) {
	require.True(t, StrictArgumentHit("bash", []string{"-c", "echo hi"}))
	require.True(t, StrictArgumentHit("curl", []string{"-o", "/tmp/x"}))
	require.True(t, StrictArgumentHit("wget", nil))
	require.False(t, StrictArgumentHit("ls", []string{"-la"}))
}

func TestSnapshotAtomicReload(t *testing.T) {
	snap := NewSnapshot(DefaultConfig())
	require.True(t, snap.Load().Mode.Enabled)

	updated := DefaultConfig()
	updated.Mode.Enabled = false
	snap.Store(updated)

	require.False(t, snap.Load().Mode.Enabled)
}
