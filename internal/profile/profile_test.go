package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudedesk/claudedesk/internal/config"
)

func newTestProfile(t *testing.T) *Profile {
	t.Helper()
	p, err := New(&config.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, p.EnsureReady())
	return p
}

func TestEnsureReadyCreatesLayout(t *testing.T) {
	p := newTestProfile(t)

	for _, dir := range []string{p.DataDir(), p.ConversationsDir(), p.CacheDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Idempotent.
	assert.NoError(t, p.EnsureReady())
}

func TestClearCacheLeavesConversationsAlone(t *testing.T) {
	p := newTestProfile(t)

	cached := filepath.Join(p.CacheDir(), "Cookies")
	require.NoError(t, os.WriteFile(cached, []byte("session state"), 0o644))

	record := filepath.Join(p.ConversationsDir(), "20241212_143022.json")
	require.NoError(t, os.WriteFile(record, []byte("{}"), 0o644))

	require.NoError(t, p.ClearCache())

	_, err := os.Stat(cached)
	assert.True(t, os.IsNotExist(err), "cache contents must be gone")

	info, err := os.Stat(p.CacheDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "cache dir is recreated empty")

	_, err = os.Stat(record)
	assert.NoError(t, err, "conversation records must survive a cache clear")
}
