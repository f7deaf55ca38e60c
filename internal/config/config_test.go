package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 3*time.Second, cfg.FlashTimeout)
	assert.Equal(t, 10*time.Millisecond, cfg.BusyTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.IdleTimeout)
	assert.True(t, cfg.Mouse)
	assert.False(t, cfg.ForcePolling)
	assert.Equal(t, DefaultKeyBindings(), cfg.Keys)
	assert.Equal(t, cfg, Default())
}

func TestLoadFromXDGDirectory(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "bgs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
debounce: 300ms
icons: true
keys:
  stage: ["a", "s"]
`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce)
	assert.True(t, cfg.Icons)
	assert.Equal(t, []string{"a", "s"}, cfg.Keys.Stage)
	assert.Equal(t, []string{"u"}, cfg.Keys.Unstage)
}

func TestEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("BGS_POLL_INTERVAL", "5s")
	t.Setenv("BGS_FORCE_POLLING", "true")
	t.Setenv("BGS_KEYS_QUIT", "x")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.True(t, cfg.ForcePolling)
	assert.Equal(t, []string{"x"}, cfg.Keys.Quit)
}

func TestExplicitFileMustExist(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRejectsNonPositiveDurations(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(file, []byte("poll_interval: 0s\n"), 0o644))

	_, err := Load(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "poll_interval")
}
