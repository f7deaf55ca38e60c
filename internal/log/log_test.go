package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetSink(t *testing.T) {
	t.Helper()
	global.mu.Lock()
	global.file = nil
	global.buffer = nil
	global.discard = false
	global.mu.Unlock()
	t.Cleanup(func() { _ = Close() })
}

func TestBufferedRecordsFlushToFile(t *testing.T) {
	resetSink(t)

	Info("starting", "path", "/repo")
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, Setup(path))
	Warn("watcher disconnected")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "level=INFO msg=starting path=/repo")
	assert.Contains(t, out, "level=WARN msg=\"watcher disconnected\"")
}

func TestSetupWithoutPathDiscards(t *testing.T) {
	resetSink(t)

	Error("dropped")
	require.NoError(t, Setup(""))

	global.mu.Lock()
	defer global.mu.Unlock()
	assert.True(t, global.discard)
	assert.Empty(t, global.buffer)
}

func TestSetupFailureDiscards(t *testing.T) {
	resetSink(t)

	Debug("buffered")
	err := Setup(filepath.Join(t.TempDir(), "missing", "debug.log"))
	require.Error(t, err)

	global.mu.Lock()
	defer global.mu.Unlock()
	assert.True(t, global.discard)
	assert.Empty(t, global.buffer)
}
