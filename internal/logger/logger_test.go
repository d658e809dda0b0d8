package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFileName(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	assert.Equal(t, "syncwatch_20260304_050607.log", sessionFileName(now))
}

func TestInitWritesSessionFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	path, err := Init(false, dir)
	require.NoError(t, err)
	t.Cleanup(func() {
		Sync()
	})

	assert.Equal(t, dir, filepath.Dir(path))

	Log.Info("session started")
	Log.Debug("not written at info level")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session started")
	assert.NotContains(t, string(data), "not written at info level")
}

func TestInitWithoutDir(t *testing.T) {
	path, err := Init(true, "")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.NotNil(t, Log)
}
