package providers

import (
	"elevate/internal/structures"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogTypeByRequestType_Writes(t *testing.T) {
	assert.Equal(t, TypePost, GetLogTypeByRequestType("POST"))
	assert.Equal(t, TypePost, GetLogTypeByRequestType("PUT"))
	assert.Equal(t, TypePost, GetLogTypeByRequestType("DELETE"))
}

func TestGetLogTypeByRequestType_Reads(t *testing.T) {
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("GET"))
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("HEAD"))
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof(TypeApp, "test message")
	logger.Warnf(TypeStore, "store message")
	logger.Debugf(TypeGet, "filtered by level")

	for _, name := range []string{"app.log", "get.log", "post.log", "store.log", "sync.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "store.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "store message")

	data, err = os.ReadFile(filepath.Join(dir, "get.log"))
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   filepath.Join(file, "logs"),
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "loud", Mode: 0644, Dir: t.TempDir()},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}
