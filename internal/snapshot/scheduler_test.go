package snapshot

import (
	"elevate/internal/models"
	"elevate/internal/storage"
	"elevate/internal/structures"
	"elevate/internal/testutil"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(backend, filePath string) *structures.Config {
	return &structures.Config{
		Storage: structures.StorageConfig{Backend: backend},
		Persistence: structures.Persistence{
			FilePath:     filePath,
			SaveInterval: 1,
		},
	}
}

func TestScheduler_PersistAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elevate.snapshot")
	conf := testConfig("file", path)
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()

	source := storage.NewMemoryBackend()
	require.NoError(t, source.Set(models.KeyProfiles, []byte(`[{"userName":"asha"}]`)))
	s := NewScheduler(conf, logger, NewFileManager(&testutil.MockCompressor{}, source, logger), metrics)
	require.NoError(t, s.Persist())
	assert.Equal(t, 1, metrics.Persistences)

	target := storage.NewMemoryBackend()
	restored := NewScheduler(conf, logger, NewFileManager(&testutil.MockCompressor{}, target, logger), metrics)
	require.NoError(t, restored.Restore())

	raw, ok, _ := target.Get(models.KeyProfiles)
	require.True(t, ok)
	assert.JSONEq(t, `[{"userName":"asha"}]`, string(raw))
}

func TestScheduler_PersistErrorIsLogged(t *testing.T) {
	conf := testConfig("file", filepath.Join(t.TempDir(), "elevate.snapshot"))
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	comp := &testutil.MockCompressor{
		CompressFn: func([]byte) ([]byte, error) { return nil, errors.New("disk full") },
	}
	s := NewScheduler(conf, logger, NewFileManager(comp, storage.NewMemoryBackend(), logger), metrics)

	assert.Error(t, s.Persist())
	assert.Equal(t, 1, logger.Count("error"))
	assert.Equal(t, 1, metrics.Persistences)
}

func TestScheduler_StopWithoutInit(t *testing.T) {
	conf := testConfig("file", filepath.Join(t.TempDir(), "elevate.snapshot"))
	logger := &testutil.MockLogger{}
	s := NewScheduler(conf, logger, NewFileManager(&testutil.MockCompressor{}, storage.NewMemoryBackend(), logger), testutil.NewMockMetrics())

	assert.NotPanics(t, s.Stop)
}

func TestScheduler_CloseReleasesCompressor(t *testing.T) {
	conf := testConfig("file", filepath.Join(t.TempDir(), "elevate.snapshot"))
	logger := &testutil.MockLogger{}
	comp := &testutil.MockCompressor{}
	s := NewScheduler(conf, logger, NewFileManager(comp, storage.NewMemoryBackend(), logger), testutil.NewMockMetrics())

	require.NoError(t, s.Persist())
	assert.False(t, comp.Closed)

	s.Close()
	assert.True(t, comp.Closed)
	assert.NotPanics(t, noopScheduler{}.Close)
}

func TestNewBackendScheduler(t *testing.T) {
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	path := filepath.Join(t.TempDir(), "elevate.snapshot")

	s, err := NewBackendScheduler(testConfig("file", path), logger, storage.NewMemoryBackend(), metrics)
	require.NoError(t, err)
	assert.IsType(t, &Scheduler{}, s)

	s, err = NewBackendScheduler(testConfig("memory", path), logger, storage.NewMemoryBackend(), metrics)
	require.NoError(t, err)
	assert.IsType(t, noopScheduler{}, s)
	assert.NoError(t, s.Persist())
	assert.NoError(t, s.Restore())

	s, err = NewBackendScheduler(testConfig("file", path), logger, &testutil.FailingBackend{}, metrics)
	require.NoError(t, err)
	assert.IsType(t, noopScheduler{}, s)
}
