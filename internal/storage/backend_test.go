package storage

import (
	"elevate/internal/structures"
	"elevate/internal/testutil"
	"errors"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	dir := t.TempDir()

	bolt, err := NewBoltBackend(filepath.Join(dir, "bolt", "elevate.db"))
	require.NoError(t, err)
	sqlite, err := NewSQLiteBackend(filepath.Join(dir, "sqlite", "elevate.sqlite"))
	require.NoError(t, err)

	all := map[string]Backend{
		"memory": NewMemoryBackend(),
		"bolt":   bolt,
		"sqlite": sqlite,
	}
	t.Cleanup(func() {
		for _, b := range all {
			_ = b.Close()
		}
	})
	return all
}

func TestBackends_SetGetDelete(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := b.Get("elevate.postings")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, b.Set("elevate.postings", []byte(`[{"id":"a"}]`)))
			val, ok, err := b.Get("elevate.postings")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.JSONEq(t, `[{"id":"a"}]`, string(val))

			require.NoError(t, b.Set("elevate.postings", []byte(`[]`)))
			val, _, _ = b.Get("elevate.postings")
			assert.Equal(t, "[]", string(val))

			require.NoError(t, b.Delete("elevate.postings"))
			_, ok, err = b.Get("elevate.postings")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestBackends_Keys(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			keys, err := b.Keys()
			require.NoError(t, err)
			assert.Empty(t, keys)

			require.NoError(t, b.Set("elevate.logbook", []byte("[]")))
			require.NoError(t, b.Set("elevate.applications", []byte("[]")))

			keys, err = b.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{"elevate.applications", "elevate.logbook"}, keys)
		})
	}
}

func TestMemoryBackend_CopiesValues(t *testing.T) {
	b := NewMemoryBackend()
	buf := []byte("[1]")
	require.NoError(t, b.Set("k", buf))
	buf[1] = '2'

	val, _, _ := b.Get("k")
	assert.Equal(t, "[1]", string(val))

	val[1] = '3'
	again, _, _ := b.Get("k")
	assert.Equal(t, "[1]", string(again))
}

func TestMemoryBackend_SnapshotRestore(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.Set("elevate.postings", []byte(`[]`)))
	require.NoError(t, b.Set("elevate.logbook", []byte(`[{"id":"l1"}]`)))

	snap := b.Snapshot()
	require.Len(t, snap, 2)

	other := NewMemoryBackend()
	require.NoError(t, other.Set("stale", []byte("1")))
	other.Restore(snap)

	keys, _ := other.Keys()
	assert.Equal(t, []string{"elevate.logbook", "elevate.postings"}, keys)
	val, ok, _ := other.Get("elevate.logbook")
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"l1"}]`, string(val))

	// the snapshot is detached from the source
	snap["elevate.postings"] = json.RawMessage(`[1]`)
	val, _, _ = b.Get("elevate.postings")
	assert.Equal(t, "[]", string(val))
}

func TestSQLiteBackend_SharedBetweenHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.sqlite")
	first, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	defer first.Close()
	second, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, first.Set("elevate.postings", []byte(`[{"id":"p1"}]`)))
	val, ok, err := second.Get("elevate.postings")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"p1"}]`, string(val))
}

func TestNewBackend_SelectsByName(t *testing.T) {
	dir := t.TempDir()
	logger := &testutil.MockLogger{}

	cases := map[string]any{
		"memory": &MemoryBackend{},
		"file":   &MemoryBackend{},
		"bolt":   &BoltBackend{},
		"sqlite": &SQLBackend{},
	}
	for name, want := range cases {
		conf := &structures.Config{Storage: structures.StorageConfig{
			Backend: name,
			DSN:     filepath.Join(dir, name+".db"),
		}}
		b, err := NewBackend(conf, logger)
		require.NoError(t, err, name)
		assert.IsType(t, want, b, name)
		require.NoError(t, b.Close())
	}
}

func TestNewBackend_Unknown(t *testing.T) {
	conf := &structures.Config{Storage: structures.StorageConfig{Backend: "localStorage"}}
	_, err := NewBackend(conf, &testutil.MockLogger{})
	assert.True(t, errors.Is(err, ErrUnknownBackend))
}
