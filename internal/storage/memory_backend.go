package storage

import (
	"sort"
	"sync"

	json "github.com/goccy/go-json"
)

var (
	_ Backend     = (*MemoryBackend)(nil)
	_ Snapshotter = (*MemoryBackend)(nil)
)

type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

func (m *MemoryBackend) Set(key string, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = buf
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryBackend) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryBackend) Close() error {
	return nil
}

func (m *MemoryBackend) Snapshot() map[string]json.RawMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]json.RawMessage, len(m.data))
	for k, v := range m.data {
		buf := make([]byte, len(v))
		copy(buf, v)
		out[k] = buf
	}
	return out
}

// Restore replaces the whole state with data.
func (m *MemoryBackend) Restore(data map[string]json.RawMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte, len(data))
	for k, v := range data {
		buf := make([]byte, len(v))
		copy(buf, v)
		m.data[k] = buf
	}
}
