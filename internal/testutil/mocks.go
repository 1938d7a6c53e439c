package testutil

import (
	"elevate/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu             sync.Mutex
	Requests       int
	CacheHits      int
	CacheMisses    int
	Persistences   int
	StoreWrites    map[string]int
	StoreFallbacks map[string]int
	Notifications  map[string]int
	Invalidations  map[string]int
	RecordsTotal   map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		StoreWrites:    make(map[string]int),
		StoreFallbacks: make(map[string]int),
		Notifications:  make(map[string]int),
		Invalidations:  make(map[string]int),
		RecordsTotal:   make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persistences++
}

func (m *MockMetrics) IncStoreWrites(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreWrites[key]++
}

func (m *MockMetrics) IncStoreFallbacks(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreFallbacks[key]++
}

func (m *MockMetrics) IncNotifications(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications[channel]++
}

func (m *MockMetrics) IncInvalidations(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Invalidations[query]++
}

func (m *MockMetrics) SetRecordsTotal(key string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordsTotal[key] = count
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {
	m.Closed = true
}

// FailingBackend implements storage.Backend; every write fails with Err.
type FailingBackend struct {
	Err error
}

func (f *FailingBackend) Get(_ string) ([]byte, bool, error) { return nil, false, f.Err }
func (f *FailingBackend) Set(_ string, _ []byte) error       { return f.Err }
func (f *FailingBackend) Delete(_ string) error              { return f.Err }
func (f *FailingBackend) Keys() ([]string, error)            { return nil, f.Err }
func (f *FailingBackend) Close() error                       { return nil }
