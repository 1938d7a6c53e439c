package storage

import (
	"elevate/internal/models"
	"elevate/internal/providers"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
)

// Notifier is told about every persisted write. It must deliver to
// same-context subscribers before returning.
type Notifier interface {
	Notify(key string, value []byte)
}

// RecordStore persists whole collections and announces every write.
// Writes are last-write-wins: nothing is merged.
type RecordStore struct {
	backend  Backend
	notifier Notifier
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	locks    sync.Map // key -> *sync.Mutex
}

func NewRecordStore(backend Backend, notifier Notifier, logger providers.Logger, metrics providers.MetricsProviderInterface) *RecordStore {
	return &RecordStore{
		backend:  backend,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
	}
}

func (rs *RecordStore) Backend() Backend {
	return rs.backend
}

// Read decodes the value at key into dst. It returns false, leaving dst
// untouched, when the key is absent, unreadable or not valid JSON.
func (rs *RecordStore) Read(key string, dst any) bool {
	raw, ok := rs.readRaw(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		rs.fallback(key, "decode failed: %s", err)
		return false
	}
	return true
}

// Write serialises value, persists it with a single backend call and then
// notifies. The notification has been delivered locally when Write returns.
func (rs *RecordStore) Write(key string, value any) error {
	raw, err := rs.persist(key, value)
	if err != nil {
		return err
	}
	rs.notify(key, raw)
	return nil
}

// Clear deletes every stored collection and announces it with an empty key.
func (rs *RecordStore) Clear() error {
	keys, err := rs.backend.Keys()
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}
	for _, key := range keys {
		if err := rs.backend.Delete(key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	rs.logger.Infof(providers.TypeStore, "Cleared %d collections", len(keys))
	rs.notify("", nil)
	return nil
}

func (rs *RecordStore) readRaw(key string) ([]byte, bool) {
	raw, ok, err := rs.backend.Get(key)
	if err != nil {
		rs.fallback(key, "backend read failed: %s", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return raw, true
}

func (rs *RecordStore) persist(key string, value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	if err := rs.backend.Set(key, raw); err != nil {
		rs.logger.Errorf(providers.TypeStore, "Write of %s failed: %s", key, err)
		return nil, fmt.Errorf("persist %s: %w", key, err)
	}
	rs.metrics.IncStoreWrites(key)
	return raw, nil
}

func (rs *RecordStore) notify(key string, raw []byte) {
	if rs.notifier != nil {
		rs.notifier.Notify(key, raw)
	}
}

func (rs *RecordStore) fallback(key, format string, args ...interface{}) {
	rs.metrics.IncStoreFallbacks(key)
	rs.logger.Warnf(providers.TypeStore, "Falling back to default for %s: "+format, append([]interface{}{key}, args...)...)
}

func (rs *RecordStore) lock(key string) func() {
	m, _ := rs.locks.LoadOrStore(key, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// ReadCollection returns the records stored at key, or fallback unchanged
// when the key is absent, the value is not a JSON array, or any record fails
// validation.
func ReadCollection[T any](rs *RecordStore, key string, fallback []T) []T {
	raw, ok := rs.readRaw(key)
	if !ok {
		return fallback
	}
	records, err := decodeCollection[T](raw)
	if err != nil {
		rs.fallback(key, "%s", err)
		return fallback
	}
	return records
}

// WriteCollection validates every record and writes the collection. Nothing
// is persisted when a record is invalid.
func WriteCollection[T any](rs *RecordStore, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	for i := range records {
		if err := models.Validate(&records[i]); err != nil {
			return fmt.Errorf("%s[%d]: %w", key, i, err)
		}
	}
	if err := rs.Write(key, records); err != nil {
		return err
	}
	rs.metrics.SetRecordsTotal(key, len(records))
	return nil
}

// MutateCollection runs a serialised read-modify-write on the collection at
// key. fn returns the new collection and whether anything changed; unchanged
// collections are neither written nor announced. The notification is sent
// after the per-key lock is released so that handlers may read or write the
// same key.
func MutateCollection[T any](rs *RecordStore, key string, fallback func() []T, fn func([]T) ([]T, bool)) (bool, error) {
	unlock := rs.lock(key)

	current := ReadCollection(rs, key, fallback())
	next, changed := fn(current)
	if !changed {
		unlock()
		return false, nil
	}
	if next == nil {
		next = []T{}
	}
	for i := range next {
		if err := models.Validate(&next[i]); err != nil {
			unlock()
			return false, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
	}
	raw, err := rs.persist(key, next)
	unlock()
	if err != nil {
		return false, err
	}
	rs.metrics.SetRecordsTotal(key, len(next))
	rs.notify(key, raw)
	return true, nil
}

func decodeCollection[T any](raw []byte) ([]T, error) {
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	if records == nil {
		return nil, fmt.Errorf("value is not an array")
	}
	for i := range records {
		if err := models.Validate(&records[i]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return records, nil
}
