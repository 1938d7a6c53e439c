package providers

import (
	"elevate/internal/structures"
	"sync"
	"unsafe"

	"github.com/coocood/freecache"
)

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Del(key string)
}

type CacheProvider struct {
	cache *freecache.Cache
	ttl   int
}

// NewCacheProvider returns a freecache-backed cache, or a plain map when the
// cache is disabled. Query results must stay readable until invalidated, so
// the disabled variant still stores values instead of dropping them.
func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Cache disabled, using map store for query results")
		return NewMapCache()
	}

	sizeBytes := conf.Cache.Size * 1024 * 1024
	ttl := max(conf.Cache.TTL, 0)

	logger.Infof(TypeApp, "Cache initialized: %dMB, TTL=%ds", conf.Cache.Size, ttl)

	return &CacheProvider{
		cache: freecache.NewCache(sizeBytes),
		ttl:   ttl,
	}
}

// unsafeStringToBytes converts string to []byte without allocation.
// Safe when the result is only read (not modified), which is the case
// for freecache — it copies keys internally.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(unsafeStringToBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *CacheProvider) Set(key string, value []byte) {
	_ = c.cache.Set(unsafeStringToBytes(key), value, c.ttl)
}

func (c *CacheProvider) Del(key string) {
	c.cache.Del(unsafeStringToBytes(key))
}

type MapCache struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMapCache() *MapCache {
	return &MapCache{data: make(map[string][]byte)}
}

func (m *MapCache) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok
}

func (m *MapCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *MapCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}
