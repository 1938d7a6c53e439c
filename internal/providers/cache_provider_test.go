package providers

import (
	"elevate/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// local mock logger to avoid import cycle with testutil
type cacheTestLogger struct{}

func (m *cacheTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Close()                                        {}

func cacheConfig(enabled bool, size, ttl int) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{
			Enabled: enabled,
			Size:    size,
			TTL:     ttl,
		},
	}
}

func TestCacheProvider_DisabledKeepsValues(t *testing.T) {
	c := NewCacheProvider(cacheConfig(false, 10, 0), &cacheTestLogger{})
	assert.IsType(t, &MapCache{}, c)

	c.Set("postings", []byte("[]"))
	val, ok := c.Get("postings")
	assert.True(t, ok)
	assert.Equal(t, []byte("[]"), val)
}

func TestCacheProvider_ZeroSizeUsesMap(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 0, 0), &cacheTestLogger{})
	assert.IsType(t, &MapCache{}, c)
}

func TestCacheProvider_EnabledReturnsCacheProvider(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 0), &cacheTestLogger{})
	assert.IsType(t, &CacheProvider{}, c)
}

func TestCacheProvider_SetAndGet(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 0), &cacheTestLogger{})

	c.Set("key1", []byte("value1"))
	val, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, []byte("value1"), val)
}

func TestCacheProvider_Miss(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 0), &cacheTestLogger{})

	val, ok := c.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestCacheProvider_Overwrite(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 0), &cacheTestLogger{})

	c.Set("key1", []byte("v1"))
	c.Set("key1", []byte("v2"))

	val, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), val)
}

func TestCacheProvider_Del(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		c := NewCacheProvider(cacheConfig(enabled, 1, 0), &cacheTestLogger{})
		c.Set("key1", []byte("v1"))
		c.Del("key1")

		_, ok := c.Get("key1")
		assert.False(t, ok)
	}
}

func TestCacheProvider_TTLExpiry(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 1), &cacheTestLogger{})

	c.Set("key1", []byte("value1"))
	val, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, []byte("value1"), val)

	time.Sleep(2100 * time.Millisecond)

	_, ok = c.Get("key1")
	assert.False(t, ok)
}
