// Package query caches named query results and keeps subscribers fresh when
// the underlying collections change, here or in another context.
package query

import (
	"elevate/internal/notify"
	"elevate/internal/providers"
	"sort"
	"sync"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

type subscription struct {
	name string
	fn   func()
}

type Client struct {
	cache    providers.CacheProviderInterface
	bindings Bindings
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface

	mu         sync.Mutex
	known      map[string]struct{}
	subs       map[uint64]subscription
	nextSub    uint64
	generation atomic.Uint64
}

func NewClient(cache providers.CacheProviderInterface, bindings Bindings, logger providers.Logger, metrics providers.MetricsProviderInterface) *Client {
	return &Client{
		cache:    cache,
		bindings: bindings,
		logger:   logger,
		metrics:  metrics,
		known:    make(map[string]struct{}),
		subs:     make(map[uint64]subscription),
	}
}

// Fetch returns the cached result of name or runs fetch and caches it. A
// result fetched while an invalidation happened is returned but not cached.
func Fetch[T any](c *Client, name string, fetch func() (T, error)) (T, error) {
	if raw, ok := c.cache.Get(name); ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		c.cache.Del(name)
	}

	gen := c.generation.Load()
	v, err := fetch()
	if err != nil {
		return v, err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.Warnf(providers.TypeApp, "Query %s not cacheable: %s", name, err)
		return v, nil
	}

	c.mu.Lock()
	if c.generation.Load() == gen {
		c.cache.Set(name, raw)
		c.known[name] = struct{}{}
	}
	c.mu.Unlock()

	return v, nil
}

// Mutate runs write and invalidates names when it succeeds.
func Mutate(c *Client, write func() error, names ...string) error {
	if err := write(); err != nil {
		return err
	}
	c.Invalidate(names...)
	return nil
}

// Invalidate marks every cached query covered by the given topics stale and
// then calls their subscribers.
func (c *Client) Invalidate(topics ...string) {
	if len(topics) == 0 {
		return
	}

	c.mu.Lock()
	c.generation.Inc()
	for name := range c.known {
		for _, topic := range topics {
			if covers(topic, name) {
				c.cache.Del(name)
				delete(c.known, name)
				break
			}
		}
	}
	for _, topic := range topics {
		// a name may have been cached under an evicted or unknown entry
		c.cache.Del(topic)
		c.metrics.IncInvalidations(topic)
	}
	callbacks := c.matchingSubscribers(func(name string) bool {
		for _, topic := range topics {
			if covers(topic, name) {
				return true
			}
		}
		return false
	})
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// InvalidateAll drops every cached query and calls every subscriber.
func (c *Client) InvalidateAll() {
	c.mu.Lock()
	c.generation.Inc()
	for name := range c.known {
		c.cache.Del(name)
		delete(c.known, name)
	}
	callbacks := c.matchingSubscribers(func(string) bool { return true })
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

func (c *Client) matchingSubscribers(match func(name string) bool) []func() {
	ids := make([]uint64, 0, len(c.subs))
	for id, s := range c.subs {
		if match(s.name) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]func(), 0, len(ids))
	for _, id := range ids {
		out = append(out, c.subs[id].fn)
	}
	return out
}

// Subscribe calls fn after every invalidation of name.
func (c *Client) Subscribe(name string, fn func()) func() {
	c.mu.Lock()
	c.nextSub++
	id := c.nextSub
	c.subs[id] = subscription{name: name, fn: fn}
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Watch delivers the current result of name and re-delivers it after every
// invalidation.
func Watch[T any](c *Client, name string, fetch func() (T, error), onChange func(T, error)) func() {
	unsubscribe := c.Subscribe(name, func() {
		onChange(Fetch(c, name, fetch))
	})
	onChange(Fetch(c, name, fetch))
	return unsubscribe
}

// HandleChange maps a storage key change to its topics. Keys without a
// binding are ignored; an empty key invalidates everything.
func (c *Client) HandleChange(ev notify.ChangeEvent) {
	if ev.Key == "" {
		c.logger.Debugf(providers.TypeSync, "Storage cleared, invalidating all queries")
		c.InvalidateAll()
		return
	}
	topics, ok := c.bindings[ev.Key]
	if !ok {
		c.logger.Debugf(providers.TypeSync, "No query bound to %s", ev.Key)
		return
	}
	c.Invalidate(topics...)
}

// Attach subscribes the client to the notifier.
func (c *Client) Attach(n notify.ChangeNotifierInterface) func() {
	return n.Subscribe(c.HandleChange)
}

// Cached lists the names currently holding a fresh result.
func (c *Client) Cached() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.known))
	for name := range c.known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
