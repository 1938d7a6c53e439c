package notify

import "sync"

// LocalChannel fans events out synchronously to the handlers registered in
// this context, in registration order.
type LocalChannel struct {
	mu       sync.RWMutex
	next     uint64
	ids      []uint64
	handlers map[uint64]Handler
}

func NewLocalChannel() *LocalChannel {
	return &LocalChannel{handlers: make(map[uint64]Handler)}
}

func (c *LocalChannel) Subscribe(h Handler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.next++
	id := c.next
	c.ids = append(c.ids, id)
	c.handlers[id] = h

	var once sync.Once
	return func() {
		once.Do(func() { c.unsubscribe(id) })
	}
}

func (c *LocalChannel) unsubscribe(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.handlers, id)
	for i, v := range c.ids {
		if v == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
}

// Publish returns after every handler has run. Handlers are called outside
// the lock, so they may subscribe or unsubscribe.
func (c *LocalChannel) Publish(ev ChangeEvent) {
	c.mu.RLock()
	handlers := make([]Handler, 0, len(c.ids))
	for _, id := range c.ids {
		handlers = append(handlers, c.handlers[id])
	}
	c.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}

func (c *LocalChannel) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ids)
}
