package notify

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/atomic"
)

const hubQueueSize = 256

var ErrChannelClosed = errors.New("channel closed")

// Hub connects several contexts living in one process. Delivery is
// asynchronous and skips the publishing context. A member whose queue is
// full loses the event instead of stalling the publisher.
type Hub struct {
	mu      sync.RWMutex
	members map[string]*HubChannel
}

func NewHub() *Hub {
	return &Hub{members: make(map[string]*HubChannel)}
}

// Channel joins the hub as origin.
func (h *Hub) Channel(origin string) *HubChannel {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := &HubChannel{
		hub:    h,
		origin: origin,
		queue:  make(chan ChangeEvent, hubQueueSize),
		done:   make(chan struct{}),
	}
	h.members[origin] = ch
	return ch
}

func (h *Hub) leave(origin string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.members, origin)
}

func (h *Hub) others(origin string) []*HubChannel {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*HubChannel, 0, len(h.members))
	for o, m := range h.members {
		if o != origin {
			out = append(out, m)
		}
	}
	return out
}

type HubChannel struct {
	hub       *Hub
	origin    string
	queue     chan ChangeEvent
	done      chan struct{}
	closeOnce sync.Once
	dropped   atomic.Uint64
}

func (c *HubChannel) Publish(_ context.Context, ev ChangeEvent) error {
	for _, m := range c.hub.others(c.origin) {
		select {
		case m.queue <- ev:
		case <-m.done:
		default:
			m.dropped.Inc()
		}
	}
	return nil
}

// Dropped reports how many events addressed to this member were lost to a
// full queue.
func (c *HubChannel) Dropped() uint64 {
	return c.dropped.Load()
}

func (c *HubChannel) Listen(ctx context.Context, h Handler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.done:
			return ErrChannelClosed
		case ev := <-c.queue:
			h(ev)
		}
	}
}

func (c *HubChannel) Close() error {
	c.closeOnce.Do(func() {
		c.hub.leave(c.origin)
		close(c.done)
	})
	return nil
}
