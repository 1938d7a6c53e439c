package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listen(t *testing.T, ch CrossContextChannel) (<-chan ChangeEvent, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan ChangeEvent, 16)
	go func() { _ = ch.Listen(ctx, func(ev ChangeEvent) { out <- ev }) }()
	t.Cleanup(cancel)
	return out, cancel
}

func TestHub_DeliversToOtherContextsOnly(t *testing.T) {
	hub := NewHub()
	a := hub.Channel("a")
	b := hub.Channel("b")
	c := hub.Channel("c")

	fromA, _ := listen(t, a)
	fromB, _ := listen(t, b)
	fromC, _ := listen(t, c)

	require.NoError(t, a.Publish(context.Background(), ChangeEvent{Key: "elevate.postings", Origin: "a"}))

	for _, got := range []<-chan ChangeEvent{fromB, fromC} {
		select {
		case ev := <-got:
			assert.Equal(t, "elevate.postings", ev.Key)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
	select {
	case ev := <-fromA:
		t.Fatalf("origin received its own event %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubChannel_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	a := hub.Channel("a")
	slow := hub.Channel("slow")
	fast := hub.Channel("fast")
	fromFast, _ := listen(t, fast)

	for i := 0; i < hubQueueSize; i++ {
		require.NoError(t, a.Publish(context.Background(), ChangeEvent{Key: "fill"}))
	}
	for i := 0; i < hubQueueSize; i++ {
		<-fromFast
	}

	done := make(chan error, 1)
	go func() { done <- a.Publish(context.Background(), ChangeEvent{Key: "elevate.logbook"}) }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full member")
	}

	assert.Equal(t, uint64(1), slow.Dropped())
	assert.Zero(t, fast.Dropped())
	select {
	case ev := <-fromFast:
		assert.Equal(t, "elevate.logbook", ev.Key)
	case <-time.After(time.Second):
		t.Fatal("event not delivered to the listening member")
	}
}

func TestHubChannel_CloseLeavesHub(t *testing.T) {
	hub := NewHub()
	a := hub.Channel("a")
	b := hub.Channel("b")

	require.NoError(t, b.Close())
	assert.Empty(t, hub.others("a"))

	err := b.Listen(context.Background(), func(ChangeEvent) {})
	assert.ErrorIs(t, err, ErrChannelClosed)

	assert.NoError(t, a.Publish(context.Background(), ChangeEvent{Key: "k"}))
}

func TestNoopCrossContext_ListenReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NoopCrossContext{}.Listen(ctx, func(ChangeEvent) {}) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("listen did not return")
	}
}
