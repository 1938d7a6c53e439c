package notify

import (
	"context"
	"elevate/internal/testutil"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCross struct {
	NoopCrossContext
}

func (failingCross) Publish(_ context.Context, _ ChangeEvent) error {
	return errors.New("broker down")
}

func newTestNotifier(origin string, cross CrossContextChannel) (*ChangeNotifier, *testutil.MockMetrics, *testutil.MockLogger) {
	metrics := testutil.NewMockMetrics()
	logger := &testutil.MockLogger{}
	return NewChangeNotifier(origin, NewLocalChannel(), cross, logger, metrics), metrics, logger
}

func TestChangeNotifier_LocalDeliveryBeforeReturn(t *testing.T) {
	n, metrics, _ := newTestNotifier("tab-1", nil)
	var got []ChangeEvent
	n.Subscribe(func(ev ChangeEvent) { got = append(got, ev) })

	n.Notify("elevate.logbook", []byte(`[]`))

	require.Len(t, got, 1)
	assert.Equal(t, "elevate.logbook", got[0].Key)
	assert.Equal(t, "tab-1", got[0].Origin)
	assert.False(t, got[0].Remote)
	assert.JSONEq(t, `[]`, string(got[0].NewValue))
	assert.Equal(t, uint64(1), n.Published())
	assert.Equal(t, 1, metrics.Notifications["local"])
	assert.Equal(t, 1, metrics.Notifications["cross"])
}

func TestChangeNotifier_EmptyOriginGetsGenerated(t *testing.T) {
	n, _, _ := newTestNotifier("", nil)
	assert.NotEmpty(t, n.Origin())
}

func TestChangeNotifier_CrossFailureIsLoggedNotFatal(t *testing.T) {
	n, metrics, logger := newTestNotifier("tab-1", failingCross{})
	delivered := 0
	n.Subscribe(func(ChangeEvent) { delivered++ })

	n.Notify("elevate.postings", nil)

	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, logger.Count("warn"))
	assert.Zero(t, metrics.Notifications["cross"])
}

func TestChangeNotifier_RunRepublishesRemoteEvents(t *testing.T) {
	hub := NewHub()
	writer, _, _ := newTestNotifier("tab-a", hub.Channel("tab-a"))
	reader, _, _ := newTestNotifier("tab-b", hub.Channel("tab-b"))

	received := make(chan ChangeEvent, 4)
	reader.Subscribe(func(ev ChangeEvent) { received <- ev })
	ownEvents := 0
	writer.Subscribe(func(ChangeEvent) { ownEvents++ })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = reader.Run(ctx) }()
	go func() { _ = writer.Run(ctx) }()

	writer.Notify("elevate.postings", []byte(`[{"id":"p1"}]`))

	select {
	case ev := <-received:
		assert.Equal(t, "elevate.postings", ev.Key)
		assert.Equal(t, "tab-a", ev.Origin)
		assert.True(t, ev.Remote)
	case <-time.After(time.Second):
		t.Fatal("remote event not received")
	}
	assert.Equal(t, uint64(1), reader.Received())

	// the writer only sees its own local event
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, ownEvents)
	assert.Equal(t, uint64(0), writer.Received())
}

func TestEventCodec_RoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	payload, err := encodeEvent(ChangeEvent{Key: "elevate.logbook", NewValue: []byte(`[1]`), Origin: "o", At: at, Remote: true})
	require.NoError(t, err)

	ev, err := decodeEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "elevate.logbook", ev.Key)
	assert.Equal(t, "o", ev.Origin)
	assert.True(t, ev.At.Equal(at))
	assert.False(t, ev.Remote, "remote flag is local only")

	_, err = decodeEvent([]byte("{"))
	assert.Error(t, err)
}
