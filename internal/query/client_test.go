package query

import (
	"context"
	"elevate/internal/models"
	"elevate/internal/notify"
	"elevate/internal/testutil"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() (*Client, *testutil.MockMetrics, *testutil.MockLogger) {
	metrics := testutil.NewMockMetrics()
	logger := &testutil.MockLogger{}
	return NewClient(testutil.NewMockCache(), DefaultBindings(), logger, metrics), metrics, logger
}

func counter(values ...[]string) (func() ([]string, error), *int) {
	calls := 0
	return func() ([]string, error) {
		v := values[min(calls, len(values)-1)]
		calls++
		return v, nil
	}, &calls
}

func TestFetch_CachesUntilInvalidated(t *testing.T) {
	c, _, _ := newTestClient()
	fetch, calls := counter([]string{"a"}, []string{"a", "b"})

	v, err := Fetch(c, TopicPostings, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, v)

	v, _ = Fetch(c, TopicPostings, fetch)
	assert.Equal(t, []string{"a"}, v)
	assert.Equal(t, 1, *calls)

	c.Invalidate(TopicPostings)
	v, _ = Fetch(c, TopicPostings, fetch)
	assert.Equal(t, []string{"a", "b"}, v)
	assert.Equal(t, 2, *calls)
}

func TestFetch_ErrorIsNotCached(t *testing.T) {
	c, _, _ := newTestClient()
	fail := true
	fetch := func() (int, error) {
		if fail {
			return 0, errors.New("boom")
		}
		return 7, nil
	}

	_, err := Fetch(c, TopicCredits, fetch)
	assert.Error(t, err)
	assert.Empty(t, c.Cached())

	fail = false
	v, err := Fetch(c, TopicCredits, fetch)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestFetch_InvalidatedDuringFetchIsNotCached(t *testing.T) {
	c, _, _ := newTestClient()
	calls := 0
	fetch := func() (int, error) {
		calls++
		if calls == 1 {
			c.Invalidate(TopicLogbook)
		}
		return calls, nil
	}

	v, _ := Fetch(c, TopicLogbook, fetch)
	assert.Equal(t, 1, v)
	v, _ = Fetch(c, TopicLogbook, fetch)
	assert.Equal(t, 2, v)
}

func TestInvalidate_CoversParameterisedChildren(t *testing.T) {
	c, _, _ := newTestClient()
	fetch, _ := counter([]string{"x"})

	_, _ = Fetch(c, Name(TopicModuleProgress, "asha"), fetch)
	_, _ = Fetch(c, Name(TopicModuleProgress, "ben"), fetch)
	_, _ = Fetch(c, TopicModules, fetch)
	_, _ = Fetch(c, "moduleProgressArchive", fetch)

	c.Invalidate(TopicModuleProgress)

	assert.Equal(t, []string{"moduleProgressArchive", TopicModules}, c.Cached())
}

func TestMutate_InvalidatesOnlyOnSuccess(t *testing.T) {
	c, _, _ := newTestClient()
	fetch, _ := counter([]string{"x"})
	_, _ = Fetch(c, TopicApplications, fetch)

	err := Mutate(c, func() error { return errors.New("rejected") }, TopicApplications)
	assert.Error(t, err)
	assert.Equal(t, []string{TopicApplications}, c.Cached())

	require.NoError(t, Mutate(c, func() error { return nil }, TopicApplications))
	assert.Empty(t, c.Cached())
}

func TestSubscribe_CalledOnInvalidation(t *testing.T) {
	c, _, _ := newTestClient()
	calls := 0
	unsubscribe := c.Subscribe(Name(TopicNotifications, "student"), func() { calls++ })

	c.Invalidate(TopicNotifications)
	c.Invalidate(TopicPostings)
	assert.Equal(t, 1, calls)

	unsubscribe()
	c.Invalidate(TopicNotifications)
	assert.Equal(t, 1, calls)
}

func TestWatch_RedeliversFreshResult(t *testing.T) {
	c, _, _ := newTestClient()
	fetch, _ := counter([]string{"v1"}, []string{"v1", "v2"})

	var seen [][]string
	stop := Watch(c, TopicEvents, fetch, func(v []string, err error) {
		require.NoError(t, err)
		seen = append(seen, v)
	})
	defer stop()

	c.HandleChange(notify.ChangeEvent{Key: models.KeyEvents})

	assert.Equal(t, [][]string{{"v1"}, {"v1", "v2"}}, seen)
}

func TestHandleChange_MapsKeysToTopics(t *testing.T) {
	c, metrics, _ := newTestClient()
	fetch, _ := counter([]string{"x"})
	_, _ = Fetch(c, TopicPostings, fetch)
	_, _ = Fetch(c, TopicApplications, fetch)
	_, _ = Fetch(c, Name(TopicCredits, "asha"), fetch)

	c.HandleChange(notify.ChangeEvent{Key: models.KeyLogbook})
	assert.Equal(t, []string{TopicApplications, TopicPostings}, c.Cached())

	c.HandleChange(notify.ChangeEvent{Key: models.KeyApplications})
	assert.Empty(t, c.Cached())
	assert.Equal(t, 1, metrics.Invalidations[TopicApplications])
}

func TestHandleChange_UnmappedKeyIsIgnored(t *testing.T) {
	c, metrics, logger := newTestClient()
	fetch, _ := counter([]string{"x"})
	_, _ = Fetch(c, TopicPostings, fetch)

	c.HandleChange(notify.ChangeEvent{Key: "elevate.theme"})

	assert.Equal(t, []string{TopicPostings}, c.Cached())
	assert.Empty(t, metrics.Invalidations)
	assert.Equal(t, 1, logger.Count("debug"))
}

func TestHandleChange_EmptyKeyInvalidatesEverything(t *testing.T) {
	c, _, _ := newTestClient()
	fetch, _ := counter([]string{"x"})
	_, _ = Fetch(c, TopicPostings, fetch)
	_, _ = Fetch(c, Name(TopicProfiles, "asha"), fetch)
	calls := 0
	c.Subscribe(TopicBadges, func() { calls++ })

	c.HandleChange(notify.ChangeEvent{Key: ""})

	assert.Empty(t, c.Cached())
	assert.Equal(t, 1, calls)
}

func TestAttach_InvalidatesAcrossContexts(t *testing.T) {
	hub := notify.NewHub()
	metrics := testutil.NewMockMetrics()
	logger := &testutil.MockLogger{}
	tabA := notify.NewChangeNotifier("a", notify.NewLocalChannel(), hub.Channel("a"), logger, metrics)
	tabB := notify.NewChangeNotifier("b", notify.NewLocalChannel(), hub.Channel("b"), logger, metrics)

	clientB, _, _ := newTestClient()
	clientB.Attach(tabB)
	refreshed := make(chan struct{}, 1)
	clientB.Subscribe(TopicPostings, func() { refreshed <- struct{}{} })

	fetch, _ := counter([]string{"x"})
	_, _ = Fetch(clientB, TopicPostings, fetch)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = tabB.Run(ctx) }()

	tabA.Notify(models.KeyPostings, []byte(`[]`))

	select {
	case <-refreshed:
	case <-time.After(time.Second):
		t.Fatal("tab B was not invalidated")
	}
	assert.Empty(t, clientB.Cached())
}

func TestName(t *testing.T) {
	assert.Equal(t, "postings", Name(TopicPostings, ""))
	assert.Equal(t, "credits:asha", Name(TopicCredits, "asha"))
	assert.True(t, covers("credits", "credits:asha"))
	assert.False(t, covers("credits", "creditsx"))
	assert.False(t, covers("credits:asha", "credits"))
}
