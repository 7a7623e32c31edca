// api/realtime/bridge_test.go
package realtime_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixhub-app/fixhub/api/cache"
	logger "github.com/fixhub-app/fixhub/api/logging"
	"github.com/fixhub-app/fixhub/api/realtime"
)

func TestMain(m *testing.M) {
	logger.InitLogger("../logging")
	defer logger.Sync()
	m.Run()
}

// fakeFeed delivers events synchronously so tests need no sleeps.
type fakeFeed struct {
	mu       sync.Mutex
	handlers map[string][]func(realtime.ChangeEvent)
	unsubs   int
	failNext bool
}

type fakeSub struct {
	feed *fakeFeed
}

func (s *fakeSub) Unsubscribe() {
	s.feed.mu.Lock()
	s.feed.unsubs++
	s.feed.mu.Unlock()
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{handlers: make(map[string][]func(realtime.ChangeEvent))}
}

func (f *fakeFeed) Subscribe(table string, fn func(realtime.ChangeEvent)) (realtime.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		return nil, errors.New("feed unavailable")
	}
	f.handlers[table] = append(f.handlers[table], fn)
	return &fakeSub{feed: f}, nil
}

func (f *fakeFeed) Emit(change realtime.ChangeEvent) {
	f.mu.Lock()
	handlers := append([]func(realtime.ChangeEvent){}, f.handlers[change.Table]...)
	f.mu.Unlock()
	for _, fn := range handlers {
		fn(change)
	}
}

func seed(t *testing.T, c *cache.FetchCache, keys ...string) {
	t.Helper()
	for _, key := range keys {
		_, err := c.Fetch(context.Background(), key, func(ctx context.Context) ([]byte, error) {
			return []byte("x"), nil
		})
		require.NoError(t, err)
	}
}

func TestBridgeInvalidatesOnChangeEvent(t *testing.T) {
	feed := newFakeFeed()
	c := cache.New(5 * time.Minute)
	bridge := realtime.NewBridge(feed, c, "tickets")
	require.NoError(t, bridge.Start())
	defer bridge.Close()

	seed(t, c,
		cache.ListKey("tickets", 1, 10),
		cache.DetailKey("tickets", "t-1"),
		cache.MetricsKey(),
		cache.ListKey("products", 1, 10),
	)
	require.Equal(t, 4, c.Len())

	feed.Emit(realtime.ChangeEvent{Table: "tickets", Event: realtime.EventUpdate, ID: "t-1"})

	// Ticket list, ticket detail and the metrics aggregate are gone; the
	// unrelated products list survives.
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, realtime.StateActive, bridge.State())
}

func TestBridgeIgnoresEventsAfterClose(t *testing.T) {
	feed := newFakeFeed()
	c := cache.New(5 * time.Minute)
	bridge := realtime.NewBridge(feed, c, "orders")
	require.NoError(t, bridge.Start())

	seed(t, c, cache.ListKey("orders", 1, 10))
	bridge.Close()

	feed.Emit(realtime.ChangeEvent{Table: "orders", Event: realtime.EventInsert, ID: "o-1"})

	assert.Equal(t, 1, c.Len(), "no invalidation after teardown")
	assert.Equal(t, realtime.StateClosed, bridge.State())
}

func TestBridgeCloseUnsubscribesExactlyOnce(t *testing.T) {
	feed := newFakeFeed()
	bridge := realtime.NewBridge(feed, cache.New(5*time.Minute), "customers")
	require.NoError(t, bridge.Start())

	bridge.Close()
	bridge.Close()
	bridge.Close()

	feed.mu.Lock()
	defer feed.mu.Unlock()
	assert.Equal(t, 1, feed.unsubs)
}

func TestBridgeSubscribeErrorEntersErrorState(t *testing.T) {
	feed := newFakeFeed()
	feed.failNext = true
	bridge := realtime.NewBridge(feed, cache.New(5*time.Minute), "products")

	err := bridge.Start()

	assert.Error(t, err)
	assert.Equal(t, realtime.StateError, bridge.State())
}
