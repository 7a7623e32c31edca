// api/cache/fetch_cache_test.go
package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixhub-app/fixhub/api/cache"
	logger "github.com/fixhub-app/fixhub/api/logging"
)

func TestMain(m *testing.M) {
	logger.InitLogger("../logging")
	defer logger.Sync()
	m.Run()
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func TestFetchWithinTTLPerformsOneCall(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := cache.New(5*time.Minute, cache.WithClock(clock.Now))

	calls := 0
	do := func(ctx context.Context) ([]byte, error) {
		calls++
		return []byte(`{"ok":true}`), nil
	}

	key := cache.Key("GET", "/api/v1/tickets")
	first, err := c.Fetch(context.Background(), key, do)
	require.NoError(t, err)

	clock.Advance(4 * time.Minute)
	second, err := c.Fetch(context.Background(), key, do)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestFetchRefreshesAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := cache.New(5*time.Minute, cache.WithClock(clock.Now))

	calls := 0
	do := func(ctx context.Context) ([]byte, error) {
		calls++
		return []byte{byte(calls)}, nil
	}

	key := cache.Key("GET", "/api/v1/products")
	_, err := c.Fetch(context.Background(), key, do)
	require.NoError(t, err)

	clock.Advance(5*time.Minute + time.Second)
	payload, err := c.Fetch(context.Background(), key, do)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, []byte{2}, payload)
}

func TestFetchServesStaleOnRefreshFailure(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := cache.New(5*time.Minute, cache.WithClock(clock.Now))

	key := cache.Key("GET", "/api/v1/orders")
	_, err := c.Fetch(context.Background(), key, func(ctx context.Context) ([]byte, error) {
		return []byte("stale-but-usable"), nil
	})
	require.NoError(t, err)

	clock.Advance(time.Hour)
	payload, err := c.Fetch(context.Background(), key, func(ctx context.Context) ([]byte, error) {
		return nil, errors.New("upstream down")
	})

	assert.NoError(t, err)
	assert.Equal(t, []byte("stale-but-usable"), payload)
}

func TestFetchPropagatesFailureWithoutPriorEntry(t *testing.T) {
	c := cache.New(5 * time.Minute)

	upstreamErr := errors.New("upstream down")
	_, err := c.Fetch(context.Background(), "GET /api/v1/customers", func(ctx context.Context) ([]byte, error) {
		return nil, upstreamErr
	})

	assert.ErrorIs(t, err, upstreamErr)
}

func TestClearForcesNetworkCall(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := cache.New(5*time.Minute, cache.WithClock(clock.Now))

	calls := 0
	do := func(ctx context.Context) ([]byte, error) {
		calls++
		return []byte("payload"), nil
	}

	key := cache.Key("GET", "/api/v1/secondhand")
	_, err := c.Fetch(context.Background(), key, do)
	require.NoError(t, err)

	c.Clear()

	// No time has passed; only the clear can explain a second call.
	_, err = c.Fetch(context.Background(), key, do)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestInvalidatePrefixDropsListAndDetail(t *testing.T) {
	c := cache.New(5 * time.Minute)

	do := func(ctx context.Context) ([]byte, error) {
		return []byte("x"), nil
	}

	_, _ = c.Fetch(context.Background(), cache.ListKey("tickets", 1, 10), do)
	_, _ = c.Fetch(context.Background(), cache.DetailKey("tickets", "t-1"), do)
	_, _ = c.Fetch(context.Background(), cache.ListKey("products", 1, 10), do)
	require.Equal(t, 3, c.Len())

	c.InvalidatePrefix(cache.ResourcePrefix("tickets"))

	assert.Equal(t, 1, c.Len())
}

func TestSuccessfulRefreshOverwritesRegardlessOfFreshness(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := cache.New(5*time.Minute, cache.WithClock(clock.Now))

	key := cache.Key("GET", "/api/v1/tickets/t-9")
	_, _ = c.Fetch(context.Background(), key, func(ctx context.Context) ([]byte, error) {
		return []byte("v1"), nil
	})

	c.Invalidate(key)
	payload, err := c.Fetch(context.Background(), key, func(ctx context.Context) ([]byte, error) {
		return []byte("v2"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), payload)
}
