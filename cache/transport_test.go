// api/cache/transport_test.go
package cache_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixhub-app/fixhub/api/cache"
)

func TestClientGetCachesResponses(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := cache.NewClient(srv.Client(), cache.New(5*time.Minute))

	for i := 0; i < 3; i++ {
		body, err := client.Get(context.Background(), srv.URL+"/status")
		require.NoError(t, err)
		assert.Equal(t, `{"ok":true}`, string(body))
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestClientGetServesStaleOnUpstreamFailure(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	clock := &fakeClock{now: time.Now()}
	client := cache.NewClient(srv.Client(), cache.New(time.Minute, cache.WithClock(clock.Now)))

	body, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(body))

	// Entry expires, upstream starts failing: the stale payload survives.
	clock.Advance(2 * time.Minute)
	fail.Store(true)

	body, err = client.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(body))
}

func TestClientGetPropagatesFailureWithoutPriorEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := cache.NewClient(srv.Client(), cache.New(time.Minute))

	_, err := client.Get(context.Background(), srv.URL)
	assert.Error(t, err)
}
