// api/cache/fetch_cache.go
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	logger "github.com/fixhub-app/fixhub/api/logging"
)

// Entry is a cached payload and the time it was stored. An entry past the TTL
// is stale but never evicted: staleness only decides whether a refresh is
// attempted before serving it.
type Entry struct {
	Payload  []byte
	StoredAt time.Time
}

// DoFunc performs the real request when the cache cannot answer from memory.
type DoFunc func(ctx context.Context) ([]byte, error)

// FetchCache is a read-through cache with stale-while-error fallback. It is
// owned by the composition root and passed by reference; the clock is
// injectable so freshness can be tested without sleeping.
type FetchCache struct {
	mu      sync.Mutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time
}

type Option func(*FetchCache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *FetchCache) {
		c.now = now
	}
}

func New(ttl time.Duration, opts ...Option) *FetchCache {
	c := &FetchCache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key derives the cache key from HTTP method and URL. Request bodies are not
// part of the key, which is why callers should only route idempotent GET
// requests through the cache.
func Key(method, url string) string {
	return strings.ToUpper(method) + " " + url
}

// Fetch returns the cached payload when the entry is younger than the TTL.
// Otherwise it runs do; on success the entry is overwritten regardless of its
// previous freshness. On failure a prior entry of any age is served instead of
// the error, and the error only propagates when there is nothing to fall back
// to.
func (c *FetchCache) Fetch(ctx context.Context, key string, do DoFunc) ([]byte, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	fresh := ok && c.now().Sub(entry.StoredAt) < c.ttl
	c.mu.Unlock()

	if fresh {
		logger.Debug("Cache hit", zap.String("key", key))
		return entry.Payload, nil
	}

	payload, err := do(ctx)
	if err != nil {
		if ok {
			logger.Warn("Refresh failed, serving stale entry",
				zap.String("key", key),
				zap.Error(err))
			return entry.Payload, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = Entry{Payload: payload, StoredAt: c.now()}
	c.mu.Unlock()

	return payload, nil
}

// Invalidate removes a single key so the next Fetch refreshes it.
func (c *FetchCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidatePrefix removes every key that starts with prefix. Used by the
// real-time bridge to drop list and detail entries of one resource at once.
func (c *FetchCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// Clear drops the whole cache.
func (c *FetchCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]Entry)
	c.mu.Unlock()
}

// Len reports the number of cached entries.
func (c *FetchCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
