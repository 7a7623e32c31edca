// api/realtime/bridge.go
package realtime

import (
	"sync"

	"go.uber.org/zap"

	"github.com/fixhub-app/fixhub/api/cache"
	logger "github.com/fixhub-app/fixhub/api/logging"
)

type BridgeState int

const (
	StateInactive BridgeState = iota
	StateSubscribing
	StateActive
	StateError
	StateClosed
)

// Bridge subscribes to the change feed for one resource and invalidates the
// resource's cached list and detail entries, plus the dashboard metrics
// aggregate, on every change event. On a subscribe error the bridge stays
// un-updated until the next Start; there is no retry loop here.
type Bridge struct {
	feed     Feed
	cache    *cache.FetchCache
	resource string

	mu        sync.Mutex
	state     BridgeState
	mounted   bool
	sub       Subscription
	closeOnce sync.Once
}

func NewBridge(feed Feed, fetchCache *cache.FetchCache, resource string) *Bridge {
	return &Bridge{
		feed:     feed,
		cache:    fetchCache,
		resource: resource,
		state:    StateInactive,
	}
}

// Start subscribes to the feed. Safe to call once per bridge.
func (b *Bridge) Start() error {
	b.mu.Lock()
	b.state = StateSubscribing
	b.mu.Unlock()

	sub, err := b.feed.Subscribe(b.resource, b.onChange)
	if err != nil {
		b.mu.Lock()
		b.state = StateError
		b.mu.Unlock()
		// Verbose only in development builds.
		logger.Debug("Change feed subscription failed",
			zap.String("resource", b.resource),
			zap.Error(err))
		return err
	}

	b.mu.Lock()
	b.sub = sub
	b.state = StateActive
	b.mounted = true
	b.mu.Unlock()
	return nil
}

// onChange drops the cached entries derived from the resource. The mounted
// flag guards against invalidations delivered after teardown began.
func (b *Bridge) onChange(change ChangeEvent) {
	b.mu.Lock()
	mounted := b.mounted
	b.mu.Unlock()
	if !mounted {
		return
	}

	b.cache.InvalidatePrefix(cache.ResourcePrefix(b.resource))
	b.cache.Invalidate(cache.MetricsKey())

	logger.Debug("Invalidated cached queries",
		zap.String("resource", b.resource),
		zap.String("event", change.Event),
		zap.String("id", change.ID))
}

// State reports the bridge lifecycle state.
func (b *Bridge) State() BridgeState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Close unsubscribes exactly once. Further change events are ignored even if
// the feed delivers them concurrently with teardown.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.mounted = false
		sub := b.sub
		b.state = StateClosed
		b.mu.Unlock()

		if sub != nil {
			sub.Unsubscribe()
		}
	})
}
