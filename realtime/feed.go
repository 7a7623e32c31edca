// api/realtime/feed.go
package realtime

import (
	"context"

	"github.com/fixhub-app/fixhub/api/util"
)

const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// ChangeEvent is a row-level change notification for a named resource table.
type ChangeEvent struct {
	Table string `json:"table"`
	Event string `json:"event"` // INSERT, UPDATE, DELETE
	ID    string `json:"id,omitempty"`
}

// Topic is the event bus topic carrying changes for one table.
func Topic(table string) string {
	return "change." + table
}

// Subscription is a cancellable handle to a feed subscription.
type Subscription interface {
	Unsubscribe()
}

// Feed delivers change notifications for a named table. The wildcard event
// type is implicit: subscribers see every event kind.
type Feed interface {
	Subscribe(table string, fn func(ChangeEvent)) (Subscription, error)
}

// BusFeed adapts the in-process event bus to the Feed interface. DAOs publish
// ChangeEvent payloads on Topic(table) after every mutation.
type BusFeed struct {
	bus *util.EventBus
}

func NewBusFeed(bus *util.EventBus) *BusFeed {
	return &BusFeed{bus: bus}
}

type busSubscription struct {
	bus   *util.EventBus
	topic string
	id    int
}

func (s *busSubscription) Unsubscribe() {
	s.bus.Unsubscribe(s.topic, s.id)
}

func (f *BusFeed) Subscribe(table string, fn func(ChangeEvent)) (Subscription, error) {
	topic := Topic(table)
	id := f.bus.Subscribe(topic, func(_ context.Context, event util.Event) error {
		if change, ok := event.Payload.(ChangeEvent); ok {
			fn(change)
		}
		return nil
	})
	return &busSubscription{bus: f.bus, topic: topic, id: id}, nil
}

// Publish pushes a change event onto the bus.
func (f *BusFeed) Publish(ctx context.Context, change ChangeEvent) {
	f.bus.Publish(ctx, Topic(change.Table), change)
}
