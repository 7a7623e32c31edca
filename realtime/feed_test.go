// api/realtime/feed_test.go
package realtime_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixhub-app/fixhub/api/realtime"
	"github.com/fixhub-app/fixhub/api/util"
)

func TestBusFeedDeliversChangeEvents(t *testing.T) {
	bus := util.NewEventBus()
	feed := realtime.NewBusFeed(bus)

	var delivered atomic.Int32
	_, err := feed.Subscribe("tickets", func(change realtime.ChangeEvent) {
		if change.Table == "tickets" && change.ID == "t-1" {
			delivered.Add(1)
		}
	})
	require.NoError(t, err)

	feed.Publish(context.Background(), realtime.ChangeEvent{
		Table: "tickets",
		Event: realtime.EventInsert,
		ID:    "t-1",
	})

	assert.Eventually(t, func() bool {
		return delivered.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestBusFeedUnsubscribeStopsDelivery(t *testing.T) {
	bus := util.NewEventBus()
	feed := realtime.NewBusFeed(bus)

	sub, err := feed.Subscribe("orders", func(change realtime.ChangeEvent) {})
	require.NoError(t, err)
	require.Equal(t, 1, bus.SubscriberCount(realtime.Topic("orders")))

	sub.Unsubscribe()

	assert.Equal(t, 0, bus.SubscriberCount(realtime.Topic("orders")))
}
