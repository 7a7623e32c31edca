// api/util/event_bus.go

package util

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	logger "github.com/fixhub-app/fixhub/api/logging"
)

// Event represents an event in the system
type Event struct {
	Type    string
	Payload interface{}
}

// EventHandler is a function that handles an event
type EventHandler func(context.Context, Event) error

// EventBus manages event subscriptions and publications. Handlers run on
// their own goroutines; subscribers are tracked by id so the same handler
// function can be registered more than once and removed individually.
type EventBus struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[string]map[int]EventHandler
	errorChan   chan error
}

// NewEventBus creates a new EventBus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string]map[int]EventHandler),
		errorChan:   make(chan error, 100),
	}
}

// Subscribe adds a subscriber for an event type and returns its id.
func (eb *EventBus) Subscribe(eventType string, handler EventHandler) int {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	if eb.subscribers[eventType] == nil {
		eb.subscribers[eventType] = make(map[int]EventHandler)
	}
	eb.subscribers[eventType][eb.nextID] = handler
	return eb.nextID
}

// Unsubscribe removes the subscriber with the given id.
func (eb *EventBus) Unsubscribe(eventType string, id int) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	delete(eb.subscribers[eventType], id)
}

// Publish sends an event to all subscribers
func (eb *EventBus) Publish(ctx context.Context, eventType string, payload interface{}) {
	eb.mu.RLock()
	handlers := make([]EventHandler, 0, len(eb.subscribers[eventType]))
	for _, handler := range eb.subscribers[eventType] {
		handlers = append(handlers, handler)
	}
	eb.mu.RUnlock()

	event := Event{
		Type:    eventType,
		Payload: payload,
	}

	for _, handler := range handlers {
		go func(h EventHandler) {
			if err := h(ctx, event); err != nil {
				select {
				case eb.errorChan <- fmt.Errorf("event handler error: %w", err):
				default:
					logger.Error("Error channel full, logging event handler error",
						zap.Error(err),
						zap.String("eventType", eventType))
				}
			}
		}(handler)
	}
}

// Start begins processing events and handling errors
func (eb *EventBus) Start(ctx context.Context) {
	go eb.processErrors(ctx)
}

// processErrors handles errors from event handlers
func (eb *EventBus) processErrors(ctx context.Context) {
	for {
		select {
		case err := <-eb.errorChan:
			logger.Error("Event handler error", zap.Error(err))
		case <-ctx.Done():
			return
		}
	}
}

// SubscriberCount reports how many handlers are registered for an event type
func (eb *EventBus) SubscriberCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers[eventType])
}
