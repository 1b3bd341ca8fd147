package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// EventBus is a synchronous event bus. Publishing runs every handler
// inline on the caller's goroutine; the simulation is single-threaded,
// so handlers observe a consistent grid.
type EventBus struct {
	mu           sync.RWMutex
	subscribers  map[string]Subscriber
	funcHandlers map[string][]Handler
	logger       zerolog.Logger
}

// NewEventBus creates a new event bus instance.
func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		subscribers:  make(map[string]Subscriber),
		funcHandlers: make(map[string][]Handler),
		logger:       logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a new subscriber to the event bus.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers[subscriber.ID()] = subscriber
	eb.logger.Debug().
		Str("subscriber_id", subscriber.ID()).
		Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber from the event bus.
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	delete(eb.subscribers, subscriberID)
}

// SubscribeFunc adds a function handler for a specific event type.
func (eb *EventBus) SubscribeFunc(eventType string, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], handler)
}

// Publish sends an event to all interested subscribers synchronously.
// A panicking handler is isolated so it cannot break the others.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	eventType := event.Type()

	for id, subscriber := range eb.subscribers {
		if !subscriber.InterestedIn(eventType) {
			continue
		}
		eb.deliver(id, eventType, func() { subscriber.HandleEvent(event) })
	}
	for _, handler := range eb.funcHandlers[eventType] {
		h := handler
		eb.deliver("func", eventType, func() { h(event) })
	}
}

func (eb *EventBus) deliver(id, eventType string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("subscriber_id", id).
				Str("event_type", eventType).
				Interface("panic", r).
				Msg("Subscriber panicked while handling event")
		}
	}()
	fn()
}

// NopBus discards every event; used where no observers are wired.
type NopBus struct{}

func (NopBus) Publish(Event)                 {}
func (NopBus) Subscribe(Subscriber)          {}
func (NopBus) Unsubscribe(string)            {}
func (NopBus) SubscribeFunc(string, Handler) {}
