// Package ports define the EventBus interface for event-driven communication.
// Capture, playback and the waveform renderer only ever meet on the bus.
package ports

import (
	"github.com/tejashwikalptaru/gowave/internal/domain"
)

// EventBus is the interface for publishing and subscribing to events.
//
// Thread-safety: Implementations must be thread-safe as events may be published and
// subscribed from multiple goroutines simultaneously.
//
// Example usage:
//
//	// In the capture adapter: Publish an event
//	bus.Publish(domain.NewCaptureStartedEvent(frameSize))
//
//	// In the waveform service: Subscribe to events
//	subID := bus.Subscribe(domain.EventCaptureStopped, func(event domain.Event) {
//	    svc.resetLive()
//	})
//
//	// Later: Unsubscribe
//	bus.Unsubscribe(subID)
type EventBus interface {
	// Publish publishes an event to all subscribers of that event type.
	// Handlers must return quickly; the frame loop publishes on every tick.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type.
	// Returns a SubscriptionID that can be used to unsubscribe later.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a previously registered event handler.
	// If the subscription ID is invalid or already unsubscribed, this is a no-op.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler that receives all events regardless of type.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers returns true if there are any active subscriptions for the given event type.
	// The waveform service uses it to skip copying a snapshot nobody will read.
	HasSubscribers(eventType domain.EventType) bool

	// Close shuts down the event bus and cleans up resources.
	Close() error
}

// EventFilter is a function that determines if an event should be delivered to a subscriber.
type EventFilter func(event domain.Event) bool

// FilteringEventBus extends EventBus with filtered subscriptions.
type FilteringEventBus interface {
	EventBus

	// SubscribeFiltered registers a handler with a filter function.
	// The handler will only be called for events that pass the filter.
	//
	// Example: only repaint for recordings that came from a file
	//	bus.SubscribeFiltered(domain.EventRecordingLoaded, func(e domain.Event) bool {
	//	    return e.(domain.RecordingLoadedEvent).Preloaded
	//	}, handleLoaded)
	SubscribeFiltered(eventType domain.EventType, filter EventFilter, handler domain.EventHandler) domain.SubscriptionID
}
