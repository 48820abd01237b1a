package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher for probe event broadcasting.
// A nil *Bus is valid and drops every publish, so the engine can run
// without any subscriber wired up.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
// Usage: bus.Publish(EndpointIgnoredEvent{...})
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	// kelindar/event dispatches on the concrete type, so fan out explicitly.
	switch e := ev.(type) {
	case EndpointIgnoredEvent:
		event.Publish(b.dispatcher, e)
	case EndpointDemotedEvent:
		event.Publish(b.dispatcher, e)
	case EndpointVerifiedEvent:
		event.Publish(b.dispatcher, e)
	case DiscoveryDoneEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes a handler function; the handler's parameter type
// selects which events it receives. Returns an unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e EndpointIgnoredEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	if b == nil {
		return func() {}
	}
	switch h := handler.(type) {
	case func(EndpointIgnoredEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(EndpointDemotedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(EndpointVerifiedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(DiscoveryDoneEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}
