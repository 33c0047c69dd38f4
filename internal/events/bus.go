package events

import (
	"fmt"
	"log/slog"

	"github.com/kelindar/event"
	"github.com/smazurov/glyphd/internal/logging"
)

// Bus carries host events to the engine and engine state to API clients.
// Each subscriber receives its events serially, in publish order. Order
// across event types holds only for HostEvent subscribers.
type Bus struct {
	dispatcher *event.Dispatcher
	logger     *slog.Logger
}

// New creates a new event bus
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
		logger:     logging.GetLogger("events"),
	}
}

// Publish delivers ev to the subscribers of its concrete type. Host events
// then go to HostEvent subscribers; a HostEvent is unwrapped first.
// Usage: bus.Publish(CommandEvent{Command: "PHONE_LOCKED"})
func (b *Bus) Publish(ev Event) {
	switch e := ev.(type) {
	case NotificationPostedEvent:
		event.Publish(b.dispatcher, e)
		event.Publish(b.dispatcher, HostEvent{Event: e})
	case NotificationRemovedEvent:
		event.Publish(b.dispatcher, e)
		event.Publish(b.dispatcher, HostEvent{Event: e})
	case CommandEvent:
		event.Publish(b.dispatcher, e)
		event.Publish(b.dispatcher, HostEvent{Event: e})
	case DriverStateEvent:
		event.Publish(b.dispatcher, e)
		event.Publish(b.dispatcher, HostEvent{Event: e})
	case ZonesChangedEvent:
		event.Publish(b.dispatcher, e)
	case HostEvent:
		b.Publish(e.Event)
	default:
		b.logger.Warn("Dropping event of unknown type", "type", fmt.Sprintf("%T", ev))
	}
}

// Subscribe registers handler for the event type of its argument and returns
// an unsubscribe function. Handlers of an unknown shape are never called.
// Usage: unsub := bus.Subscribe(func(e CommandEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(NotificationPostedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(NotificationRemovedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(CommandEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ZonesChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(DriverStateEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(HostEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		b.logger.Warn("Ignoring subscription with unsupported handler", "type", fmt.Sprintf("%T", handler))
		return func() {}
	}
}
