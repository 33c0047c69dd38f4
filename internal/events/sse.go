package events

import "github.com/kelindar/event"

// SubscribeToChannel bridges kelindar/event callback-based subscriptions to channels
// for SSE handlers, where Huma expects a channel-based select loop.
// Events are dropped while ch is full.
func SubscribeToChannel[T Event](bus *Bus, ch chan<- any) func() {
	return event.Subscribe(bus.dispatcher, func(e T) {
		select {
		case ch <- e:
		default:
		}
	})
}
