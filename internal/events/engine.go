package events

import (
	"time"

	"github.com/smazurov/glyphd/internal/glyph"
)

// EngineHandler is the part of glyph.Engine driven by bus events.
type EngineHandler interface {
	HandlePosted(glyph.PostedEvent)
	HandleRemoved(glyph.RemovedEvent)
	HandleCommand(glyph.Command, *int)
	OnDriverConnected()
	OnDriverDisconnected()
}

// BindEngine subscribes engine to host events on bus. All host events share
// one subscriber, so the engine handles them in publish order. The returned
// function unsubscribes it.
func BindEngine(bus *Bus, engine EngineHandler) func() {
	return bus.Subscribe(func(h HostEvent) {
		switch e := h.Event.(type) {
		case NotificationPostedEvent:
			engine.HandlePosted(e.Posted())
		case NotificationRemovedEvent:
			engine.HandleRemoved(e.Removed())
		case CommandEvent:
			engine.HandleCommand(glyph.Command(e.Command), e.Intensity)
		case DriverStateEvent:
			if e.Connected {
				engine.OnDriverConnected()
			} else {
				engine.OnDriverDisconnected()
			}
		}
	})
}

// PublishState returns a glyph.Options.OnChange callback that broadcasts each
// state as a ZonesChangedEvent.
func PublishState(bus *Bus) func(glyph.State) {
	return func(s glyph.State) {
		bus.Publish(ZonesChangedEvent{
			State:     s,
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}
}
