package events

import "github.com/smazurov/glyphd/internal/glyph"

// Event type constants for kelindar/event.
const (
	TypeNotificationPosted uint32 = iota + 1
	TypeNotificationRemoved
	TypeCommand
	TypeZonesChanged
	TypeDriverState
	TypeHost
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// NotificationPostedEvent is a notification relayed by the host when posted.
type NotificationPostedEvent struct {
	Package   string         `json:"package" example:"com.whatsapp" doc:"Package name of the posting application"`
	Key       string         `json:"key" example:"0|com.whatsapp|1|null|10123" doc:"Notification key"`
	Title     string         `json:"title,omitempty" example:"Alice" doc:"Notification title"`
	People    []glyph.Person `json:"people,omitempty" doc:"Conversation participants"`
	Timestamp string         `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for NotificationPostedEvent.
func (e NotificationPostedEvent) Type() uint32 { return TypeNotificationPosted }

// Posted converts the event for the engine.
func (e NotificationPostedEvent) Posted() glyph.PostedEvent {
	return glyph.PostedEvent{
		Package: e.Package,
		Key:     glyph.NotificationKey(e.Key),
		Title:   e.Title,
		People:  e.People,
	}
}

// NotificationRemovedEvent is a notification relayed by the host when removed.
type NotificationRemovedEvent struct {
	Package   string         `json:"package" example:"com.whatsapp" doc:"Package name of the posting application"`
	Key       string         `json:"key" example:"0|com.whatsapp|1|null|10123" doc:"Notification key"`
	Title     string         `json:"title,omitempty" example:"Alice" doc:"Notification title"`
	People    []glyph.Person `json:"people,omitempty" doc:"Conversation participants"`
	Timestamp string         `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for NotificationRemovedEvent.
func (e NotificationRemovedEvent) Type() uint32 { return TypeNotificationRemoved }

// Removed converts the event for the engine.
func (e NotificationRemovedEvent) Removed() glyph.RemovedEvent {
	return glyph.RemovedEvent{
		Package: e.Package,
		Key:     glyph.NotificationKey(e.Key),
		Title:   e.Title,
		People:  e.People,
	}
}

// CommandEvent is a host command. Intensity is only read for UPDATE_INTENSITY.
type CommandEvent struct {
	Command   string `json:"command" example:"PHONE_LOCKED" doc:"Command verb"`
	Intensity *int   `json:"intensity,omitempty" example:"2047" doc:"Intensity for UPDATE_INTENSITY"`
	Source    string `json:"source,omitempty" example:"api" doc:"Origin of the command"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for CommandEvent.
func (e CommandEvent) Type() uint32 { return TypeCommand }

// ZonesChangedEvent carries the engine state after a change.
type ZonesChangedEvent struct {
	State     glyph.State `json:"state" doc:"Engine state after the change"`
	Timestamp string      `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ZonesChangedEvent.
func (e ZonesChangedEvent) Type() uint32 { return TypeZonesChanged }

// DriverStateEvent reports the light driver becoming available or going away.
type DriverStateEvent struct {
	Connected bool   `json:"connected" doc:"Whether the driver is available"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for DriverStateEvent.
func (e DriverStateEvent) Type() uint32 { return TypeDriverState }

// HostEvent wraps a posted, removed, command or driver state event. The bus
// publishes one for each of those, so a single HostEvent subscriber sees them
// in publish order regardless of their type.
type HostEvent struct {
	Event Event
}

// Type returns the event type identifier for HostEvent.
func (e HostEvent) Type() uint32 { return TypeHost }
