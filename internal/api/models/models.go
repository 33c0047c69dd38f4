package models

import "github.com/smazurov/glyphd/internal/glyph"

// Health check models
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

type HealthResponse struct {
	Body HealthData
}

// Version models
type VersionData struct {
	Version   string `json:"version" example:"v0.3.0" doc:"Release version"`
	GitCommit string `json:"git_commit" example:"0123456" doc:"Source revision"`
	BuildDate string `json:"build_date" example:"2025-01-27T10:30:00Z" doc:"Build timestamp"`
	GoVersion string `json:"go_version" example:"go1.24.11" doc:"Go toolchain version"`
	Platform  string `json:"platform" example:"linux/arm64" doc:"Target platform"`
}

type VersionResponse struct {
	Body VersionData
}

// Command models
type CommandData struct {
	Command   string `json:"command" enum:"PHONE_LOCKED,PHONE_UNLOCKED,UPDATE_MAPPING,UPDATE_INTENSITY,SHOW_GLYPHS" example:"PHONE_LOCKED" doc:"Command verb"`
	Intensity *int   `json:"intensity,omitempty" minimum:"0" maximum:"4095" example:"2047" doc:"Render intensity for UPDATE_INTENSITY; omitted selects the default"`
}

type CommandRequest struct {
	Body CommandData
}

// Notification models
type NotificationData struct {
	Package string         `json:"package" minLength:"1" example:"com.whatsapp" doc:"Package name of the posting application"`
	Key     string         `json:"key" minLength:"1" example:"0|com.whatsapp|1|null|10123" doc:"Notification key"`
	Title   string         `json:"title,omitempty" example:"Alice" doc:"Notification title"`
	People  []glyph.Person `json:"people,omitempty" doc:"Conversation participants"`
}

type NotificationRequest struct {
	Body NotificationData
}

// Zone models
type ZoneInfo struct {
	Zone     int    `json:"zone" example:"2" doc:"Logical zone index"`
	Channels []int  `json:"channels" doc:"Hardware channels the zone drives"`
	Holders  int    `json:"holders" example:"1" doc:"Notifications holding the zone on"`
	Mode     string `json:"mode" enum:"off,static,pulse" example:"static" doc:"Current display mode"`
}

type ZonesData struct {
	Model string      `json:"model" example:"22111" doc:"Light array model"`
	State glyph.State `json:"state" doc:"Engine state"`
	Zones []ZoneInfo  `json:"zones" doc:"Per-zone view of the engine state"`
}

type ZonesResponse struct {
	Body ZonesData
}

// Mapping models
type MappingZone struct {
	Zone     int      `json:"zone" minimum:"0" example:"2" doc:"Logical zone index"`
	Pulse    bool     `json:"pulse" example:"false" doc:"Pulse instead of static light"`
	Apps     []string `json:"apps,omitempty" doc:"Package names lighting the zone"`
	Contacts []uint64 `json:"contacts,omitempty" doc:"Contact ids lighting the zone"`
}

type MappingData struct {
	Path  string        `json:"path" example:"/etc/glyphd/mapping.toml" doc:"Mapping file"`
	Zones []MappingZone `json:"zones" doc:"Mapped zones"`
}

type MappingResponse struct {
	Body MappingData
}

type ZonePath struct {
	Zone int `path:"zone" minimum:"0" example:"2" doc:"Logical zone index"`
}

type SetZoneRequest struct {
	Zone int `path:"zone" minimum:"0" example:"2" doc:"Logical zone index"`
	Body struct {
		Pulse    bool     `json:"pulse,omitempty" example:"true" doc:"Pulse instead of static light"`
		Apps     []string `json:"apps,omitempty" doc:"Package names lighting the zone"`
		Contacts []uint64 `json:"contacts,omitempty" doc:"Contact ids lighting the zone"`
	}
}
