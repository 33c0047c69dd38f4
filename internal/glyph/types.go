package glyph

import (
	"github.com/cespare/xxhash/v2"
)

// ZoneID is a logical zone index, independent of hardware addressing.
type ZoneID int

// PackageID identifies an application by the hash of its package name.
type PackageID uint64

// ContactID is a directory contact's numeric identifier.
type ContactID uint64

// NotificationKey identifies one posted notification instance.
type NotificationKey string

// HashPackage returns the PackageID of a package name.
func HashPackage(packageName string) PackageID {
	return PackageID(xxhash.Sum64String(packageName))
}

// MappingEntry binds packages and contacts to one logical zone.
type MappingEntry struct {
	Zone     ZoneID
	Packages []PackageID
	Contacts []ContactID
	Pulse    bool
}

// Binding is the result of a mapping lookup: the zone a source lights and how.
type Binding struct {
	Zone  ZoneID
	Pulse bool
}

// Person is a notification participant; URI is empty when the host has no
// directory reference for it.
type Person struct {
	Name string `json:"name,omitempty" doc:"Display name as shown in the notification"`
	URI  string `json:"uri,omitempty" doc:"Directory reference, e.g. content://contacts/people/42"`
}

// PostedEvent is a notification posted by the host.
type PostedEvent struct {
	Package string
	Key     NotificationKey
	Title   string
	People  []Person
}

// RemovedEvent is a notification removed by the host.
type RemovedEvent struct {
	Package string
	Key     NotificationKey
	Title   string
	People  []Person
}

// Command is a host-relayed verb.
type Command string

// Host commands.
const (
	CommandPhoneLocked     Command = "PHONE_LOCKED"
	CommandPhoneUnlocked   Command = "PHONE_UNLOCKED"
	CommandUpdateMapping   Command = "UPDATE_MAPPING"
	CommandUpdateIntensity Command = "UPDATE_INTENSITY"
	CommandShowGlyphs      Command = "SHOW_GLYPHS"
)

// Intensity bounds.
const (
	MaxIntensity     = 4095
	MidIntensity     = 2047
	DefaultIntensity = MidIntensity
)

// ClampIntensity limits v to [0, MaxIntensity].
func ClampIntensity(v int) int {
	switch {
	case v < 0:
		return 0
	case v > MaxIntensity:
		return MaxIntensity
	}
	return v
}

// Directory resolves contact references. It is implemented outside the engine.
type Directory interface {
	// ContactNameForURI returns the display name behind a person URI.
	ContactNameForURI(uri string) (string, bool)

	// ContactIDsForName returns the ids of every contact with that display name.
	ContactIDsForName(name string) []ContactID
}

// MappingStore loads persisted zone configuration.
type MappingStore interface {
	Load(zoneCount int) ([]MappingEntry, error)
}

// ZoneTranslator maps a logical zone to hardware channel indices.
type ZoneTranslator interface {
	Translate(zone int) []int
}

// LockGate reports whether the screen is locked.
type LockGate interface {
	IsLocked() bool
}
