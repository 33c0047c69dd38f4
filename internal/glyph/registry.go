package glyph

import "sort"

// Activation is the derived render state: hardware channels lit statically
// and channels that pulse. A channel is never in both.
type Activation struct {
	Static []int
	Pulse  []int
}

// Registry tracks which notifications hold which zones on and derives the lit
// channel sets from it. It is not safe for concurrent use; the Engine
// serializes access.
type Registry struct {
	translator ZoneTranslator
	active     map[ZoneID]map[NotificationKey]struct{}
	static     map[int]struct{}
	pulse      map[int]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry(translator ZoneTranslator) *Registry {
	return &Registry{
		translator: translator,
		active:     make(map[ZoneID]map[NotificationKey]struct{}),
		static:     make(map[int]struct{}),
		pulse:      make(map[int]struct{}),
	}
}

// RecordActive registers key as holding zone on. It returns true when any
// channel of the zone became lit or switched mode. Repeating a (zone, key)
// pair is a no-op.
func (r *Registry) RecordActive(zone ZoneID, key NotificationKey, pulse bool) bool {
	keys, ok := r.active[zone]
	if !ok {
		keys = make(map[NotificationKey]struct{})
		r.active[zone] = keys
	}
	if _, dup := keys[key]; dup {
		return false
	}
	keys[key] = struct{}{}

	into, other := r.static, r.pulse
	if pulse {
		into, other = r.pulse, r.static
	}

	modified := false
	for _, ch := range r.translator.Translate(int(zone)) {
		if _, lit := into[ch]; lit {
			continue
		}
		into[ch] = struct{}{}
		delete(other, ch)
		modified = true
	}
	return modified
}

// RecordInactive drops key from zone. When the last key goes, every channel
// of the zone is cleared. It returns true when any channel was cleared.
// Unknown pairs are ignored.
func (r *Registry) RecordInactive(zone ZoneID, key NotificationKey) bool {
	keys, ok := r.active[zone]
	if !ok {
		return false
	}
	if _, held := keys[key]; !held {
		return false
	}
	delete(keys, key)
	if len(keys) > 0 {
		return false
	}
	delete(r.active, zone)

	removed := false
	for _, ch := range r.translator.Translate(int(zone)) {
		if _, lit := r.static[ch]; lit {
			delete(r.static, ch)
			removed = true
		}
		if _, lit := r.pulse[ch]; lit {
			delete(r.pulse, ch)
			removed = true
		}
	}
	return removed
}

// Sweep releases key from every zone still holding it and reports whether any
// channel was cleared.
func (r *Registry) Sweep(key NotificationKey) bool {
	var holders []ZoneID
	for zone, keys := range r.active {
		if _, held := keys[key]; held {
			holders = append(holders, zone)
		}
	}

	removed := false
	for _, zone := range holders {
		if r.RecordInactive(zone, key) {
			removed = true
		}
	}
	return removed
}

// Activation returns sorted copies of the static and pulse channel sets.
func (r *Registry) Activation() Activation {
	return Activation{
		Static: sortedKeys(r.static),
		Pulse:  sortedKeys(r.pulse),
	}
}

// Holders returns the number of notifications holding zone on.
func (r *Registry) Holders(zone ZoneID) int {
	return len(r.active[zone])
}

// Zones returns the holder count of every active zone.
func (r *Registry) Zones() map[ZoneID]int {
	out := make(map[ZoneID]int, len(r.active))
	for zone, keys := range r.active {
		out[zone] = len(keys)
	}
	return out
}

// Reset forgets every notification and lit channel.
func (r *Registry) Reset() {
	r.active = make(map[ZoneID]map[NotificationKey]struct{})
	r.static = make(map[int]struct{})
	r.pulse = make(map[int]struct{})
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for ch := range set {
		out = append(out, ch)
	}
	sort.Ints(out)
	return out
}
