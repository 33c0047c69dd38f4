package glyph

import (
	"fmt"
	"sync/atomic"
)

// Table is an immutable snapshot of the zone mapping configuration.
type Table struct {
	entries   []MappingEntry
	byPackage map[PackageID]Binding
	byContact map[ContactID]Binding
}

// NewTable indexes entries. A package or contact bound to two zones is an error.
func NewTable(entries []MappingEntry) (*Table, error) {
	t := &Table{
		entries:   make([]MappingEntry, 0, len(entries)),
		byPackage: make(map[PackageID]Binding),
		byContact: make(map[ContactID]Binding),
	}

	for _, e := range entries {
		b := Binding{Zone: e.Zone, Pulse: e.Pulse}
		for _, id := range e.Packages {
			if prev, dup := t.byPackage[id]; dup && prev.Zone != e.Zone {
				return nil, fmt.Errorf("package %d mapped to zones %d and %d", id, prev.Zone, e.Zone)
			}
			t.byPackage[id] = b
		}
		for _, id := range e.Contacts {
			if prev, dup := t.byContact[id]; dup && prev.Zone != e.Zone {
				return nil, fmt.Errorf("contact %d mapped to zones %d and %d", id, prev.Zone, e.Zone)
			}
			t.byContact[id] = b
		}
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// LookupPackage returns the binding of an application, if any.
func (t *Table) LookupPackage(id PackageID) (Binding, bool) {
	b, ok := t.byPackage[id]
	return b, ok
}

// LookupContact returns the binding of a contact, if any.
func (t *Table) LookupContact(id ContactID) (Binding, bool) {
	b, ok := t.byContact[id]
	return b, ok
}

// Entries returns the entries the table was built from.
func (t *Table) Entries() []MappingEntry {
	out := make([]MappingEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Mapping holds the current Table and swaps it atomically on reload.
type Mapping struct {
	store     MappingStore
	zoneCount int
	current   atomic.Pointer[Table]
}

// NewMapping creates a Mapping with an empty table. Call Reload to populate it.
func NewMapping(store MappingStore, zoneCount int) *Mapping {
	m := &Mapping{store: store, zoneCount: zoneCount}
	empty, _ := NewTable(nil)
	m.current.Store(empty)
	return m
}

// Reload loads the store and replaces the snapshot. On failure the previous
// snapshot stays active.
func (m *Mapping) Reload() error {
	entries, err := m.store.Load(m.zoneCount)
	if err != nil {
		return fmt.Errorf("failed to load zone mapping: %w", err)
	}
	table, err := NewTable(entries)
	if err != nil {
		return fmt.Errorf("invalid zone mapping: %w", err)
	}
	m.current.Store(table)
	return nil
}

// Table returns the current snapshot.
func (m *Mapping) Table() *Table {
	return m.current.Load()
}

// LookupPackage resolves a package name against the current snapshot.
func (m *Mapping) LookupPackage(packageName string) (Binding, bool) {
	return m.Table().LookupPackage(HashPackage(packageName))
}

// LookupContact resolves a contact id against the current snapshot.
func (m *Mapping) LookupContact(id ContactID) (Binding, bool) {
	return m.Table().LookupContact(id)
}
