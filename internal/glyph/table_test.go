package glyph

import (
	"errors"
	"testing"
)

func TestNewTable(t *testing.T) {
	tests := []struct {
		name    string
		entries []MappingEntry
		wantErr bool
	}{
		{name: "empty"},
		{
			name: "distinct zones",
			entries: []MappingEntry{
				{Zone: 0, Packages: []PackageID{1}, Contacts: []ContactID{7}},
				{Zone: 1, Packages: []PackageID{2}},
			},
		},
		{
			name: "same package twice in one zone",
			entries: []MappingEntry{
				{Zone: 0, Packages: []PackageID{1, 1}},
			},
		},
		{
			name: "package in two zones",
			entries: []MappingEntry{
				{Zone: 0, Packages: []PackageID{1}},
				{Zone: 3, Packages: []PackageID{1}},
			},
			wantErr: true,
		},
		{
			name: "contact in two zones",
			entries: []MappingEntry{
				{Zone: 0, Contacts: []ContactID{5}},
				{Zone: 2, Contacts: []ContactID{5}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.entries)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTable() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTable_Lookup(t *testing.T) {
	table, err := NewTable([]MappingEntry{
		{Zone: 2, Packages: []PackageID{HashPackage("com.whatsapp")}, Pulse: true},
		{Zone: 4, Contacts: []ContactID{99}},
	})
	if err != nil {
		t.Fatal(err)
	}

	b, ok := table.LookupPackage(HashPackage("com.whatsapp"))
	if !ok || b != (Binding{Zone: 2, Pulse: true}) {
		t.Errorf("LookupPackage() = %+v, %v", b, ok)
	}
	if _, ok := table.LookupPackage(HashPackage("com.other")); ok {
		t.Error("LookupPackage() found an unmapped package")
	}
	b, ok = table.LookupContact(99)
	if !ok || b != (Binding{Zone: 4}) {
		t.Errorf("LookupContact() = %+v, %v", b, ok)
	}
	if got := len(table.Entries()); got != 2 {
		t.Errorf("Entries() len = %d, want 2", got)
	}
}

func TestMapping_ReloadKeepsSnapshotOnFailure(t *testing.T) {
	store := &fakeStore{entries: []MappingEntry{{Zone: 1, Packages: []PackageID{HashPackage("a")}}}}
	m := NewMapping(store, 5)

	if _, ok := m.LookupPackage("a"); ok {
		t.Fatal("mapping should start empty")
	}
	if err := m.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if b, ok := m.LookupPackage("a"); !ok || b.Zone != 1 {
		t.Fatalf("LookupPackage(a) = %+v, %v", b, ok)
	}

	store.set(nil, errStore)
	if err := m.Reload(); !errors.Is(err, errStore) {
		t.Errorf("Reload() error = %v, want %v", err, errStore)
	}
	if _, ok := m.LookupPackage("a"); !ok {
		t.Error("failed reload must keep the previous snapshot")
	}

	store.set([]MappingEntry{
		{Zone: 0, Contacts: []ContactID{1}},
		{Zone: 1, Contacts: []ContactID{1}},
	}, nil)
	if err := m.Reload(); err == nil {
		t.Error("Reload() should reject conflicting entries")
	}
	if _, ok := m.LookupPackage("a"); !ok {
		t.Error("invalid reload must keep the previous snapshot")
	}
}

func TestHashPackage(t *testing.T) {
	if HashPackage("com.whatsapp") != HashPackage("com.whatsapp") {
		t.Error("HashPackage is not deterministic")
	}
	if HashPackage("com.whatsapp") == HashPackage("org.telegram.messenger") {
		t.Error("distinct packages hashed to the same id")
	}
}

func TestClampIntensity(t *testing.T) {
	for in, want := range map[int]int{-5: 0, 0: 0, 2047: 2047, 4095: 4095, 9000: 4095} {
		if got := ClampIntensity(in); got != want {
			t.Errorf("ClampIntensity(%d) = %d, want %d", in, got, want)
		}
	}
}
