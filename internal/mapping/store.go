package mapping

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/smazurov/glyphd/internal/glyph"
)

// DefaultPath is used when no mapping file is configured.
const DefaultPath = "mapping.toml"

// File is the on-disk mapping document.
type File struct {
	Version  int       `toml:"version" json:"version"`
	Zones    []Zone    `toml:"zones" json:"zones"`
	Contacts []Contact `toml:"contacts,omitempty" json:"contacts,omitempty"`
}

// Zone binds applications and contacts to one logical zone.
type Zone struct {
	Zone     int      `toml:"zone" json:"zone"`
	Pulse    bool     `toml:"pulse" json:"pulse"`
	Apps     []string `toml:"apps,omitempty" json:"apps,omitempty"`
	Contacts []uint64 `toml:"contacts,omitempty" json:"contacts,omitempty"`
}

// Contact is a static directory record.
type Contact struct {
	ID   uint64 `toml:"id" json:"id"`
	Name string `toml:"name" json:"name"`
	URI  string `toml:"uri,omitempty" json:"uri,omitempty"`
}

// Store persists a mapping File as TOML. It implements glyph.MappingStore and
// glyph.Directory; the directory follows the last successful Load.
type Store struct {
	path   string
	logger *slog.Logger

	// writeMu serializes edits with their save so the file on disk follows
	// edit order.
	writeMu sync.Mutex

	mu   sync.RWMutex
	file File
	dir  *Directory
}

var (
	_ glyph.MappingStore = (*Store)(nil)
	_ glyph.Directory    = (*Store)(nil)
)

// NewTOML creates a store backed by path. The file is not read until Load.
func NewTOML(path string, logger *slog.Logger) *Store {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		logger: logger,
		file:   File{Version: 1},
		dir:    NewDirectory(nil),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Read parses the backing file into memory. A missing file reads as empty.
func (s *Store) Read() error {
	file, err := ReadFile(s.path)
	if err != nil {
		return err
	}

	dir, err := buildDirectory(file.Contacts)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.file = file
	s.dir = dir
	s.mu.Unlock()
	return nil
}

// Load reads the file and returns the entries addressable on a device with
// zoneCount zones. Zones beyond the device are skipped with a warning.
func (s *Store) Load(zoneCount int) ([]glyph.MappingEntry, error) {
	if err := s.Read(); err != nil {
		return nil, err
	}

	entries, skipped, err := s.Entries(zoneCount)
	if err != nil {
		return nil, err
	}
	if len(skipped) > 0 {
		s.logger.Warn("Skipping zones not present on this device",
			"zones", skipped,
			"zone_count", zoneCount,
			"path", s.path)
	}
	s.logger.Debug("Mapping loaded", "entries", len(entries), "path", s.path)
	return entries, nil
}

// Entries converts the in-memory file into mapping entries. Zones at or above
// zoneCount are returned in skipped.
func (s *Store) Entries(zoneCount int) (entries []glyph.MappingEntry, skipped []int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, z := range s.file.Zones {
		if z.Zone < 0 {
			return nil, nil, NewError(ErrCodeInvalidZone, fmt.Sprintf("zone %d is negative", z.Zone), nil)
		}
		if z.Zone >= zoneCount {
			skipped = append(skipped, z.Zone)
			continue
		}
		entries = append(entries, toEntry(z))
	}
	return entries, skipped, nil
}

// File returns a copy of the in-memory document.
func (s *Store) File() File {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := File{
		Version:  s.file.Version,
		Zones:    make([]Zone, len(s.file.Zones)),
		Contacts: append([]Contact(nil), s.file.Contacts...),
	}
	for i, z := range s.file.Zones {
		out.Zones[i] = Zone{
			Zone:     z.Zone,
			Pulse:    z.Pulse,
			Apps:     append([]string(nil), z.Apps...),
			Contacts: append([]uint64(nil), z.Contacts...),
		}
	}
	return out
}

// Save writes the in-memory document to the backing file.
func (s *Store) Save() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.saveLocked()
}

// saveLocked marshals a copy of the document. Callers hold writeMu.
func (s *Store) saveLocked() error {
	file := s.File()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewError(ErrCodeWrite, "failed to create mapping directory", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return NewError(ErrCodeWrite, "failed to marshal mapping", err)
	}

	if writeErr := os.WriteFile(s.path, data, 0o644); writeErr != nil {
		return NewError(ErrCodeWrite, "failed to write mapping", writeErr)
	}
	return nil
}

// SetZone replaces the entry for z.Zone, or adds it, and saves.
func (s *Store) SetZone(z Zone) error {
	if z.Zone < 0 {
		return NewError(ErrCodeInvalidZone, fmt.Sprintf("zone %d is negative", z.Zone), nil)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	replaced := false
	for i := range s.file.Zones {
		if s.file.Zones[i].Zone == z.Zone {
			s.file.Zones[i] = z
			replaced = true
			break
		}
	}
	if !replaced {
		s.file.Zones = append(s.file.Zones, z)
		sort.Slice(s.file.Zones, func(i, j int) bool { return s.file.Zones[i].Zone < s.file.Zones[j].Zone })
	}
	s.mu.Unlock()

	return s.saveLocked()
}

// RemoveZone deletes the entry for zone and saves.
func (s *Store) RemoveZone(zone int) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	idx := -1
	for i := range s.file.Zones {
		if s.file.Zones[i].Zone == zone {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return NewError(ErrCodeZoneNotFound, fmt.Sprintf("zone %d is not mapped", zone), nil)
	}
	s.file.Zones = append(s.file.Zones[:idx], s.file.Zones[idx+1:]...)
	s.mu.Unlock()

	return s.saveLocked()
}

// ContactNameForURI resolves uri against the static contacts.
func (s *Store) ContactNameForURI(uri string) (string, bool) {
	s.mu.RLock()
	dir := s.dir
	s.mu.RUnlock()
	return dir.ContactNameForURI(uri)
}

// ContactIDsForName returns the ids of the static contacts named name.
func (s *Store) ContactIDsForName(name string) []glyph.ContactID {
	s.mu.RLock()
	dir := s.dir
	s.mu.RUnlock()
	return dir.ContactIDsForName(name)
}

// ReadFile parses a mapping document without touching any store. A missing
// file reads as an empty version 1 document.
func ReadFile(path string) (File, error) {
	file := File{Version: 1}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return file, nil
	}
	if err != nil {
		return File{}, NewError(ErrCodeRead, "failed to read mapping "+path, err)
	}

	if unmarshalErr := toml.Unmarshal(data, &file); unmarshalErr != nil {
		return File{}, NewError(ErrCodeParse, "failed to parse mapping "+path, unmarshalErr)
	}
	if file.Version == 0 {
		file.Version = 1
	}
	return file, nil
}

func toEntry(z Zone) glyph.MappingEntry {
	e := glyph.MappingEntry{
		Zone:     glyph.ZoneID(z.Zone),
		Pulse:    z.Pulse,
		Packages: make([]glyph.PackageID, 0, len(z.Apps)),
		Contacts: make([]glyph.ContactID, 0, len(z.Contacts)),
	}
	for _, app := range z.Apps {
		e.Packages = append(e.Packages, glyph.HashPackage(app))
	}
	for _, id := range z.Contacts {
		e.Contacts = append(e.Contacts, glyph.ContactID(id))
	}
	return e
}
