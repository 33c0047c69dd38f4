package mapping

import (
	"fmt"

	"github.com/smazurov/glyphd/internal/glyph"
)

// Directory is an immutable contact table. It stands in for a host contacts
// provider so the daemon can resolve relayed person references.
type Directory struct {
	byURI  map[string]string
	byName map[string][]glyph.ContactID
}

// NewDirectory indexes contacts. Later records with a known id are ignored.
func NewDirectory(contacts []Contact) *Directory {
	d := &Directory{
		byURI:  make(map[string]string),
		byName: make(map[string][]glyph.ContactID),
	}
	seen := make(map[uint64]struct{}, len(contacts))
	for _, c := range contacts {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		d.add(c)
	}
	return d
}

// buildDirectory is NewDirectory but rejects duplicate ids.
func buildDirectory(contacts []Contact) (*Directory, error) {
	seen := make(map[uint64]struct{}, len(contacts))
	for _, c := range contacts {
		if _, dup := seen[c.ID]; dup {
			return nil, NewError(ErrCodeDuplicateContact, fmt.Sprintf("contact id %d listed twice", c.ID), nil)
		}
		seen[c.ID] = struct{}{}
	}
	return NewDirectory(contacts), nil
}

func (d *Directory) add(c Contact) {
	if c.URI != "" {
		d.byURI[c.URI] = c.Name
	}
	if c.Name != "" {
		d.byName[c.Name] = append(d.byName[c.Name], glyph.ContactID(c.ID))
	}
}

// ContactNameForURI implements glyph.Directory.
func (d *Directory) ContactNameForURI(uri string) (string, bool) {
	name, ok := d.byURI[uri]
	return name, ok
}

// ContactIDsForName implements glyph.Directory. Ids keep file order.
func (d *Directory) ContactIDsForName(name string) []glyph.ContactID {
	ids := d.byName[name]
	if len(ids) == 0 {
		return nil
	}
	return append([]glyph.ContactID(nil), ids...)
}
