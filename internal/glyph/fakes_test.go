package glyph

import (
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/smazurov/glyphd/internal/led"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// fakeDriver records every call.
type fakeDriver struct {
	mu        sync.Mutex
	frames    []led.Frame
	offs      int
	open      bool
	renderErr error
	delay     time.Duration
	panicOn   bool
}

func (d *fakeDriver) Render(frame led.Frame) error {
	if d.delay > 0 {
		time.Sleep(d.delay)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.panicOn {
		panic("driver exploded")
	}
	d.frames = append(d.frames, frame.Clone())
	return d.renderErr
}

func (d *fakeDriver) TurnOff() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.offs++
	return nil
}

func (d *fakeDriver) OpenSession() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
	return nil
}

func (d *fakeDriver) CloseSession() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	return nil
}

func (d *fakeDriver) Channels() int { return 16 }

func (d *fakeDriver) frameCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.frames)
}

func (d *fakeDriver) lastFrame() led.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.frames) == 0 {
		return nil
	}
	return d.frames[len(d.frames)-1]
}

func (d *fakeDriver) offCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.offs
}

func (d *fakeDriver) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = nil
	d.offs = 0
}

// identity maps every zone to the channel with the same index.
type identity struct{}

func (identity) Translate(zone int) []int { return []int{zone} }

// fakeDirectory resolves URIs and names from fixed tables.
type fakeDirectory struct {
	names map[string]string
	ids   map[string][]ContactID
}

func (d fakeDirectory) ContactNameForURI(uri string) (string, bool) {
	name, ok := d.names[uri]
	return name, ok
}

func (d fakeDirectory) ContactIDsForName(name string) []ContactID {
	return d.ids[name]
}

// fakeStore returns fixed entries.
type fakeStore struct {
	mu      sync.Mutex
	entries []MappingEntry
	err     error
	loads   int
}

func (s *fakeStore) Load(int) ([]MappingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	return s.entries, s.err
}

func (s *fakeStore) set(entries []MappingEntry, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.err = err
}

var errStore = errors.New("store unavailable")

// waitFor polls cond until it holds or the timeout elapses.
func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}
