package systemd

import (
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
)

type recorder struct {
	mu     sync.Mutex
	states []string
}

func (r *recorder) notify(state string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
	return true, nil
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.states)
}

func newTestNotifier() (*Notifier, *recorder) {
	rec := &recorder{}
	n := NewNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	n.notify = rec.notify
	return n, rec
}

func TestReadyAndStopping(t *testing.T) {
	t.Setenv("WATCHDOG_USEC", "")
	n, rec := newTestNotifier()

	n.Ready()
	n.Status("zones active: %d", 2)
	n.Stopping()

	want := []string{daemon.SdNotifyReady, "STATUS=zones active: 2", daemon.SdNotifyStopping}
	if got := rec.snapshot(); !slices.Equal(got, want) {
		t.Errorf("states = %q, want %q", got, want)
	}
}

func TestWatchdog(t *testing.T) {
	n, rec := newTestNotifier()

	n.startWatchdog(5 * time.Millisecond)
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && !slices.Contains(rec.snapshot(), daemon.SdNotifyWatchdog) {
		time.Sleep(5 * time.Millisecond)
	}
	n.Stopping()

	got := rec.snapshot()
	if !slices.Contains(got, daemon.SdNotifyWatchdog) {
		t.Fatalf("no watchdog ping in %q", got)
	}
	if got[len(got)-1] != daemon.SdNotifyStopping {
		t.Errorf("last state = %q, want stopping", got[len(got)-1])
	}

	// No pings after stop.
	count := len(got)
	time.Sleep(20 * time.Millisecond)
	if after := rec.snapshot(); len(after) != count {
		t.Errorf("pings after stop: %q", after[count:])
	}
}
