// Package wakelock keeps the device awake for a bounded time.
//
// On Linux and Android kernels built with CONFIG_PM_WAKELOCKS a named lock is
// taken by writing "<name> <timeout_ns>" to /sys/power/wake_lock and dropped by
// writing the name to /sys/power/wake_unlock. The kernel expires the lock on
// its own after the timeout, so a crashed holder cannot pin the device awake.
package wakelock

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

const sysPowerPath = "/sys/power"

// Lock types accepted by New.
const (
	TypeSysfs = "sysfs"
	TypeNoop  = "noop"
)

// Lock is a timed wake lock.
type Lock interface {
	// Acquire takes the lock for at most timeout. Acquiring a held lock
	// extends it.
	Acquire(timeout time.Duration) error

	// Release drops the lock. Releasing an unheld lock is a no-op.
	Release() error

	// Held reports whether the lock is currently held and not expired.
	Held() bool
}

// New returns a sysfs wake lock when the kernel exposes one, otherwise an
// in-process lock that only tracks state.
func New(lockType, name string, logger *slog.Logger) Lock {
	if lockType == TypeSysfs {
		if _, err := os.Stat(filepath.Join(sysPowerPath, "wake_lock")); err == nil {
			logger.Info("Using kernel wake lock", "name", name)
			return NewSysfs(sysPowerPath, name)
		}
		logger.Warn("Kernel wake locks unavailable, using in-process wake lock", "name", name)
	}
	return NewNoop()
}

// deadline tracks hold state shared by both implementations.
type deadline struct {
	mu    sync.Mutex
	until time.Time
	now   func() time.Time
}

func (d *deadline) heldLocked() bool {
	return !d.until.IsZero() && d.now().Before(d.until)
}

// Sysfs drives the kernel wake lock interface under root.
type Sysfs struct {
	deadline
	root string
	name string
}

// NewSysfs creates a wake lock named name under root (normally /sys/power).
func NewSysfs(root, name string) *Sysfs {
	return &Sysfs{
		deadline: deadline{now: time.Now},
		root:     root,
		name:     name,
	}
}

// Acquire writes the lock with its timeout in nanoseconds.
func (s *Sysfs) Acquire(timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value := s.name + " " + strconv.FormatInt(timeout.Nanoseconds(), 10)
	if err := os.WriteFile(filepath.Join(s.root, "wake_lock"), []byte(value), 0o644); err != nil {
		return fmt.Errorf("failed to acquire wake lock %q: %w", s.name, err)
	}
	s.until = s.now().Add(timeout)
	return nil
}

// Release writes the lock name to wake_unlock when still held.
func (s *Sysfs) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.heldLocked() {
		s.until = time.Time{}
		return nil
	}
	if err := os.WriteFile(filepath.Join(s.root, "wake_unlock"), []byte(s.name), 0o644); err != nil {
		return fmt.Errorf("failed to release wake lock %q: %w", s.name, err)
	}
	s.until = time.Time{}
	return nil
}

// Held reports whether the lock is held and not yet expired.
func (s *Sysfs) Held() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heldLocked()
}

// Noop is an in-process wake lock for hosts without kernel support. It keeps
// the same timing semantics so callers behave identically.
type Noop struct {
	deadline
	acquired int
	released int
}

// NewNoop creates an unheld in-process lock.
func NewNoop() *Noop {
	return &Noop{deadline: deadline{now: time.Now}}
}

// Acquire marks the lock held for timeout.
func (n *Noop) Acquire(timeout time.Duration) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.until = n.now().Add(timeout)
	n.acquired++
	return nil
}

// Release clears the hold.
func (n *Noop) Release() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.heldLocked() {
		n.released++
	}
	n.until = time.Time{}
	return nil
}

// Held reports whether the lock is held and not yet expired.
func (n *Noop) Held() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.heldLocked()
}

// Counts returns how many times the lock was acquired and released while held.
func (n *Noop) Counts() (acquired, released int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.acquired, n.released
}
