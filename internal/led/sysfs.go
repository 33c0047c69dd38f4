package led

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

const (
	sysfsLEDPath         = "/sys/class/leds"
	defaultMaxBrightness = 255
)

// sysfs implements Driver using the Linux LED class interface. Channel i is
// the LED named <prefix><i> under root.
type sysfs struct {
	root     string
	prefix   string
	channels int

	mu      sync.Mutex
	open    bool
	maxByCh []int
	last    []int // last written raw value per channel, -1 when unknown
}

// newSysfs creates a sysfs driver. An empty root uses /sys/class/leds.
func newSysfs(root, prefix string, channels int) *sysfs {
	if root == "" {
		root = sysfsLEDPath
	}
	return &sysfs{
		root:     root,
		prefix:   prefix,
		channels: channels,
	}
}

func (s *sysfs) ledPath(ch int) string {
	return filepath.Join(s.root, s.prefix+strconv.Itoa(ch))
}

// OpenSession checks every channel exists and caches its max_brightness.
func (s *sysfs) OpenSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxByCh := make([]int, s.channels)
	last := make([]int, s.channels)
	for ch := 0; ch < s.channels; ch++ {
		path := s.ledPath(ch)
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("led channel %d not found at %s: %w", ch, path, err)
		}
		maxByCh[ch] = readMaxBrightness(path)
		last[ch] = -1
	}

	s.maxByCh = maxByCh
	s.last = last
	s.open = true
	return nil
}

// CloseSession forgets cached channel state.
func (s *sysfs) CloseSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = false
	s.maxByCh = nil
	s.last = nil
	return nil
}

// Render writes every channel: frame members at their scaled value, the rest at 0.
func (s *sysfs) Render(frame Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrSessionClosed
	}

	var errs []error
	for ch := 0; ch < s.channels; ch++ {
		if err := s.writeLocked(ch, frame[ch]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TurnOff writes 0 to every channel.
func (s *sysfs) TurnOff() error {
	return s.Render(nil)
}

// Channels returns the number of channels managed by this driver.
func (s *sysfs) Channels() int { return s.channels }

func (s *sysfs) writeLocked(ch, brightness int) error {
	raw := scaleBrightness(brightness, s.maxByCh[ch])
	if s.last[ch] == raw {
		return nil
	}

	path := filepath.Join(s.ledPath(ch), "brightness")
	if err := os.WriteFile(path, []byte(strconv.Itoa(raw)), 0o644); err != nil {
		s.last[ch] = -1
		return fmt.Errorf("failed to set channel %d brightness: %w", ch, err)
	}
	s.last[ch] = raw
	return nil
}

// readMaxBrightness returns the LED's max_brightness, or 255 when unreadable.
func readMaxBrightness(ledPath string) int {
	data, err := os.ReadFile(filepath.Join(ledPath, "max_brightness"))
	if err != nil {
		return defaultMaxBrightness
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || v <= 0 {
		return defaultMaxBrightness
	}
	return v
}

// scaleBrightness maps [0, MaxBrightness] onto [0, hwMax], clamping out-of-range input.
func scaleBrightness(brightness, hwMax int) int {
	switch {
	case brightness <= 0:
		return 0
	case brightness >= MaxBrightness:
		return hwMax
	}
	return (brightness*hwMax + MaxBrightness/2) / MaxBrightness
}
