package wakelock

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSysfs_AcquireRelease(t *testing.T) {
	root := t.TempDir()
	lock := NewSysfs(root, "glyphd")

	if err := lock.Acquire(120 * time.Second); err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "wake_lock"))
	if err != nil {
		t.Fatalf("read wake_lock: %v", err)
	}
	if got, want := string(data), "glyphd 120000000000"; got != want {
		t.Errorf("wake_lock = %q, want %q", got, want)
	}
	if !lock.Held() {
		t.Error("Held() = false after Acquire")
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error: %v", err)
	}
	data, err = os.ReadFile(filepath.Join(root, "wake_unlock"))
	if err != nil {
		t.Fatalf("read wake_unlock: %v", err)
	}
	if string(data) != "glyphd" {
		t.Errorf("wake_unlock = %q, want glyphd", data)
	}
	if lock.Held() {
		t.Error("Held() = true after Release")
	}
}

func TestSysfs_ReleaseUnheldSkipsWrite(t *testing.T) {
	root := t.TempDir()
	lock := NewSysfs(root, "glyphd")

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "wake_unlock")); !os.IsNotExist(err) {
		t.Error("Release() of an unheld lock should not touch wake_unlock")
	}
}

func TestSysfs_AcquireError(t *testing.T) {
	lock := NewSysfs(filepath.Join(t.TempDir(), "missing"), "glyphd")
	if err := lock.Acquire(time.Second); err == nil {
		t.Error("Acquire() under a missing directory should fail")
	}
	if lock.Held() {
		t.Error("Held() = true after failed Acquire")
	}
}

func TestNoop_Expires(t *testing.T) {
	lock := NewNoop()
	now := time.Unix(1000, 0)
	lock.now = func() time.Time { return now }

	_ = lock.Acquire(time.Minute)
	if !lock.Held() {
		t.Fatal("Held() = false right after Acquire")
	}

	now = now.Add(2 * time.Minute)
	if lock.Held() {
		t.Error("Held() = true after the timeout elapsed")
	}

	_ = lock.Release()
	if acquired, released := lock.Counts(); acquired != 1 || released != 0 {
		t.Errorf("Counts() = (%d, %d), want (1, 0)", acquired, released)
	}
}

func TestNew_FallsBackToNoop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if _, ok := New(TypeNoop, "glyphd", logger).(*Noop); !ok {
		t.Error("New(noop) should return *Noop")
	}
}
