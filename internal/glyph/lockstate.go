package glyph

import "sync/atomic"

// LockState is a LockGate driven by PHONE_LOCKED and PHONE_UNLOCKED commands.
type LockState struct {
	locked atomic.Bool
}

// IsLocked reports the last relayed lock state.
func (l *LockState) IsLocked() bool { return l.locked.Load() }

// SetLocked records a lock transition.
func (l *LockState) SetLocked(locked bool) { l.locked.Store(locked) }
