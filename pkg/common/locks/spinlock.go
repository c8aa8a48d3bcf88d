package locks

import (
	"sync/atomic"

	pkgRuntime "github.com/huynhanx03/go-bptree/pkg/runtime"
)

const (
	unlocked uint32 = 0
	locked   uint32 = 1
)

// SpinLock is a test-and-set mutual exclusion lock that busy-waits instead of parking.
// The zero value is unlocked. Acquisition is not fair and carries no timeout.
type SpinLock struct {
	state atomic.Uint32
}

// Init puts the lock into the released state. Must not race with Lock.
func (l *SpinLock) Init() {
	l.state.Store(unlocked)
}

// Lock blocks until the lock is acquired.
func (l *SpinLock) Lock() {
	for spin := 0; ; spin++ {
		// Test before test-and-set keeps the cache line shared while contended.
		if l.state.Load() == unlocked && l.state.Swap(locked) == unlocked {
			return
		}
		pkgRuntime.Backoff(spin)
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *SpinLock) TryLock() bool {
	return l.state.CompareAndSwap(unlocked, locked)
}

// Unlock releases the lock. Unlocking a lock that is not held panics.
func (l *SpinLock) Unlock() {
	if l.state.Swap(unlocked) != locked {
		panic("locks: unlock of unlocked SpinLock")
	}
}

// IsHeld reports whether some goroutine currently holds the lock.
// The answer may be stale by the time it is used; diagnostics only.
func (l *SpinLock) IsHeld() bool {
	return l.state.Load() == locked
}
