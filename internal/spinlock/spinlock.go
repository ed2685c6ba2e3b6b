// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package spinlock provides a test-then-exchange mutual exclusion lock
// intended for very short, non-blocking critical sections such as parking
// lot list linkage, where the cost of a full OS mutex exceeds the cost of
// a brief busy-wait.
package spinlock

import (
	"runtime"
	"sync/atomic"
)

// Spinlock is a busy-wait lock. The zero value is unlocked and ready to
// use. A Spinlock must never be held across a blocking call: there is no
// fairness or backoff beyond a best-effort Gosched, so a long-held
// Spinlock burns CPU on every other waiter.
//
// Spins sets how many contended iterations Lock busy-spins before yielding
// the goroutine with runtime.Gosched on each further iteration. It must be
// set, if at all, before the Spinlock is first used; it is read without
// synchronization. The zero value yields immediately on every contended
// iteration.
type Spinlock struct {
	held  atomic.Bool
	Spins int
}

// Lock busy-waits until the lock can be acquired. It reads before
// attempting the exchange so that contended spinning doesn't keep
// invalidating the cacheline underlying the flag.
func (l *Spinlock) Lock() {
	spins := l.Spins
	for {
		if !l.held.Load() && l.held.CompareAndSwap(false, true) {
			return
		}
		if spins > 0 {
			spins--
			continue
		}
		runtime.Gosched()
	}
}

// TryLock attempts to acquire the lock without blocking and reports
// whether it succeeded.
func (l *Spinlock) TryLock() bool {
	return !l.held.Load() && l.held.CompareAndSwap(false, true)
}

// Unlock releases the lock. Unlocking a lock not held by the caller is a
// programming error and corrupts the lock state.
func (l *Spinlock) Unlock() {
	l.held.Store(false)
}
