// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package parkinglot implements a parking lot primitive: a wait-set that
// lets a goroutine block until either a predicate it supplies becomes true
// or another goroutine calls UnparkOne/UnparkAll on the lot, with support
// for a single goroutine registering in two lots at once and learning
// which one released it.
//
// A classic C++ implementation of this idea builds it out of a
// thread-local parkable holding a std::mutex and std::condition_variable,
// with an atomic status flag guarding against double-parking and a
// spinlock-guarded doubly-linked list per lot. This port keeps that same
// shape -- spinlock-guarded linked list, predicate evaluated only after
// linkage closes the lost-wakeup race, and a status flag claimed exactly
// once -- but replaces the mutex+condvar blocking primitive with a
// buffered channel, Go's idiomatic equivalent of "sleep until signaled."
package parkinglot

import (
	"sync"
	"sync/atomic"

	"github.com/seanmiddleditch/jobxx/internal/spinlock"
)

// Lot is a parking lot. The zero value is an empty lot ready to use.
//
// SpinRetries configures the underlying spinlock's busy-spin budget (see
// spinlock.Spinlock.Spins) and, like that field, must be set before the Lot
// is first used.
type Lot struct {
	SpinRetries int

	initOnce sync.Once
	mu       spinlock.Spinlock
	root     node // sentinel; root.next is the head, root.prev is the tail
}

// node is a parked-node: one per (park call, lot) pair. It is linked into
// its lot's list for exactly the duration of the park call that created
// it.
type node struct {
	state      *parkState
	prev, next *node
	linked     bool
}

// parkState is the shared blocking primitive for one park call -- the
// Go-idiomatic analog of a status flag plus a mutex and condition
// variable. It is referenced by one node per lot the call registered
// with, so that whichever lot unparks first can deliver exactly one
// result regardless of which list it was sitting in.
type parkState struct {
	claimed atomic.Bool
	result  chan *Lot
}

func (l *Lot) init() {
	l.initOnce.Do(func() {
		l.mu.Spins = l.SpinRetries
		l.root.next = &l.root
		l.root.prev = &l.root
	})
}

// Park registers the calling goroutine in l, evaluates predicate, and --
// if predicate did not already report true -- blocks until either
// predicate's caller wins the race to claim this park call or some other
// goroutine calls UnparkOne/UnparkAll on l. Returns nil if released by the
// predicate, or l if released by an unpark.
func (l *Lot) Park(predicate func() bool) *Lot {
	return park(predicate, l, nil)
}

// ParkTwo is Park but the calling goroutine registers in both l and other
// for the duration of the call, returning whichever of the two lots
// released it, or nil if predicate did.
func (l *Lot) ParkTwo(other *Lot, predicate func() bool) *Lot {
	return park(predicate, l, other)
}

func park(predicate func() bool, primary, secondary *Lot) *Lot {
	st := &parkState{result: make(chan *Lot, 1)}

	n1 := primary.link(st)
	var n2 *node
	if secondary != nil {
		n2 = secondary.link(st)
	}

	release := func(by *Lot) *Lot {
		primary.unlink(n1)
		if n2 != nil {
			secondary.unlink(n2)
		}
		return by
	}

	// The predicate is checked only after linking into both lots. Any
	// event that could make it true must be followed by a call to
	// UnparkOne/UnparkAll on the appropriate lot; since we're already
	// linked by the time we check, we can't miss that call.
	if predicate != nil && predicate() {
		if st.claimed.CompareAndSwap(false, true) {
			return release(nil)
		}
		// Lost the race to an unpark that fired between our predicate
		// returning true and our CAS; fall through and take its result.
	}

	by := <-st.result
	return release(by)
}

func (l *Lot) link(st *parkState) *node {
	l.init()
	n := &node{state: st}
	l.mu.Lock()
	n.prev = l.root.prev
	n.next = &l.root
	l.root.prev.next = n
	l.root.prev = n
	n.linked = true
	l.mu.Unlock()
	return n
}

func (l *Lot) unlink(n *node) {
	l.mu.Lock()
	l.unlinkLocked(n)
	l.mu.Unlock()
}

func (l *Lot) unlinkLocked(n *node) {
	if !n.linked {
		return
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	n.linked = false
}

// UnparkOne wakes at most one currently parked goroutine, skipping nodes
// that have already been claimed by a predicate win or by the other lot
// they were jointly parked on. Reports whether a wake actually occurred.
func (l *Lot) UnparkOne() bool {
	l.init()
	for {
		l.mu.Lock()
		n := l.root.next
		if n == &l.root {
			l.mu.Unlock()
			return false
		}
		l.unlinkLocked(n)
		l.mu.Unlock()

		if n.state.claimed.CompareAndSwap(false, true) {
			n.state.result <- l
			return true
		}
		// Already claimed by someone else; keep looking.
	}
}

// UnparkAll wakes every currently parked goroutine that hasn't already
// been claimed by a predicate win or the other lot it was parked on.
func (l *Lot) UnparkAll() {
	l.init()
	for l.UnparkOne() {
	}
}
