// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package taskqueue implements a concurrent task FIFO: push-back is total,
// pop-front is non-blocking and reports emptiness rather than waiting, and
// both are safe to call from any number of goroutines with no ordering
// guarantee beyond FIFO between operations that observably synchronize.
package taskqueue

import (
	"sync"

	"github.com/gammazero/deque"
)

// Queue is a mutex-guarded FIFO of items, backed by a ring-buffer deque.
// The zero value is an empty, ready-to-use queue. Every access goes
// through mu so that concurrent PushBack/PopFront calls are actually
// serialized.
type Queue[T any] struct {
	mu  sync.Mutex
	deq deque.Deque[T]
}

// New returns a Queue pre-sized to hold capacityHint items without
// growing. A non-positive capacityHint leaves the queue at its default
// size.
func New[T any](capacityHint int) *Queue[T] {
	q := &Queue[T]{}
	if capacityHint > 0 {
		q.deq = *deque.New[T](capacityHint)
	}
	return q
}

// PushBack enqueues item. It never blocks and cannot fail.
func (q *Queue[T]) PushBack(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.deq.PushBack(item)
}

// PopFront dequeues and returns the item at the front of the queue. It
// never blocks; ok is false and the zero value of T is returned if the
// queue was empty.
func (q *Queue[T]) PopFront() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.deq.Len() == 0 {
		return item, false
	}
	return q.deq.PopFront(), true
}

// MaybeEmpty is a may-spuriously-return-true hint: by the time the caller
// acts on the result, another goroutine may have already pushed or popped.
func (q *Queue[T]) MaybeEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.deq.Len() == 0
}

// Len reports the current queue length. Like MaybeEmpty, the result may be
// stale by the time the caller observes it.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.deq.Len()
}
