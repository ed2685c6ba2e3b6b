// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package jobxx

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/seanmiddleditch/jobxx/internal/parkinglot"
	"github.com/seanmiddleditch/jobxx/internal/taskqueue"
)

// Queue is an opaque, non-copyable owner of a task FIFO, a parking lot for
// idle workers, and a closed flag. Callers should treat a *Queue as
// move-only -- share it by pointer, never copy the struct it points to.
type Queue struct {
	tasks     *taskqueue.Queue[*task]
	lot       parkinglot.Lot
	closed    atomic.Bool
	closeOnce sync.Once
}

// Option configures a Queue at construction time.
type Option func(*queueOptions)

type queueOptions struct {
	capacityHint int
	spinRetries  int
}

// WithCapacityHint pre-sizes the queue's underlying deque to hold n items
// without growing, useful wherever a queue's eventual size is known ahead
// of time.
func WithCapacityHint(n int) Option {
	return func(o *queueOptions) {
		o.capacityHint = n
	}
}

// WithSpinRetries sets how many contended iterations the queue's parking
// lot spinlock busy-spins before yielding to the scheduler, trading CPU for
// latency under heavy Park/UnparkOne contention on the lot's
// spinlock-guarded wait list. The default is zero: yield immediately on
// contention.
func WithSpinRetries(n int) Option {
	return func(o *queueOptions) {
		o.spinRetries = n
	}
}

// NewQueue creates an empty, open Queue ready to accept spawned tasks and
// worker goroutines.
func NewQueue(opts ...Option) *Queue {
	var o queueOptions
	for _, opt := range opts {
		opt(&o)
	}
	q := &Queue{
		tasks: taskqueue.New[*task](o.capacityHint),
	}
	q.lot.SpinRetries = o.spinRetries
	return q
}

// SpawnTask enqueues work with no parent Job.
func (q *Queue) SpawnTask(work Delegate) error {
	return q.spawnTask(work, nil)
}

func (q *Queue) spawnTask(work Delegate, parent *jobRecord) error {
	if work == nil || work.Empty() {
		return ErrEmptyDelegate
	}
	if q.closed.Load() {
		return ErrQueueClosed
	}
	if parent != nil {
		// A Job whose tasks has already drained to zero should not be
		// spawned onto again. Enforcing that race-free would need its own
		// synchronization layered on top of the plain atomics jobRecord
		// already uses, so it remains a caller contract rather than a
		// checked error.
		parent.addTask()
	}
	q.tasks.PushBack(&task{work: work, parent: parent})
	q.lot.UnparkOne()
	return nil
}

// JobInitializer is run synchronously by CreateJob on the calling goroutine
// and receives a SpawnContext bound to the new Job, so that any
// ctx.SpawnTask call it makes is parented to that Job.
type JobInitializer func(ctx *SpawnContext)

// CreateJob allocates a new Job, runs initializer exactly once on the
// calling goroutine with a SpawnContext bound to q and the new Job, and
// returns an owning handle to it. initializer is not itself a task.
func (q *Queue) CreateJob(initializer JobInitializer) Job {
	jr := newJobRecord()
	ctx := &SpawnContext{queue: q, parent: jr}
	initializer(ctx)
	return Job{impl: jr}
}

// WorkOne pops and executes a single task, returning false without
// blocking if the queue had nothing to pull.
func (q *Queue) WorkOne() bool {
	t, ok := q.tasks.PopFront()
	if !ok {
		return false
	}
	q.execute(t)
	return true
}

// WorkAll repeats WorkOne until it returns false. It never blocks.
func (q *Queue) WorkAll() {
	for q.WorkOne() {
	}
}

// WorkForever is the worker loop: drain everything pullable, then park on
// the queue's lot until either the queue closes or a task becomes
// pullable, executing any task the park call itself pulls before looping.
// It returns once the queue has closed and the lot has released this
// worker with nothing left to pull.
func (q *Queue) WorkForever() {
	for {
		q.WorkAll()

		var pulled *task
		q.lot.Park(func() bool {
			if q.closed.Load() {
				return true
			}
			if t, ok := q.tasks.PopFront(); ok {
				pulled = t
				return true
			}
			return false
		})

		if pulled != nil {
			q.execute(pulled)
			continue
		}
		if q.closed.Load() {
			return
		}
	}
}

// WaitJobActively blocks the calling goroutine until awaited is complete,
// stealing work from q while it waits instead of idling. It parks
// simultaneously on q's lot and awaited's lot so that it wakes the instant
// either this queue gains work or the job completes, even if the job
// belongs to a different queue than the one the caller is waiting on.
func (q *Queue) WaitJobActively(awaited Job) {
	jr := awaited.impl
	if jr == nil {
		return
	}
	for !jr.complete() {
		if q.WorkOne() {
			continue
		}

		var pulled *task
		q.lot.ParkTwo(&jr.lot, func() bool {
			if jr.complete() {
				return true
			}
			if t, ok := q.tasks.PopFront(); ok {
				pulled = t
				return true
			}
			return false
		})

		if pulled != nil {
			q.execute(pulled)
		}
	}
}

// TryWaitJobActive performs a single non-blocking WorkOne attempt on q's
// behalf and reports whether it did anything, without parking even if
// awaited is still incomplete. It is the non-blocking counterpart to
// WaitJobActively.
func (q *Queue) TryWaitJobActive(awaited Job) bool {
	if awaited.Complete() {
		return false
	}
	return q.WorkOne()
}

// Close drains the queue, marks it closed so further SpawnTask calls fail
// with ErrQueueClosed, wakes every worker parked in WorkForever, and drains
// once more in case a spawn raced the closed store. Close is idempotent: a
// second call is a no-op.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		q.WorkAll()
		q.closed.Store(true)
		q.lot.UnparkAll()
		q.WorkAll()
	})
}

// execute runs t's Delegate with a fresh SpawnContext bound to q and
// t.parent, then performs t's job bookkeeping. A panic inside the Delegate
// is recovered and re-raised wrapped in ErrTaskPanic; the deferred
// decrement of the job's task count still runs before that panic leaves
// execute -- the decrement must never be lost, since losing it would wedge
// the job's waiters forever.
func (q *Queue) execute(t *task) {
	defer func() {
		if t.parent != nil {
			t.parent.completeTask()
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			panic(fmt.Errorf("%w: %v", ErrTaskPanic, r))
		}
	}()

	ctx := &SpawnContext{queue: q, parent: t.parent}
	t.work.Invoke(ctx)
}
