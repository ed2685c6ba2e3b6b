// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package jobxx

import (
	"sync/atomic"

	"github.com/seanmiddleditch/jobxx/internal/parkinglot"
)

// jobRecord is the Job record: an atomic outstanding-task count, an atomic
// reference count, and the parking lot that Queue.WaitJobActively registers
// on. The tasks/refs pair mirrors the classic C++ atomic<int> counter idiom
// for reference-counted completion tracking, reimplemented with
// sync/atomic.Int64, plus a parkinglot.Lot that lets a waiter block instead
// of busy-polling for completion.
//
// refs starts at one for the handle returned by Queue.CreateJob. Each task
// spawned while tasks is zero adds a second reference on behalf of the
// collective task set; the last task to complete drops it again. Under Go's
// garbage collector there is no explicit destructor to run when refs
// reaches zero -- the record becomes unreachable once no handle and no task
// retains a pointer to it, and the collector reclaims it. refs is still
// maintained exactly this way so that the invariants (refs == 0 implies no
// outstanding handle and no outstanding tasks) hold and can be asserted in
// tests.
type jobRecord struct {
	tasks atomic.Int64
	refs  atomic.Int64
	lot   parkinglot.Lot
}

func newJobRecord() *jobRecord {
	jr := &jobRecord{}
	jr.refs.Store(1)
	return jr
}

// addTask pre-increments tasks and, if this is the first outstanding task,
// pre-increments refs on behalf of the collective task set.
func (jr *jobRecord) addTask() {
	if jr.tasks.Add(1) == 1 {
		jr.refs.Add(1)
	}
}

// completeTask pre-decrements tasks. If that was the last outstanding task,
// it wakes every thread parked on the job's lot before dropping the task
// set's collective reference, so that any waiter released by the wake
// already observes tasks == 0.
func (jr *jobRecord) completeTask() {
	if jr.tasks.Add(-1) == 0 {
		jr.lot.UnparkAll()
		jr.refs.Add(-1)
	}
}

func (jr *jobRecord) complete() bool {
	return jr.tasks.Load() == 0
}

// Job is the public, shared-ownership handle to a Job record. The zero
// value represents "no job" and is always complete. Job values may be
// freely copied and shared across goroutines; Complete is the only exposed
// predicate.
type Job struct {
	impl *jobRecord
}

// Complete reports whether every task ever spawned against this Job has
// finished executing. A zero-value Job is always complete.
func (j Job) Complete() bool {
	if j.impl == nil {
		return true
	}
	return j.impl.complete()
}
