// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otjobxx_test

import (
	"testing"

	"github.com/seanmiddleditch/jobxx"
	"github.com/seanmiddleditch/jobxx/otjobxx"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedDelegateRunsWrappedWork(t *testing.T) {
	chk := require.New(t)

	q := jobxx.NewQueue()
	ran := false
	work := otjobxx.InstrumentedDelegate("demo", jobxx.DelegateFunc(func() {
		ran = true
	}))

	chk.NoError(q.SpawnTask(work))
	q.WorkAll()
	chk.True(ran)
}

func TestLoggedDelegateRepanicsAfterLogging(t *testing.T) {
	chk := require.New(t)

	q := jobxx.NewQueue()
	work := otjobxx.LoggedDelegate("demo", jobxx.DelegateFunc(func() {
		panic("boom")
	}))
	chk.NoError(q.SpawnTask(work))
	chk.Panics(func() {
		q.WorkOne()
	})
}

func TestTracedDelegateRunsWrappedWork(t *testing.T) {
	chk := require.New(t)

	q := jobxx.NewQueue()
	ran := false
	work := otjobxx.TracedDelegate("demo", jobxx.DelegateFunc(func() {
		ran = true
	}))

	chk.NoError(q.SpawnTask(work))
	q.WorkAll()
	chk.True(ran)
}

func TestTracedDelegateRepanicsAfterMarkingSpanError(t *testing.T) {
	chk := require.New(t)

	q := jobxx.NewQueue()
	work := otjobxx.TracedDelegate("demo", jobxx.DelegateFunc(func() {
		panic("boom")
	}))
	chk.NoError(q.SpawnTask(work))
	chk.Panics(func() {
		q.WorkOne()
	})
}

func TestTracedDelegateOnEmptyDelegateIsEmpty(t *testing.T) {
	chk := require.New(t)

	work := otjobxx.TracedDelegate("demo", jobxx.Delegate(jobxx.DelegateFunc(nil)))
	chk.True(work.Empty())
}
