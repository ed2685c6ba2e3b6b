// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package jobxx

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestJobRecordRefsStartsAtOneForTheHandle(t *testing.T) {
	chk := require.New(t)

	jr := newJobRecord()
	chk.Equal(int64(1), jr.refs.Load())
	chk.Equal(int64(0), jr.tasks.Load())
	chk.True(jr.complete())
}

func TestJobRecordFirstTaskAddsCollectiveRef(t *testing.T) {
	chk := require.New(t)

	jr := newJobRecord()
	jr.addTask()
	chk.Equal(int64(1), jr.tasks.Load())
	chk.Equal(int64(2), jr.refs.Load())
	chk.False(jr.complete())

	jr.addTask()
	chk.Equal(int64(2), jr.tasks.Load())
	chk.Equal(int64(2), jr.refs.Load(), "only the first task adds a ref")
}

func TestJobRecordLastTaskDropsCollectiveRef(t *testing.T) {
	chk := require.New(t)

	jr := newJobRecord()
	jr.addTask()
	jr.addTask()

	jr.completeTask()
	chk.Equal(int64(1), jr.tasks.Load())
	chk.Equal(int64(2), jr.refs.Load())
	chk.False(jr.complete())

	jr.completeTask()
	chk.Equal(int64(0), jr.tasks.Load())
	chk.Equal(int64(1), jr.refs.Load(), "only the last task drops the ref")
	chk.True(jr.complete())
}

// TestJobRecordConcurrentAddCompleteInvariants is a property test checking
// that after n tasks are added and completed concurrently, tasks is back to
// zero and refs is back to the single handle reference.
func TestJobRecordConcurrentAddCompleteInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		jr := newJobRecord()
		n := rapid.IntRange(0, 200).Draw(t, "n")

		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			jr.addTask()
			go func() {
				defer wg.Done()
				jr.completeTask()
			}()
		}
		wg.Wait()

		require.Equal(t, int64(0), jr.tasks.Load())
		require.Equal(t, int64(1), jr.refs.Load())
		require.True(t, jr.complete())
	})
}
