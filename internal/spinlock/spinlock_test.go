// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package spinlock_test

import (
	"sync"
	"testing"

	"github.com/seanmiddleditch/jobxx/internal/spinlock"
	"github.com/stretchr/testify/require"
)

func TestSpinlockMutualExclusion(t *testing.T) {
	chk := require.New(t)

	var l spinlock.Spinlock
	var counter int
	var wg sync.WaitGroup

	const goroutines = 32
	const increments = 1000

	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				l.Lock()
				counter++
				l.Unlock()
			}
		}()
	}
	wg.Wait()

	chk.Equal(goroutines*increments, counter)
}

func TestSpinlockTryLock(t *testing.T) {
	chk := require.New(t)

	var l spinlock.Spinlock
	chk.True(l.TryLock())
	chk.False(l.TryLock())
	l.Unlock()
	chk.True(l.TryLock())
	l.Unlock()
}
