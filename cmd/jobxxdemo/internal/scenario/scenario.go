// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package scenario implements a handful of concrete end-to-end usage
// patterns as runnable, named checks, so jobxxdemo's "run" subcommand can
// exercise the scheduler the way an application embedding it would.
package scenario

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/seanmiddleditch/jobxx"
)

// Scenario is one named, self-verifying demonstration.
type Scenario struct {
	Description string
	Run         func() error
}

var registry = map[string]Scenario{
	"nested-spawn":     {"nested spawn under a job", nestedSpawnUnderJob},
	"many-tasks":       {"many tasks, two workers", manyTasksTwoWorkers},
	"inactive-wait":    {"inactive wait, four workers", inactiveWait},
	"cross-queue-wait": {"cross-queue job wait", crossQueueJobWait},
	"spawn-on-closed":  {"spawn on a closed queue", spawnOnClosedQueue},
	"empty-delegate":   {"spawn an empty delegate", emptyDelegate},
}

// Names returns every registered scenario name, sorted for stable output.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named scenario, if any.
func Lookup(name string) (Scenario, bool) {
	s, ok := registry[name]
	return s, ok
}

func nestedSpawnUnderJob() error {
	q := jobxx.NewQueue()
	var num, num2 uint32

	job := q.CreateJob(func(ctx *jobxx.SpawnContext) {
		mustSpawn(ctx, jobxx.DelegateFunc(func() {
			num = 0xDEADBEEF
		}))
		mustSpawn(ctx, jobxx.DelegateTaskFunc(func(ctx *jobxx.SpawnContext) {
			num2 = 0xDEADBEEE
			mustSpawn(ctx, jobxx.DelegateFunc(func() {
				num2++
			}))
		}))
	})

	q.WaitJobActively(job)

	if num != 0xDEADBEEF || num2 != 0xDEADBEEF {
		return fmt.Errorf("got num=%#x num2=%#x, want both 0xDEADBEEF", num, num2)
	}
	return nil
}

func manyTasksTwoWorkers() error {
	q := jobxx.NewQueue()
	var counter atomic.Int64

	var workers sync.WaitGroup
	workers.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer workers.Done()
			q.WorkForever()
		}()
	}

	for _, inc := range []int64{1, 2, 3, 4} {
		inc := inc
		for i := 0; i < 1000; i++ {
			mustSpawn(q, jobxx.DelegateFunc(func() {
				counter.Add(inc)
			}))
		}
	}

	for counter.Load() != 10000 {
		q.WorkAll()
		time.Sleep(time.Millisecond)
	}

	q.Close()
	workers.Wait()

	if got := counter.Load(); got != 10000 {
		return fmt.Errorf("counter = %d, want 10000", got)
	}
	return nil
}

func inactiveWait() error {
	q := jobxx.NewQueue()
	var counter atomic.Int64

	var workers sync.WaitGroup
	workers.Add(4)
	for i := 0; i < 4; i++ {
		go func() {
			defer workers.Done()
			q.WorkForever()
		}()
	}

	for i := 0; i < 16; i++ {
		mustSpawn(q, jobxx.DelegateFunc(func() {
			time.Sleep(250 * time.Millisecond)
			counter.Add(1)
		}))
	}

	for counter.Load() != 16 {
		time.Sleep(time.Second)
	}

	q.Close()
	workers.Wait()

	if got := counter.Load(); got != 16 {
		return fmt.Errorf("counter = %d, want 16", got)
	}
	return nil
}

func crossQueueJobWait() error {
	queueA := jobxx.NewQueue()
	queueB := jobxx.NewQueue()
	var counter atomic.Int64

	var workers sync.WaitGroup
	workers.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer workers.Done()
			queueA.WorkForever()
		}()
	}

	job := queueA.CreateJob(func(ctx *jobxx.SpawnContext) {
		for i := 0; i < 16; i++ {
			mustSpawn(ctx, jobxx.DelegateFunc(func() {
				time.Sleep(time.Second)
				counter.Add(1)
			}))
		}
	})

	queueB.WaitJobActively(job)

	queueA.Close()
	workers.Wait()

	if got := counter.Load(); got != 16 {
		return fmt.Errorf("counter = %d, want 16", got)
	}
	return nil
}

func spawnOnClosedQueue() error {
	q := jobxx.NewQueue()
	q.Close()

	err := q.SpawnTask(jobxx.DelegateFunc(func() {}))
	if err != jobxx.ErrQueueClosed {
		return fmt.Errorf("SpawnTask on closed queue = %v, want %v", err, jobxx.ErrQueueClosed)
	}
	return nil
}

func emptyDelegate() error {
	q := jobxx.NewQueue()
	var counter atomic.Int64

	err := q.SpawnTask(jobxx.DelegateFunc(nil))
	if err != jobxx.ErrEmptyDelegate {
		return fmt.Errorf("SpawnTask of empty delegate = %v, want %v", err, jobxx.ErrEmptyDelegate)
	}
	q.WorkAll()
	if got := counter.Load(); got != 0 {
		return fmt.Errorf("counter = %d, want 0", got)
	}
	return nil
}

type spawner interface {
	SpawnTask(jobxx.Delegate) error
}

func mustSpawn(s spawner, work jobxx.Delegate) {
	if err := s.SpawnTask(work); err != nil {
		panic(err)
	}
}
