// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package jobxx is a lightweight, embeddable work-stealing-free task
// scheduler for in-process parallelism. User-supplied [Delegate] work is
// submitted to a [Queue] with SpawnTask, executed by any number of worker
// goroutines (including the calling goroutine itself via WorkOne/WorkAll),
// and can be grouped into a [Job] that exposes collective completion via
// CreateJob and WaitJobActively.
//
// The hard part of the package is the interaction between the queue's task
// FIFO, the Job's reference-counted outstanding-task state machine, and the
// parking lot primitive (internal/parkinglot) that lets idle workers sleep
// and be woken exactly when there is new work or a watched Job completes,
// without lost-wakeup races across two concurrent wake sources.
//
package jobxx
