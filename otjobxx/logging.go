// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package otjobxx adds optional structured logging and metrics around
// [jobxx.Delegate] execution. The core jobxx package imports neither
// go.uber.org/zap nor the OpenTelemetry metric API; this package is where
// that instrumentation lives, so callers who don't want either dependency
// can simply not import it.
package otjobxx

import (
	"time"

	"github.com/seanmiddleditch/jobxx"
	"go.uber.org/zap"
)

// LoggedDelegate wraps work with structured logging of its start,
// completion, duration, and any recovered panic, logging at Debug on
// success and Error on failure.
func LoggedDelegate(operationName string, work jobxx.Delegate) jobxx.Delegate {
	if work.Empty() {
		return work
	}
	return jobxx.DelegateTaskFunc(func(ctx *jobxx.SpawnContext) {
		logger := zap.L()
		logger.Debug("starting task",
			zap.String("operation", operationName),
			zap.String("component", "otjobxx"))

		start := time.Now()
		var panicked any
		func() {
			defer func() {
				panicked = recover()
			}()
			work.Invoke(ctx)
		}()
		duration := time.Since(start)

		if panicked != nil {
			logger.Error("task panicked",
				zap.String("operation", operationName),
				zap.String("component", "otjobxx"),
				zap.Duration("duration", duration),
				zap.Any("panic", panicked))
			panic(panicked)
		}

		logger.Debug("task completed",
			zap.String("operation", operationName),
			zap.String("component", "otjobxx"),
			zap.Duration("duration", duration))
	})
}
