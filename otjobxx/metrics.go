// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otjobxx

import (
	"context"
	"time"

	"github.com/seanmiddleditch/jobxx"
	"go.opentelemetry.io/otel"
)

// MetricsDelegate records a count, a duration histogram, and an error
// counter for work's execution, pulling instruments from
// otel.GetMeterProvider() by name on every call.
func MetricsDelegate(metricName string, work jobxx.Delegate) jobxx.Delegate {
	if work.Empty() {
		return work
	}
	return jobxx.DelegateTaskFunc(func(ctx *jobxx.SpawnContext) {
		meter := otel.GetMeterProvider().Meter("otjobxx")
		taskCounter, _ := meter.Int64Counter(metricName + ".count")
		taskDuration, _ := meter.Float64Histogram(metricName + ".duration")

		background := context.Background()
		start := time.Now()
		taskCounter.Add(background, 1)

		panicked := true
		defer func() {
			taskDuration.Record(background, time.Since(start).Seconds())
			if panicked {
				errorCounter, _ := meter.Int64Counter(metricName + ".errors")
				errorCounter.Add(background, 1)
			}
		}()

		work.Invoke(ctx)
		panicked = false
	})
}
