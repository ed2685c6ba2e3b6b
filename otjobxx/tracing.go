// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otjobxx

import (
	"context"

	"github.com/seanmiddleditch/jobxx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracedDelegate wraps work in a span named spanName, pulled from
// otel.Tracer("otjobxx") on every call. A delegate carries no
// context.Context of its own, so each span roots a new trace rather than
// joining one a caller might already have open; callers that need the
// span to join an existing trace should start it themselves and record
// the link via span attributes inside work instead.
func TracedDelegate(spanName string, work jobxx.Delegate) jobxx.Delegate {
	if work.Empty() {
		return work
	}
	return jobxx.DelegateTaskFunc(func(ctx *jobxx.SpawnContext) {
		tracer := otel.Tracer("otjobxx")
		var span trace.Span
		_, span = tracer.Start(context.Background(), spanName)
		defer span.End()

		panicked := true
		defer func() {
			if panicked {
				span.SetStatus(codes.Error, "task panicked")
			}
		}()

		work.Invoke(ctx)
		panicked = false
	})
}
