// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otjobxx

import "github.com/seanmiddleditch/jobxx"

// InstrumentedDelegate combines tracing, logging, and metrics into a
// single wrapper, applying them inside-out: the metrics layer wraps the
// logging layer, which wraps the tracing layer, which wraps work itself.
func InstrumentedDelegate(operationName string, work jobxx.Delegate) jobxx.Delegate {
	return MetricsDelegate(operationName, LoggedDelegate(operationName, TracedDelegate(operationName, work)))
}
