// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package jobxx_test

import (
	"testing"

	"github.com/seanmiddleditch/jobxx"
	"github.com/stretchr/testify/require"
)

func TestDelegateFuncEmpty(t *testing.T) {
	chk := require.New(t)

	chk.True(jobxx.DelegateFunc(nil).Empty())
	chk.False(jobxx.DelegateFunc(func() {}).Empty())
}

func TestDelegateFuncInvokeIgnoresContext(t *testing.T) {
	chk := require.New(t)

	ran := false
	d := jobxx.DelegateFunc(func() { ran = true })
	d.Invoke(nil)
	chk.True(ran)
}

func TestDelegateTaskFuncReceivesContext(t *testing.T) {
	chk := require.New(t)

	q := jobxx.NewQueue()
	var seen *jobxx.SpawnContext
	chk.NoError(q.SpawnTask(jobxx.DelegateTaskFunc(func(ctx *jobxx.SpawnContext) {
		seen = ctx
	})))
	q.WorkAll()
	chk.NotNil(seen)
}

func TestDelegateTaskFuncEmptyWhenNilFunc(t *testing.T) {
	require.True(t, jobxx.DelegateTaskFunc(nil).Empty())
}
