// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package loop provides the single-threaded event loop on which request
// lifecycle callbacks run.
//
// Transports and script injectors do their network work on background
// goroutines, but they never call user callbacks from those goroutines.
// Instead they Post a task to a Loop, and the task runs on whichever
// goroutine is running the loop. This gives the same guarantees as a
// browser event loop: callbacks never run concurrently with each other,
// and a callback never runs before the call that scheduled it returns.
//
// Work which will Post tasks in the future is announced with Hold and
// retired with Release, so that RunUntilIdle knows to keep waiting:
//
//	l := loop.New()
//	d := &ajax.Dispatcher{Loop: l}
//	d.Get("https://example.com/api", nil, func(r interface{}) { ... })
//	err := l.RunUntilIdle(ctx)
package loop

import (
	"context"
	"sync"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// Default is the process-wide loop used when no loop is configured.
var Default = New()

// A Loop is a FIFO queue of tasks plus a count of outstanding work. It
// is safe for concurrent use: any goroutine may Post, Hold or Release,
// and tasks run on the goroutine which calls Drain, RunUntilIdle or Run.
type Loop struct {
	mu      sync.Mutex
	tasks   *linkedlistqueue.Queue
	pending int
	wake    chan struct{}
}

// New returns an empty loop.
func New() *Loop {
	return &Loop{
		tasks: linkedlistqueue.New(),
		wake:  make(chan struct{}, 1),
	}
}

// Post appends a task to the loop. A nil task is ignored.
func (l *Loop) Post(task func()) {
	if task == nil {
		return
	}
	l.mu.Lock()
	l.tasks.Enqueue(task)
	l.mu.Unlock()
	l.signal()
}

// Hold records one unit of outstanding work which is expected to Post
// tasks later. Every Hold must be matched by exactly one Release.
func (l *Loop) Hold() {
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()
}

// Release retires one unit of outstanding work recorded by Hold.
func (l *Loop) Release() {
	l.mu.Lock()
	if l.pending == 0 {
		l.mu.Unlock()
		panic("ajax/loop: Release without Hold")
	}
	l.pending--
	l.mu.Unlock()
	l.signal()
}

// Len returns the number of queued tasks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tasks.Size()
}

// Pending returns the amount of outstanding work recorded by Hold.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Drain runs queued tasks, including tasks posted by the tasks it runs,
// until the queue is empty. It does not wait for outstanding work.
// The return value is the number of tasks run.
func (l *Loop) Drain() int {
	n := 0
	for {
		task, _ := l.next()
		if task == nil {
			return n
		}
		task()
		n++
	}
}

// RunUntilIdle runs tasks until the queue is empty and there is no
// outstanding work, or until ctx is done, in which case the context
// error is returned.
func (l *Loop) RunUntilIdle(ctx context.Context) error {
	return l.run(ctx, true)
}

// Run runs tasks as they arrive until ctx is done, and returns the
// context error.
func (l *Loop) Run(ctx context.Context) error {
	return l.run(ctx, false)
}

func (l *Loop) run(ctx context.Context, untilIdle bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		task, pending := l.next()
		if task != nil {
			task()
			continue
		}
		if untilIdle && pending == 0 {
			return nil
		}
		select {
		case <-l.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *Loop) next() (func(), int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.tasks.Dequeue()
	if !ok {
		return nil, l.pending
	}
	return v.(func()), l.pending
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
