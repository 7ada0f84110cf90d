// Package runtime provides the single task queue that serializes all
// store mutations and renders, plus the visibility-gated pollers.
package runtime

import (
	"context"
	"log/slog"
)

// TaskBuffer is the size of the buffered task channel.
const TaskBuffer = 256

// Loop is a single-threaded cooperative task queue. Every store mutation
// and render runs to completion on the loop before the next task starts,
// so no two mutations interleave. Network calls run in their own
// goroutines and post their completions back here; completions apply in
// completion order, not issue order (last mutation applied wins).
type Loop struct {
	tasks   chan func()
	stopped chan struct{}
}

// NewLoop creates an idle task loop.
func NewLoop() *Loop {
	return &Loop{
		tasks:   make(chan func(), TaskBuffer),
		stopped: make(chan struct{}),
	}
}

// Run processes tasks until the context is cancelled. It must be called
// exactly once.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.stopped)
	for {
		select {
		case <-ctx.Done():
			slog.Info("task_loop_stopped", "pending", len(l.tasks))
			return
		case task := <-l.tasks:
			task()
		}
	}
}

// Post enqueues a task. It blocks if the queue is full rather than drop a
// mutation; after shutdown it discards the task.
func (l *Loop) Post(task func()) {
	select {
	case l.tasks <- task:
	case <-l.stopped:
	}
}
