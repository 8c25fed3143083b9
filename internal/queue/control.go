package queue

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ytget/yt-queue/internal/model"
)

// Controls carries the operator's pause and cancel requests to the worker.
// Flags are read lock-free; waiters block on a broadcast channel that is
// closed and replaced on every change.
type Controls struct {
	paused          atomic.Bool
	cancelRequested atomic.Bool

	mu      sync.Mutex
	changed chan struct{}
}

// NewControls creates unpaused controls with no pending cancellation
func NewControls() *Controls {
	return &Controls{changed: make(chan struct{})}
}

// Pause holds the worker at its next progress callback
func (c *Controls) Pause() {
	if !c.paused.Swap(true) {
		c.broadcast()
	}
}

// Resume releases a paused worker
func (c *Controls) Resume() {
	if c.paused.Swap(false) {
		c.broadcast()
	}
}

// Cancel asks the running job to stop at its next progress callback. Jobs
// still in the queue are not affected.
func (c *Controls) Cancel() {
	if !c.cancelRequested.Swap(true) {
		c.broadcast()
	}
}

// ResetCancel clears a cancellation request; the worker calls it when a new
// job starts
func (c *Controls) ResetCancel() {
	c.cancelRequested.Store(false)
}

// IsPaused reports the pause flag
func (c *Controls) IsPaused() bool {
	return c.paused.Load()
}

// CancelRequested reports the cancel flag
func (c *Controls) CancelRequested() bool {
	return c.cancelRequested.Load()
}

// WaitWhilePaused blocks while paused. It returns model.ErrCancelled if the
// job is cancelled while waiting and ctx.Err() if ctx ends first.
func (c *Controls) WaitWhilePaused(ctx context.Context) error {
	for {
		c.mu.Lock()
		ch := c.changed
		c.mu.Unlock()

		if c.cancelRequested.Load() {
			return model.ErrCancelled
		}
		if !c.paused.Load() {
			return nil
		}

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Controls) broadcast() {
	c.mu.Lock()
	close(c.changed)
	c.changed = make(chan struct{})
	c.mu.Unlock()
}
