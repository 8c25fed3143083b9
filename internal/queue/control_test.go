package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-queue/internal/model"
)

func TestControls_Flags(t *testing.T) {
	c := NewControls()
	assert.False(t, c.IsPaused())
	assert.False(t, c.CancelRequested())

	c.Pause()
	c.Pause()
	assert.True(t, c.IsPaused())

	c.Resume()
	c.Resume()
	assert.False(t, c.IsPaused())

	c.Cancel()
	assert.True(t, c.CancelRequested())
	c.ResetCancel()
	assert.False(t, c.CancelRequested())
}

func TestControls_WaitWhilePausedReturnsImmediately(t *testing.T) {
	c := NewControls()
	require.NoError(t, c.WaitWhilePaused(context.Background()))
}

func TestControls_WaitBlocksUntilResume(t *testing.T) {
	c := NewControls()
	c.Pause()

	done := make(chan error, 1)
	go func() { done <- c.WaitWhilePaused(context.Background()) }()

	select {
	case <-done:
		t.Fatal("wait returned while paused")
	case <-time.After(100 * time.Millisecond):
	}

	c.Resume()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("wait did not return after resume")
	}
}

func TestControls_CancelReleasesPausedWaiter(t *testing.T) {
	c := NewControls()
	c.Pause()

	done := make(chan error, 1)
	go func() { done <- c.WaitWhilePaused(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	c.Cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, model.ErrCancelled)
	case <-time.After(2 * time.Second):
		t.Fatal("wait did not return after cancel")
	}
	assert.True(t, c.IsPaused(), "cancel does not resume the queue")
}

func TestControls_WaitHonoursContext(t *testing.T) {
	c := NewControls()
	c.Pause()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.WaitWhilePaused(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestControls_PauseResumeCycles(t *testing.T) {
	c := NewControls()
	for i := 0; i < 20; i++ {
		c.Pause()
		done := make(chan error, 1)
		go func() { done <- c.WaitWhilePaused(context.Background()) }()
		c.Resume()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatalf("cycle %d: waiter stuck", i)
		}
	}
}
