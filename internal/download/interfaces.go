package download

import (
	"context"

	"github.com/ytget/yt-queue/internal/model"
)

// Downloader performs the transfer for one job. It must call progress at
// least once per second while transferring, stop when progress returns an
// error, and return model.ErrCancelled (possibly wrapped) in that case.
type Downloader interface {
	Download(ctx context.Context, job model.Job, progress model.ProgressFunc) error
}

// DownloaderFunc adapts a function to the Downloader interface
type DownloaderFunc func(ctx context.Context, job model.Job, progress model.ProgressFunc) error

// Download calls f
func (f DownloaderFunc) Download(ctx context.Context, job model.Job, progress model.ProgressFunc) error {
	return f(ctx, job, progress)
}

// Controller is the command surface exposed to producers and observers
type Controller interface {
	Enqueue(url, quality, format string) model.Job
	EnqueueMany(lines []string, quality, format string) int
	Pause()
	Resume()
	Cancel()
	IsPaused() bool
	QueueSize() int
	Snapshot() model.Snapshot
	State() model.WorkerState

	// SetSpeedDisplayEnabled toggles whether observers should render the speed label
	SetSpeedDisplayEnabled(enabled bool)
	IsSpeedDisplayEnabled() bool
}
