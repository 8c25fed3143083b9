package model

import "errors"

// ErrCancelled is returned from a ProgressFunc when the operator cancelled the
// running job. Downloaders must stop the transfer and return it (possibly
// wrapped) so the worker can tell cancellation apart from failure.
var ErrCancelled = errors.New("download cancelled")

// EventKind classifies progress events emitted by a downloader
type EventKind string

const (
	EventDownloading EventKind = "downloading"
	EventFinished    EventKind = "finished"
	EventError       EventKind = "error"
)

// ProgressEvent is a single status report from a downloader
type ProgressEvent struct {
	Kind            EventKind
	SpeedLabel      string // human readable speed (e.g., "1.2 MB/s")
	PercentLabel    string // e.g. "42.0%"
	Title           string // real title once metadata is known
	ErrorMessage    string
	DownloadedBytes int64
	TotalBytes      int64
}

// ProgressFunc receives progress events from a downloader. A non-nil return
// value asks the downloader to abort.
type ProgressFunc func(ProgressEvent) error

// Observer receives every raw progress event, plus synthesized error events
// for failed jobs
type Observer func(ProgressEvent)
