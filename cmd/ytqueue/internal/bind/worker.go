package bind

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ytget/yt-queue/internal/config"
	"github.com/ytget/yt-queue/internal/download"
	"github.com/ytget/yt-queue/internal/inbox"
	"github.com/ytget/yt-queue/internal/logging"
	"github.com/ytget/yt-queue/internal/platform"
)

// Worker bundles the queue service with the resources it owns
type Worker struct {
	Service *download.Service
	Dir     string
	Inbox   *inbox.Watcher

	lock *platform.DirLock
}

// BindWorker resolves and locks the download directory, then builds the
// queue service from cfg. A nil downloader selects the yt-dlp adapter.
func BindWorker(cfg config.Config, downloader download.Downloader) (*Worker, error) {
	dir, err := platform.ResolveDownloadDir(cfg.Download.Dir)
	if err != nil {
		return nil, fmt.Errorf("prepare download directory: %w", err)
	}

	lock, err := platform.LockDirectory(dir)
	if err != nil {
		return nil, err
	}

	if downloader == nil {
		downloader = NewDownloader(cfg, func() string { return dir })
	}
	svc := download.NewService(downloader,
		download.WithPollInterval(cfg.Queue.PollInterval),
		download.WithLogger(logging.Component("worker")),
	)
	svc.SetSpeedDisplayEnabled(cfg.UI.ShowSpeed)

	return &Worker{Service: svc, Dir: dir, lock: lock}, nil
}

// NewDownloader builds the yt-dlp adapter; dir is consulted at every job start
func NewDownloader(cfg config.Config, dir func() string) *platform.YTDLPDownloader {
	return platform.NewYTDLPDownloader(dir,
		platform.WithProgressInterval(cfg.Download.ProgressInterval),
		platform.WithAutoInstall(cfg.Download.AutoInstall),
		platform.WithDownloaderLogger(logging.Component("ytdlp")),
	)
}

// AttachInbox creates a watcher for cfg.Queue.Inbox feeding w's queue with the
// configured quality and format. It is a no-op when no inbox is configured.
func (w *Worker) AttachInbox(cfg config.Config, skipExisting bool) error {
	watcher, err := BindInbox(cfg, w.Service, skipExisting)
	if err != nil {
		return err
	}
	w.Inbox = watcher
	return nil
}

// BindInbox creates a watcher for cfg.Queue.Inbox, or returns nil when unset
func BindInbox(cfg config.Config, sink inbox.Enqueuer, skipExisting bool) (*inbox.Watcher, error) {
	if cfg.Queue.Inbox == "" {
		return nil, nil
	}

	quality, format := cfg.Download.Quality, cfg.Download.Format
	watcher, err := inbox.NewWatcher(cfg.Queue.Inbox, sink, func() (string, string) {
		return quality, format
	}, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("create inbox watcher: %w", err)
	}

	if skipExisting {
		if err := watcher.SkipExisting(); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("skip inbox content: %w", err)
		}
	}
	return watcher, nil
}

// Close releases the directory lock and stops the inbox watcher
func (w *Worker) Close() error {
	var errs []error
	if w.Inbox != nil {
		errs = append(errs, w.Inbox.Close())
	}
	errs = append(errs, w.lock.Release())
	return errors.Join(errs...)
}
