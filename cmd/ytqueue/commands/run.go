package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ytget/yt-queue/cmd/ytqueue/internal/bind"
	"github.com/ytget/yt-queue/cmd/ytqueue/internal/format"
	"github.com/ytget/yt-queue/internal/download"
	"github.com/ytget/yt-queue/internal/logging"
	"github.com/ytget/yt-queue/internal/model"
	"github.com/ytget/yt-queue/internal/platform"
)

// ErrNothingQueued is returned when run has no input and would exit at once
var ErrNothingQueued = errors.New("nothing to download: pass URLs, --file, --playlist or --inbox, or use --keep-running")

type runOptions struct {
	file         string
	playlist     string
	keepRunning  bool
	skipExisting bool
}

// NewRunCommand runs the queue worker in the terminal
func NewRunCommand() *cobra.Command {
	return newRunCommand(nil, nil)
}

func newRunCommand(downloader download.Downloader, lister PlaylistLister) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [urls...]",
		Short: "Download queued URLs one at a time",
		Long: `Download URLs one at a time in the order they were added.

URLs come from arguments, --file, --playlist and --inbox. While running, type
on stdin to control the queue:

  ` + controlHelp + `

Without --keep-running or --inbox the command exits once every job finished.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := bind.ConfigFrom(cmd.Context())

			w, err := bind.BindWorker(cfg, downloader)
			if err != nil {
				return err
			}
			defer func() {
				if err := w.Close(); err != nil {
					log.Warn().Err(err).Msg("Failed to release worker resources")
				}
			}()

			if lister == nil {
				lister = platform.NewPlaylistLister(logging.Component("playlist"))
			}
			r := &runner{
				svc:     w.Service,
				console: format.FromCommand(cmd),
				quality: cfg.Download.Quality,
				format:  cfg.Download.Format,
				refresh: cfg.UI.RefreshInterval,
			}

			enqueued, err := r.enqueueInputs(cmd.Context(), args, opts, lister)
			if err != nil {
				return err
			}
			r.expected.Add(int64(enqueued))

			if err := w.AttachInbox(cfg, opts.skipExisting); err != nil {
				return err
			}
			keepRunning := opts.keepRunning || w.Inbox != nil
			if enqueued == 0 && !keepRunning {
				return ErrNothingQueued
			}

			log.Info().Str("dir", w.Dir).Int("queued", enqueued).Msg("Queue ready")
			return r.run(cmd, w, keepRunning)
		},
	}

	addJobFlags(cmd)
	cmd.Flags().StringVar(&opts.file, "file", "", "Text file with one URL per line (# starts a comment)")
	cmd.Flags().StringVar(&opts.playlist, "playlist", "", "Playlist URL whose videos are enqueued")
	cmd.Flags().BoolVar(&opts.keepRunning, "keep-running", false, "Keep waiting for new URLs after the queue drains")
	cmd.Flags().BoolVar(&opts.skipExisting, "skip-existing", false, "Ignore lines already in the inbox file")
	cmd.Flags().Duration("poll-interval", 0, "How often an idle worker checks for new jobs")
	cmd.Flags().Duration("refresh-interval", 0, "How often the status line is refreshed")

	return cmd
}

// runner drives one run invocation
type runner struct {
	svc     *download.Service
	console *format.Console
	quality string
	format  string
	refresh time.Duration

	// jobs this invocation expects a completion record for
	expected atomic.Int64
	printed  int
	status   string
}

// enqueueInputs adds arguments, then the file, then the playlist, in that order
func (r *runner) enqueueInputs(ctx context.Context, args []string, opts runOptions, lister PlaylistLister) (int, error) {
	total := r.svc.EnqueueMany(args, r.quality, r.format)

	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return total, fmt.Errorf("read URL file: %w", err)
		}
		total += r.svc.EnqueueMany(strings.Split(string(data), "\n"), r.quality, r.format)
	}

	if opts.playlist != "" {
		playlist, err := lister.List(ctx, opts.playlist)
		if err != nil {
			return total, fmt.Errorf("list playlist: %w", err)
		}
		n := r.svc.EnqueueMany(playlist.URLs(), r.quality, r.format)
		r.console.Println(fmt.Sprintf("Playlist %q: %d videos queued", playlist.Title, n))
		total += n
	}
	return total, nil
}

func (r *runner) run(cmd *cobra.Command, w *bind.Worker, keepRunning bool) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if w.Inbox != nil {
		go func() {
			if err := w.Inbox.Start(ctx); err != nil {
				r.console.Errorln("inbox: " + err.Error())
			}
		}()
	}
	go r.readControls(cmd, cancel)

	done := make(chan error, 1)
	go func() {
		done <- r.svc.Run(ctx, r.observe)
	}()

	ticker := time.NewTicker(r.refresh)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			snap := r.render()
			if !keepRunning && snap.InFlight == nil && len(snap.Pending) == 0 &&
				int64(snap.Stats.Total()) >= r.expected.Load() {
				cancel()
			}
		}
	}

	err := <-done
	snap := r.render()
	r.console.Println(r.console.Summary(snap.Stats))
	return err
}

// render prints completions not yet shown and the status line when it changed
func (r *runner) render() model.Snapshot {
	snap := r.svc.Snapshot()

	fresh := snap.Stats.Total() - r.printed
	if fresh > len(snap.Completed) {
		fresh = len(snap.Completed)
	}
	for _, rec := range snap.Completed[len(snap.Completed)-fresh:] {
		r.console.Println(r.console.Record(rec))
	}
	r.printed = snap.Stats.Total()

	if snap.InFlight != nil || r.svc.IsPaused() {
		status := r.console.Status(snap, r.svc.QueueSize(), r.svc.IsPaused(), r.svc.IsSpeedDisplayEnabled())
		if status != r.status {
			r.console.Println(status)
			r.status = status
		}
	} else {
		r.status = ""
	}
	return snap
}

func (r *runner) observe(ev model.ProgressEvent) {
	if ev.Kind == model.EventError {
		r.console.Errorln(ev.ErrorMessage)
	}
}

// readControls applies stdin lines until EOF or a quit command
func (r *runner) readControls(cmd *cobra.Command, quit context.CancelFunc) {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		res := applyControl(r.svc, scanner.Text(), r.quality, r.format)
		r.expected.Add(int64(res.Enqueued))
		if res.Message != "" {
			r.console.Println(res.Message)
		}
		if res.Quit {
			quit()
			return
		}
	}
}
