package download

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/yt-queue/internal/model"
	"github.com/ytget/yt-queue/internal/queue"
)

// DefaultPollInterval is how long an idle worker sleeps before polling again
const DefaultPollInterval = time.Second

// ErrAlreadyRunning is returned when Run is called while a worker is active
var ErrAlreadyRunning = errors.New("queue worker already running")

// Option configures a Service
type Option func(*Service)

// WithPollInterval sets the idle polling interval
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithLogger sets the logger used by the worker
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Service owns the queue state and runs the single download worker
type Service struct {
	store      *queue.Store
	controls   *queue.Controls
	downloader Downloader

	pollInterval time.Duration
	logger       zerolog.Logger
	observer     model.Observer // set by Run, read only by the worker

	state     atomic.Int32
	running   atomic.Bool
	showSpeed atomic.Bool
}

var _ Controller = (*Service)(nil)

// NewService creates a service that executes jobs with downloader
func NewService(downloader Downloader, opts ...Option) *Service {
	s := &Service{
		store:        queue.NewStore(),
		controls:     queue.NewControls(),
		downloader:   downloader,
		pollInterval: DefaultPollInterval,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enqueue adds a single job to the tail of the queue
func (s *Service) Enqueue(url, quality, format string) model.Job {
	job := s.store.Enqueue(url, quality, format)
	s.logger.Debug().Str("job", job.ID).Str("url", job.URL).Msg("Job enqueued")
	return job
}

// EnqueueMany adds every non-blank, non-comment line as a job
func (s *Service) EnqueueMany(lines []string, quality, format string) int {
	n := s.store.EnqueueMany(lines, quality, format)
	s.logger.Debug().Int("added", n).Int("lines", len(lines)).Msg("Batch enqueued")
	return n
}

// Pause holds the running job at its next progress callback
func (s *Service) Pause() {
	s.controls.Pause()
	s.logger.Info().Msg("Queue paused")
}

// Resume releases a paused job
func (s *Service) Resume() {
	s.controls.Resume()
	s.logger.Info().Msg("Queue resumed")
}

// Cancel aborts the running job at its next progress callback
func (s *Service) Cancel() {
	s.controls.Cancel()
	s.logger.Info().Msg("Cancellation requested")
}

// IsPaused reports whether the queue is paused
func (s *Service) IsPaused() bool {
	return s.controls.IsPaused()
}

// QueueSize returns the number of pending jobs
func (s *Service) QueueSize() int {
	return s.store.Size()
}

// Snapshot returns a consistent copy of the queue status
func (s *Service) Snapshot() model.Snapshot {
	return s.store.Snapshot()
}

// State returns the current worker phase
func (s *Service) State() model.WorkerState {
	return model.WorkerState(s.state.Load())
}

// SetSpeedDisplayEnabled toggles speed rendering for observers
func (s *Service) SetSpeedDisplayEnabled(enabled bool) {
	s.showSpeed.Store(enabled)
}

// IsSpeedDisplayEnabled reports whether observers should render speed
func (s *Service) IsSpeedDisplayEnabled() bool {
	return s.showSpeed.Load()
}

// Run processes jobs one at a time until ctx is done. observer, if not nil,
// receives every progress event. Only one Run may be active per Service.
func (s *Service) Run(ctx context.Context, observer model.Observer) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	s.observer = observer
	s.setState(model.StateIdle)
	s.logger.Info().Dur("poll_interval", s.pollInterval).Msg("Queue worker started")
	defer s.logger.Info().Msg("Queue worker stopped")

	timer := time.NewTimer(s.pollInterval)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}

		job, ok := s.store.Dequeue()
		if !ok {
			s.setState(model.StateIdle)
			timer.Reset(s.pollInterval)
			select {
			case <-ctx.Done():
				return nil
			case <-timer.C:
			}
			continue
		}

		s.processJob(ctx, job)
		s.setState(model.StateIdle)
	}
}

// jobRun tracks per-job worker state; it is only touched by the worker goroutine
type jobRun struct {
	job       model.Job
	title     string
	started   time.Time
	finalized bool
}

// processJob drives one job through Dequeued, Running and Finalized
func (s *Service) processJob(ctx context.Context, job model.Job) {
	s.controls.ResetCancel()
	s.setState(model.StateDequeued)

	run := &jobRun{job: job, title: job.Title, started: time.Now()}
	s.store.SetInFlight(model.InFlightStatus{
		JobID:        job.ID,
		Title:        job.Title,
		URL:          job.URL,
		SpeedLabel:   model.InitialSpeedLabel,
		PercentLabel: model.InitialPercentLabel,
		StartedAt:    run.started,
	})
	s.logger.Info().
		Str("job", job.ID).
		Str("url", job.URL).
		Str("quality", job.Quality).
		Str("format", job.Format).
		Msg("Job started")

	s.setState(model.StateRunning)
	err := s.download(ctx, run)
	s.finalize(ctx, run, err)
	s.setState(model.StateFinalized)
}

// download calls the downloader, converting a panic into a failure
func (s *Service) download(ctx context.Context, run *jobRun) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("downloader panic: %v", r)
		}
	}()
	return s.downloader.Download(ctx, run.job, s.progressHook(ctx, run))
}

// progressHook builds the callback handed to the downloader for run
func (s *Service) progressHook(ctx context.Context, run *jobRun) model.ProgressFunc {
	return func(ev model.ProgressEvent) error {
		if s.controls.CancelRequested() {
			return model.ErrCancelled
		}
		if err := s.controls.WaitWhilePaused(ctx); err != nil {
			return err
		}

		s.notify(ev)

		if run.finalized {
			return nil
		}

		switch ev.Kind {
		case model.EventDownloading:
			if ev.Title != "" {
				run.title = ev.Title
			}
			s.store.UpdateProgress(model.InFlightStatus{
				JobID:        run.job.ID,
				Title:        run.title,
				URL:          run.job.URL,
				SpeedLabel:   ev.SpeedLabel,
				PercentLabel: ev.PercentLabel,
				StartedAt:    run.started,
			}, ev.SpeedLabel)
		case model.EventFinished:
			if ev.Title != "" {
				run.title = ev.Title
			}
			s.store.Finish(s.record(run, model.OutcomeSucceeded, run.title))
			run.finalized = true
		}
		return nil
	}
}

// finalize writes the terminal record for run according to err
func (s *Service) finalize(ctx context.Context, run *jobRun, err error) {
	logger := s.logger.With().Str("job", run.job.ID).Dur("elapsed", time.Since(run.started)).Logger()

	switch {
	case err == nil:
		if !run.finalized {
			s.store.Finish(s.record(run, model.OutcomeSucceeded, run.title))
		}
		logger.Info().Str("title", run.title).Msg("Job completed")

	case errors.Is(err, model.ErrCancelled):
		if run.finalized {
			s.store.ClearInFlight()
		} else {
			s.store.Finish(s.record(run, model.OutcomeCancelled, run.title))
		}
		logger.Info().Msg("Job cancelled")

	case ctx.Err() != nil:
		s.store.ClearInFlight()
		logger.Warn().Err(err).Msg("Job interrupted by shutdown")

	default:
		msg := err.Error()
		if run.finalized {
			s.store.ClearInFlight()
			logger.Warn().Err(err).Msg("Job failed after reporting completion")
		} else {
			s.store.Finish(s.record(run, model.OutcomeFailed, msg))
			logger.Error().Err(err).Str("url", run.job.URL).Msg("Job failed")
		}
		s.notify(model.ProgressEvent{Kind: model.EventError, ErrorMessage: msg})
	}
}

// record builds the completion record for run with the outcome-specific text cap
func (s *Service) record(run *jobRun, outcome model.Outcome, text string) model.CompletionRecord {
	limit := model.CompletedTitleLength
	if outcome == model.OutcomeFailed {
		limit = model.ErrorMessageMaxLength
	}
	return model.CompletionRecord{
		JobID:      run.job.ID,
		Outcome:    outcome,
		Title:      model.Truncate(text, limit, ""),
		URL:        run.job.URL,
		Elapsed:    time.Since(run.started),
		FinishedAt: time.Now(),
	}
}

// notify forwards ev to the observer, if any
func (s *Service) notify(ev model.ProgressEvent) {
	if s.observer != nil {
		s.observer(ev)
	}
}

func (s *Service) setState(state model.WorkerState) {
	s.state.Store(int32(state))
}
