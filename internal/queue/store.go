package queue

import (
	"strings"
	"sync"
	"time"

	"github.com/ytget/yt-queue/internal/model"
)

// Display capacities
const (
	PendingDisplayCapacity = 100
	CompletedCapacity      = 100
	CommentPrefix          = "#"
)

// Store is the single source of truth for queue contents and worker status.
// The pending listing is derived from the FIFO on every snapshot, so the two
// cannot drift apart.
type Store struct {
	mu         sync.Mutex
	pending    []model.Job
	inFlight   *model.InFlightStatus
	completed  *Ring[model.CompletionRecord]
	speedLabel string
	stats      model.Stats
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		completed: NewRing[model.CompletionRecord](CompletedCapacity),
	}
}

// Enqueue appends a job for url. The URL is trimmed but not validated;
// malformed input surfaces later as a downloader failure.
func (s *Store) Enqueue(url, quality, format string) model.Job {
	job := model.NewJob(url, quality, format)

	s.mu.Lock()
	s.pending = append(s.pending, job)
	s.mu.Unlock()

	return job
}

// EnqueueMany enqueues every non-blank line that is not a comment and returns
// how many jobs were added. The batch lands contiguously in the FIFO.
func (s *Store) EnqueueMany(lines []string, quality, format string) int {
	jobs := make([]model.Job, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		jobs = append(jobs, model.NewJob(line, quality, format))
	}
	if len(jobs) == 0 {
		return 0
	}

	s.mu.Lock()
	s.pending = append(s.pending, jobs...)
	s.mu.Unlock()

	return len(jobs)
}

// Dequeue pops the oldest pending job
func (s *Store) Dequeue() (model.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return model.Job{}, false
	}
	job := s.pending[0]
	s.pending[0] = model.Job{}
	s.pending = s.pending[1:]
	if len(s.pending) == 0 {
		s.pending = nil
	}
	return job, true
}

// Size returns the number of pending jobs
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Snapshot returns independent copies of the pending listing (the newest
// PendingDisplayCapacity jobs, in FIFO order), the in-flight status, the
// completion log, the last speed label and running statistics.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if len(s.pending) > PendingDisplayCapacity {
		start = len(s.pending) - PendingDisplayCapacity
	}
	pending := make([]model.DisplayEntry, 0, len(s.pending)-start)
	for _, job := range s.pending[start:] {
		pending = append(pending, job.DisplayEntry())
	}

	var inFlight *model.InFlightStatus
	if s.inFlight != nil {
		cp := *s.inFlight
		inFlight = &cp
	}

	return model.Snapshot{
		Pending:    pending,
		InFlight:   inFlight,
		Completed:  s.completed.Items(),
		SpeedLabel: s.speedLabel,
		Stats:      s.stats,
	}
}

// SetInFlight replaces the in-flight status
func (s *Store) SetInFlight(status model.InFlightStatus) {
	s.mu.Lock()
	s.inFlight = &status
	s.mu.Unlock()
}

// UpdateProgress replaces the in-flight status and speed label together so
// observers never see one without the other
func (s *Store) UpdateProgress(status model.InFlightStatus, speedLabel string) {
	s.mu.Lock()
	s.inFlight = &status
	s.speedLabel = speedLabel
	s.mu.Unlock()
}

// ClearInFlight removes the in-flight status and speed label
func (s *Store) ClearInFlight() {
	s.mu.Lock()
	s.inFlight = nil
	s.speedLabel = ""
	s.mu.Unlock()
}

// SetSpeedLabel sets the last known transfer speed
func (s *Store) SetSpeedLabel(label string) {
	s.mu.Lock()
	s.speedLabel = label
	s.mu.Unlock()
}

// AppendCompleted adds a record to the completion log without touching the
// in-flight status
func (s *Store) AppendCompleted(record model.CompletionRecord) {
	s.mu.Lock()
	s.completed.Push(record)
	s.mu.Unlock()
}

// Finish finalizes a job in one critical section: the record is logged,
// statistics are updated and the in-flight status and speed are cleared.
func (s *Store) Finish(record model.CompletionRecord) {
	if record.FinishedAt.IsZero() {
		record.FinishedAt = time.Now()
	}

	s.mu.Lock()
	s.completed.Push(record)
	s.stats.Record(record.Outcome, record.Elapsed)
	s.inFlight = nil
	s.speedLabel = ""
	s.mu.Unlock()
}
