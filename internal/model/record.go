package model

import "time"

// Placeholder labels shown before the downloader reports progress
const (
	InitialSpeedLabel   = "Initializing..."
	InitialPercentLabel = "0%"
)

// InFlightStatus describes the single job currently executing
type InFlightStatus struct {
	JobID        string
	Title        string
	URL          string
	SpeedLabel   string
	PercentLabel string
	StartedAt    time.Time
}

// CompletionRecord is the terminal entry written for every finished job
type CompletionRecord struct {
	JobID      string
	Outcome    Outcome
	Title      string // resolved title, or the truncated error message for failures
	URL        string
	Elapsed    time.Duration
	FinishedAt time.Time
}

// Label returns the record text prefixed with its outcome marker
func (r CompletionRecord) Label() string {
	switch r.Outcome {
	case OutcomeCancelled:
		if r.Title == "" {
			return r.Outcome.Prefix() + string(OutcomeCancelled)
		}
		return r.Outcome.Prefix() + string(OutcomeCancelled) + ": " + r.Title
	default:
		return r.Outcome.Prefix() + r.Title
	}
}

// Stats accumulates per-outcome counts and elapsed time over the process lifetime
type Stats struct {
	Succeeded    int
	Failed       int
	Cancelled    int
	TotalElapsed time.Duration
}

// Record adds one terminal outcome to the statistics
func (s *Stats) Record(outcome Outcome, elapsed time.Duration) {
	switch outcome {
	case OutcomeSucceeded:
		s.Succeeded++
	case OutcomeFailed:
		s.Failed++
	case OutcomeCancelled:
		s.Cancelled++
	}
	s.TotalElapsed += elapsed
}

// Total returns the number of finished jobs
func (s Stats) Total() int {
	return s.Succeeded + s.Failed + s.Cancelled
}

// AverageElapsed returns the mean job duration, or zero before any job finished
func (s Stats) AverageElapsed() time.Duration {
	if s.Total() == 0 {
		return 0
	}
	return s.TotalElapsed / time.Duration(s.Total())
}

// Snapshot is a point-in-time copy of queue status for display. All slices and
// the InFlight pointer are owned by the caller.
type Snapshot struct {
	Pending    []DisplayEntry
	InFlight   *InFlightStatus
	Completed  []CompletionRecord
	SpeedLabel string
	Stats      Stats
}

// Idle reports whether nothing is pending or running
func (s Snapshot) Idle() bool {
	return len(s.Pending) == 0 && s.InFlight == nil
}
