package model

// WorkerState represents the phase of the single queue worker
type WorkerState int32

const (
	// StateIdle means the queue is empty and the worker is polling
	StateIdle WorkerState = iota

	// StateDequeued means a job was popped and its placeholder status is set
	StateDequeued

	// StateRunning means the downloader is executing the job
	StateRunning

	// StateFinalized means the terminal record was written and in-flight status cleared
	StateFinalized
)

// String returns the string representation of WorkerState
func (ws WorkerState) String() string {
	switch ws {
	case StateIdle:
		return "Idle"
	case StateDequeued:
		return "Dequeued"
	case StateRunning:
		return "Running"
	case StateFinalized:
		return "Finalized"
	default:
		return "Unknown"
	}
}

// IsActive returns true while a job is owned by the worker
func (ws WorkerState) IsActive() bool {
	return ws == StateDequeued || ws == StateRunning
}

// Outcome is the terminal result of one job
type Outcome string

const (
	OutcomeSucceeded Outcome = "Succeeded"
	OutcomeFailed    Outcome = "Failed"
	OutcomeCancelled Outcome = "Cancelled"
)

// String returns the string representation of Outcome
func (o Outcome) String() string {
	return string(o)
}

// Prefix returns the marker that visually distinguishes outcomes in listings
func (o Outcome) Prefix() string {
	switch o {
	case OutcomeSucceeded:
		return "✔ "
	case OutcomeFailed:
		return "❌ "
	case OutcomeCancelled:
		return "⏹ "
	default:
		return ""
	}
}
