package model

import (
	"testing"
	"time"
)

func TestCompletionRecord_Label(t *testing.T) {
	tests := []struct {
		record   CompletionRecord
		expected string
	}{
		{CompletionRecord{Outcome: OutcomeSucceeded, Title: "T"}, "✔ T"},
		{CompletionRecord{Outcome: OutcomeFailed, Title: "boom"}, "❌ boom"},
		{CompletionRecord{Outcome: OutcomeCancelled}, "⏹ Cancelled"},
		{CompletionRecord{Outcome: OutcomeCancelled, Title: "clip"}, "⏹ Cancelled: clip"},
	}

	for _, test := range tests {
		if got := test.record.Label(); got != test.expected {
			t.Errorf("Label() = %q, expected %q", got, test.expected)
		}
	}
}

func TestStats_Record(t *testing.T) {
	var s Stats
	if s.AverageElapsed() != 0 {
		t.Error("expected zero average before any job")
	}

	s.Record(OutcomeSucceeded, 2*time.Second)
	s.Record(OutcomeFailed, time.Second)
	s.Record(OutcomeCancelled, 3*time.Second)

	if s.Succeeded != 1 || s.Failed != 1 || s.Cancelled != 1 {
		t.Errorf("unexpected counts %+v", s)
	}
	if s.Total() != 3 {
		t.Errorf("expected total 3, got %d", s.Total())
	}
	if s.AverageElapsed() != 2*time.Second {
		t.Errorf("expected 2s average, got %v", s.AverageElapsed())
	}
}

func TestSnapshot_Idle(t *testing.T) {
	if !(Snapshot{}).Idle() {
		t.Error("empty snapshot should be idle")
	}
	if (Snapshot{InFlight: &InFlightStatus{}}).Idle() {
		t.Error("snapshot with in-flight job should not be idle")
	}
	if (Snapshot{Pending: []DisplayEntry{{URL: "x"}}}).Idle() {
		t.Error("snapshot with pending jobs should not be idle")
	}
}
