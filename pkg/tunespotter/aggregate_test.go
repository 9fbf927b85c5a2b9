package tunespotter

import (
	"strings"
	"testing"
)

func TestAggregateTieBreaksOnSmallestIndex(t *testing.T) {
	outcomes := []RecognitionOutcome{
		{WindowIndex: 0, Status: StatusSuccess, Title: "First", Confidence: NominalConfidence},
		{WindowIndex: 1, Status: StatusSuccess, Title: "Second", Confidence: NominalConfidence},
	}

	verdict := Aggregate(outcomes, 2)
	if verdict.Status != StatusSuccess {
		t.Fatalf("status = %s, want success", verdict.Status)
	}
	if verdict.Title != "First" {
		t.Errorf("tie must resolve to the earliest window, got %q", verdict.Title)
	}
	if verdict.SegmentsAttempted != 2 || verdict.SegmentsSucceeded != 2 {
		t.Errorf("counters = %d/%d, want 2/2", verdict.SegmentsSucceeded, verdict.SegmentsAttempted)
	}
}

func TestAggregateTieBreakIsOrderIndependent(t *testing.T) {
	// Same outcomes listed in reverse: the winner must not change.
	outcomes := []RecognitionOutcome{
		{WindowIndex: 1, Status: StatusSuccess, Title: "Second", Confidence: NominalConfidence},
		{WindowIndex: 0, Status: StatusSuccess, Title: "First", Confidence: NominalConfidence},
	}

	verdict := Aggregate(outcomes, 2)
	if verdict.Title != "First" {
		t.Errorf("winner depends on slice order, got %q", verdict.Title)
	}
}

func TestAggregateHighestConfidenceWins(t *testing.T) {
	outcomes := []RecognitionOutcome{
		{WindowIndex: 0, Status: StatusSuccess, Title: "Low", Confidence: 0.4},
		{WindowIndex: 1, Status: StatusSuccess, Title: "High", Confidence: 0.9},
		{WindowIndex: 2, Status: StatusNotFound},
	}

	verdict := Aggregate(outcomes, 3)
	if verdict.Title != "High" {
		t.Errorf("got %q, want the highest-confidence outcome", verdict.Title)
	}
	if verdict.SegmentsAttempted != 3 || verdict.SegmentsSucceeded != 2 {
		t.Errorf("counters = %d/%d, want 2/3", verdict.SegmentsSucceeded, verdict.SegmentsAttempted)
	}
}

func TestAggregateAllNotFound(t *testing.T) {
	outcomes := []RecognitionOutcome{
		{WindowIndex: 0, Status: StatusNotFound},
		{WindowIndex: 1, Status: StatusNotFound},
	}

	verdict := Aggregate(outcomes, 2)
	if verdict.Status != StatusNotFound {
		t.Fatalf("status = %s, want not_found", verdict.Status)
	}
	if verdict.SegmentsAttempted != 2 || verdict.SegmentsSucceeded != 0 {
		t.Errorf("counters = %d/%d, want 0/2", verdict.SegmentsSucceeded, verdict.SegmentsAttempted)
	}
	if !strings.Contains(verdict.Message, "2") {
		t.Errorf("message should name the attempted count, got %q", verdict.Message)
	}
}

func TestAggregateMixedNotFoundAndError(t *testing.T) {
	// Errors are tolerated per segment: one real no-match keeps the
	// verdict at not_found.
	outcomes := []RecognitionOutcome{
		{WindowIndex: 0, Status: StatusError, ErrMessage: "boom"},
		{WindowIndex: 1, Status: StatusNotFound},
	}

	verdict := Aggregate(outcomes, 2)
	if verdict.Status != StatusNotFound {
		t.Fatalf("status = %s, want not_found", verdict.Status)
	}
}

func TestAggregateAllErrors(t *testing.T) {
	outcomes := []RecognitionOutcome{
		{WindowIndex: 0, Status: StatusError, ErrMessage: "token missing"},
		{WindowIndex: 1, Status: StatusError, ErrMessage: "token missing"},
	}

	verdict := Aggregate(outcomes, 2)
	if verdict.Status != StatusError {
		t.Fatalf("status = %s, want error when no segment got a real attempt", verdict.Status)
	}
	if !strings.Contains(verdict.Message, "token missing") {
		t.Errorf("message should carry the underlying error, got %q", verdict.Message)
	}
}

func TestAggregateNoOutcomes(t *testing.T) {
	verdict := Aggregate(nil, 3)
	if verdict.Status != StatusNotFound {
		t.Fatalf("status = %s, want not_found", verdict.Status)
	}
	if verdict.SegmentsAttempted != 3 {
		t.Errorf("attempted = %d, want 3", verdict.SegmentsAttempted)
	}
}

func TestAggregateVerdictHasIdentity(t *testing.T) {
	a := Aggregate(nil, 1)
	b := Aggregate(nil, 1)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("verdicts need distinct non-empty IDs, got %q and %q", a.ID, b.ID)
	}
	if a.Timestamp.IsZero() {
		t.Error("verdict timestamp must be set")
	}
}
