package store

import (
	"context"
	"time"
)

// QueryOpts configures attempt queries with filtering and pagination.
type QueryOpts struct {
	StudentID string // exact match; empty matches every student
	Limit     int    // max results (0 = unlimited)
	After     int64  // sequence > After
	Before    int64  // sequence < Before
}

// AttemptEventData captures one assessed attempt as it is appended to the log.
type AttemptEventData struct {
	AttemptID        string
	Timestamp        time.Time
	StudentID        string
	CaseID           string
	StudentDiagnosis string
	GoldDiagnosis    string
	GoldSource       string
	DiagnosisCorrect bool
	Precision        float64
	Recall           float64
	F1               float64
	SelectedFeatures []string
	MissingFeatures  []string
	ExtraFeatures    []string
	ConfusableDx     string
	Justification    string
}

// AttemptRecord is an attempt read back from the log.
type AttemptRecord struct {
	ID       int
	Sequence int64
	AttemptEventData
}

// AttemptStats aggregates attempts for one student, or for everyone when the
// student id is empty.
type AttemptStats struct {
	StudentID   string
	Attempts    int
	Correct     int
	MeanF1      float64
	LastAttempt time.Time
	ByDiagnosis map[string]int
}

// Accuracy is the fraction of attempts with the correct diagnosis.
func (s AttemptStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// AttemptRepo provides append and read access to the attempt log.
// Records are never updated or deleted once appended.
type AttemptRepo interface {
	// AppendAttempt records one assessed attempt and returns its sequence.
	AppendAttempt(ctx context.Context, data AttemptEventData) (int64, error)

	// QueryAttempts returns attempts in sequence order.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error)

	// AttemptStats summarizes the attempts for a student.
	AttemptStats(ctx context.Context, studentID string) (*AttemptStats, error)
}
